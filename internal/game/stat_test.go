package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestRollStatStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for level := uint8(0); level <= MaxStat; level++ {
		lo, hi := int(level)*16, int(level)*16+15
		for i := 0; i < 200; i++ {
			got, err := RollStat(rng, level)
			if err != nil {
				t.Fatalf("RollStat(%d): %v", level, err)
			}
			if got < lo || got > hi {
				t.Fatalf("RollStat(%d) = %d, want in [%d,%d]", level, got, lo, hi)
			}
		}
	}
}

func TestRollStatBounds(t *testing.T) {
	lo, err := RollStat(constSource(0), 7)
	if err != nil || lo != 112 {
		t.Errorf("lowest roll for level 7 = %d, %v; want 112", lo, err)
	}
	hi, err := RollStat(constSource(99), 7)
	if err != nil || hi != 127 {
		t.Errorf("highest roll for level 7 = %d, %v; want 127", hi, err)
	}
}

func TestRollStatInvalidLevel(t *testing.T) {
	if _, err := RollStat(constSource(0), 16); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("err = %v, want ErrInvalidLevel", err)
	}
	if _, _, err := StatRange(255); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("StatRange(255) err = %v, want ErrInvalidLevel", err)
	}
}
