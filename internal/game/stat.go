package game

import (
	"errors"
	"fmt"
)

// ErrInvalidLevel is returned when a level does not fit in 4 bits.
var ErrInvalidLevel = errors.New("stat level out of range")

// statRanges maps a level to the inclusive bounds its max score is drawn from.
var statRanges = [16][2]int{
	{0, 15},
	{16, 31},
	{32, 47},
	{48, 63},
	{64, 79},
	{80, 95},
	{96, 111},
	{112, 127},
	{128, 143},
	{144, 159},
	{160, 175},
	{176, 191},
	{192, 207},
	{208, 223},
	{224, 239},
	{240, 255},
}

// StatRange returns the inclusive score bounds for level.
func StatRange(level uint8) (lo, hi int, err error) {
	if level > MaxStat {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	r := statRanges[level]
	return r[0], r[1], nil
}

// RollStat draws a card's max score for one battle: a uniform integer within
// the level's range. Higher levels roll higher ceilings.
func RollStat(src Source, level uint8) (int, error) {
	lo, hi, err := StatRange(level)
	if err != nil {
		return 0, err
	}
	return lo + src.Intn(hi-lo+1), nil
}
