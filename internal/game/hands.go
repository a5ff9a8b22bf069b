package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// HandFile represents the top-level YAML structure.
type HandFile struct {
	Hands []HandEntry `yaml:"hands"`
}

// HandEntry represents a single named hand in the YAML file.
type HandEntry struct {
	Name  string      `yaml:"name"`
	Cards []CardEntry `yaml:"cards"`
}

// CardEntry is one card: its 4-character code and its arrow list.
type CardEntry struct {
	Code   string `yaml:"code"`
	Arrows string `yaml:"arrows"`
}

// ParseHandFileData decodes YAML hand data.
func ParseHandFileData(data []byte) (HandFile, error) {
	var hf HandFile
	if err := yaml.Unmarshal(data, &hf); err != nil {
		return HandFile{}, fmt.Errorf("parse hand YAML: %w", err)
	}
	return hf, nil
}

// Decode decodes every card in the hand.
func (h HandEntry) Decode() ([]Card, error) {
	cards := make([]Card, 0, len(h.Cards))
	for i, entry := range h.Cards {
		c, err := ParseCardWithArrows(entry.Code, entry.Arrows)
		if err != nil {
			return nil, fmt.Errorf("hand %q card %d: %w", h.Name, i+1, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// ParseHandFile parses a YAML hand file and returns a map of hand name → cards.
func ParseHandFile(path string) (map[string][]Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	hf, err := ParseHandFileData(data)
	if err != nil {
		return nil, err
	}

	hands := make(map[string][]Card)
	for _, hand := range hf.Hands {
		cards, err := hand.Decode()
		if err != nil {
			return nil, err
		}
		hands[hand.Name] = cards
	}
	return hands, nil
}

// HandByNumber returns the Nth hand (1-indexed) from the hand file.
func HandByNumber(path string, n int) (string, []Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	hf, err := ParseHandFileData(data)
	if err != nil {
		return "", nil, err
	}

	if n < 1 || n > len(hf.Hands) {
		return "", nil, fmt.Errorf("hand %d not found (have %d hands)", n, len(hf.Hands))
	}

	hand := hf.Hands[n-1]
	cards, err := hand.Decode()
	if err != nil {
		return "", nil, err
	}
	return hand.Name, cards, nil
}
