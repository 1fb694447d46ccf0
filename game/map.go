package game

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Route describes one station of a map.
type Route struct {
	Name      string   `yaml:"name"`
	NumBoxes  int      `yaml:"num_boxes"`
	HighValue int      `yaml:"high_value"`
	LowValue  int      `yaml:"low_value"`
	Path      []NodeID `yaml:"path"`
}

// Map is the static layout of a board. It is never mutated by a game.
type Map []Route

// Validate rejects maps that would build a board with silently wrong scores.
func (m Map) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("%w: no routes", ErrInvalidMap)
	}
	seen := make(map[string]bool, len(m))
	for i, r := range m {
		if r.Name == "" {
			return fmt.Errorf("%w: route %d has no name", ErrInvalidMap, i)
		}
		if seen[r.Name] {
			return fmt.Errorf("%w: duplicate route %q", ErrInvalidMap, r.Name)
		}
		seen[r.Name] = true
		if r.NumBoxes <= 0 {
			return fmt.Errorf("%w: route %q has %d boxes", ErrInvalidMap, r.Name, r.NumBoxes)
		}
		if len(r.Path) == 0 {
			return fmt.Errorf("%w: route %q has an empty path", ErrInvalidMap, r.Name)
		}
	}
	return nil
}

// LoadMap reads a YAML list of routes.
func LoadMap(r io.Reader) (Map, error) {
	var m Map
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode map: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadCardSupply reads a YAML list of {card, count} entries.
func LoadCardSupply(r io.Reader) (CardSupply, error) {
	var s CardSupply
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode card supply: %w", err)
	}
	if _, err := s.Build(); err != nil {
		return nil, err
	}
	return s, nil
}

// BuiltinMap returns one of the bundled maps by name.
func BuiltinMap(name string) (Map, bool) {
	m, ok := builtinMaps[strings.ToLower(name)]
	return m, ok
}

// BuiltinCardSupply returns one of the bundled card sets by name.
func BuiltinCardSupply(name string) (CardSupply, bool) {
	s, ok := builtinCards[strings.ToLower(name)]
	return s, ok
}

var builtinMaps = map[string]Map{
	"metro-city": MetroCity,
	"tube-town":  TubeTown,
}

var builtinCards = map[string]CardSupply{
	"gamewright": GamewrightCards,
	"ozaku":      OzakuCards,
}

var MetroCity = Map{
	{Name: "red", NumBoxes: 2, HighValue: 2, LowValue: 1, Path: []NodeID{1, 2, 3, 4, 5, 6, 15, 16, 17, 18, 19}},
	{Name: "orange", NumBoxes: 2, HighValue: 4, LowValue: 2, Path: []NodeID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}},
	{Name: "pink", NumBoxes: 3, HighValue: 7, LowValue: 5, Path: []NodeID{20, 21, 22, 8, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32}},
	{Name: "green", NumBoxes: 3, HighValue: 5, LowValue: 3, Path: []NodeID{33, 34, 35, 36, 17, 37, 10, 38, 39, 40, 24, 41, 42, 43, 44, 6}},
	{Name: "yellow", NumBoxes: 3, HighValue: 4, LowValue: 3, Path: []NodeID{45, 18, 46, 47, 38, 39, 11, 24, 41, 48, 49, 50, 51, 52}},
	{Name: "purple", NumBoxes: 2, HighValue: 4, LowValue: 2, Path: []NodeID{19, 46, 68, 10, 23, 69, 24, 70, 71, 72, 73}},
	{Name: "blue", NumBoxes: 2, HighValue: 5, LowValue: 3, Path: []NodeID{19, 46, 68, 10, 38, 74, 40, 25, 70, 59, 60, 75, 76}},
	{Name: "grey", NumBoxes: 3, HighValue: 6, LowValue: 4, Path: []NodeID{53, 54, 55, 39, 11, 40, 56, 57, 26, 58, 59, 60, 61, 51}},
	{Name: "dark_green", NumBoxes: 3, HighValue: 4, LowValue: 2, Path: []NodeID{62, 63, 64, 38, 10, 37, 9, 8, 43, 65, 66, 67}},
}

var TubeTown = Map{
	{Name: "red", NumBoxes: 2, HighValue: 4, LowValue: 2, Path: []NodeID{1, 2, 3, 4, 5, 6, 7, 8, 9}},
	{Name: "orange", NumBoxes: 4, HighValue: 7, LowValue: 5, Path: []NodeID{10, 3, 11, 12, 13, 14, 15, 16, 78, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26}},
	{Name: "green", NumBoxes: 2, HighValue: 4, LowValue: 2, Path: []NodeID{14, 27, 16, 28, 29, 30, 31, 32, 33, 34}},
	{Name: "pink", NumBoxes: 3, HighValue: 6, LowValue: 4, Path: []NodeID{35, 36, 37, 38, 39, 40, 41, 42, 33, 21, 43, 44, 45, 46}},
	{Name: "yellow", NumBoxes: 2, HighValue: 3, LowValue: 2, Path: []NodeID{47, 48, 39, 40, 41, 42, 49, 50, 51}},
	{Name: "purple", NumBoxes: 3, HighValue: 4, LowValue: 2, Path: []NodeID{52, 53, 54, 55, 41, 31, 19, 56, 9, 57, 58}},
	{Name: "blue", NumBoxes: 2, HighValue: 5, LowValue: 3, Path: []NodeID{59, 60, 61, 53, 62, 39, 29, 63, 17, 64, 8, 65, 66}},
	{Name: "grey", NumBoxes: 2, HighValue: 2, LowValue: 1, Path: []NodeID{59, 67, 68, 69, 70, 51}},
	{Name: "dark_green", NumBoxes: 3, HighValue: 4, LowValue: 2, Path: []NodeID{71, 54, 72, 40, 30, 73, 18, 74, 64, 75, 6, 76, 77}},
}

var GamewrightCards = CardSupply{
	{Card: "transfer", Count: 2},
	{Card: "free", Count: 1},
	{Card: "skip2", Count: 2},
	{Card: "skip3", Count: 1},
	{Card: "n3", Count: 3},
	{Card: "n4", Count: 4},
	{Card: "n5", Count: 2},
	{Card: "reshuffle6", Count: 1},
}

var OzakuCards = CardSupply{
	{Card: "transfer", Count: 3},
	{Card: "free", Count: 1},
	{Card: "skip2", Count: 2},
	{Card: "skip3", Count: 1},
	{Card: "n2", Count: 2},
	{Card: "n3", Count: 4},
	{Card: "n4", Count: 5},
	{Card: "n5", Count: 2},
	{Card: "reshuffle6", Count: 1},
}
