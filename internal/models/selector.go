package models

import (
	"fmt"
	"strconv"
	"strings"
)

// SelectorKind is how a caller picks a gameweek.
type SelectorKind int

const (
	SelectCurrent SelectorKind = iota
	SelectNext
	SelectNumber
)

// GameweekSelector is "current", "next" or an explicit gameweek number.
type GameweekSelector struct {
	Kind   SelectorKind
	Number int
}

// CurrentGameweek is the default selector.
var CurrentGameweek = GameweekSelector{Kind: SelectCurrent}

// NextGameweek selects the upcoming gameweek.
var NextGameweek = GameweekSelector{Kind: SelectNext}

// GameweekNumber selects an explicit gameweek number.
func GameweekNumber(n int) GameweekSelector {
	return GameweekSelector{Kind: SelectNumber, Number: n}
}

// ParseGameweekSelector accepts "", "current", "next" or a positive integer.
func ParseGameweekSelector(s string) (GameweekSelector, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "current":
		return CurrentGameweek, nil
	case "next":
		return NextGameweek, nil
	default:
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 38 {
			return GameweekSelector{}, fmt.Errorf("invalid event %q: use current, next or a gameweek between 1 and 38", s)
		}
		return GameweekNumber(n), nil
	}
}

func (s GameweekSelector) String() string {
	switch s.Kind {
	case SelectNext:
		return "next"
	case SelectNumber:
		return strconv.Itoa(s.Number)
	default:
		return "current"
	}
}
