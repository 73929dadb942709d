package dialog

import (
	"errors"
	"fmt"
)

// State is the controller's position in the turn sequence.
type State int

const (
	StateStart State = iota
	StateAwaitingDetailChoice
	StateMenuLoop
	StateExited
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateAwaitingDetailChoice:
		return "AwaitingDetailChoice"
	case StateMenuLoop:
		return "MenuLoop"
	case StateExited:
		return "Exited"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrUnrecognizedMenuChoice is returned by ParseMenuChoice for anything outside the keyword set.
// The controller treats it as a normal transition back to the menu.
var ErrUnrecognizedMenuChoice = errors.New("unrecognized menu choice")

// MenuChoice is one of the menu keywords.
type MenuChoice string

const (
	ChoiceWeather  MenuChoice = "weather"
	ChoiceLocation MenuChoice = "location"
	ChoiceExit     MenuChoice = "exit"
)

// MenuKeywords is the vocabulary the menu corrector works from.
var MenuKeywords = []string{string(ChoiceWeather), string(ChoiceLocation), string(ChoiceExit)}

// ParseMenuChoice matches s exactly against the keyword set. Callers normalize first.
func ParseMenuChoice(s string) (MenuChoice, error) {
	switch c := MenuChoice(s); c {
	case ChoiceWeather, ChoiceLocation, ChoiceExit:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedMenuChoice, s)
	}
}
