// Package parser turns raw player input into a classified Action.
// Intentionally dumb: token filtering, lookup tables, and positional
// rules — no NLP.
package parser

import (
	"regexp"
	"strings"

	"github.com/nathoo/storycore/types"
)

// ActionType classifies an Action by which fields are populated. The
// richest fully-populated combination wins; dispatch switches on this
// exhaustively.
type ActionType int

const (
	Invalid ActionType = iota
	Movement
	Verb
	VerbItem
	VerbSubject
	VerbItemSubject
)

func (t ActionType) String() string {
	switch t {
	case Movement:
		return "movement"
	case Verb:
		return "verb"
	case VerbItem:
		return "verb_item"
	case VerbSubject:
		return "verb_subject"
	case VerbItemSubject:
		return "verb_item_subject"
	default:
		return "invalid"
	}
}

// Action is the structured interpretation of one line of player input.
// All four content fields are independent and optional.
type Action struct {
	Verb     *types.Verb
	Subject  *types.Subject
	Item     *types.Item
	Movement types.Direction // "" when the input is not a movement
	Tokens   []string
	Input    string
}

// Valid reports whether the action can be dispatched: any verb, or a
// movement on its own.
func (a Action) Valid() bool {
	if a.Verb != nil {
		return true
	}
	return a.Movement != ""
}

// Type derives the action classification, richest shape first. An input
// can syntactically carry a verb, item, and subject at once only when it
// is ambiguous; the richer classification is always preferred so the
// dispatcher attempts the most specific handler first.
func (a Action) Type() ActionType {
	switch {
	case !a.Valid():
		return Invalid
	case a.Verb != nil && a.Item != nil && a.Subject != nil:
		return VerbItemSubject
	case a.Verb != nil && a.Subject != nil:
		return VerbSubject
	case a.Verb != nil && a.Item != nil:
		return VerbItem
	case a.Verb != nil:
		return Verb
	case a.Movement != "":
		return Movement
	default:
		return Invalid
	}
}

// Filter splits raw input on single spaces and drops every token found
// in the configured preposition or determiner sets. Comparison is
// case-insensitive but surviving tokens keep their original case. If
// nothing survives, a single empty-string token is returned so the
// action classifies as Invalid instead of failing here.
func Filter(cfg *types.Config, input string) []string {
	var tokens []string
	for _, word := range strings.Split(input, " ") {
		lower := strings.ToLower(word)
		if contains(cfg.Prepositions, lower) || contains(cfg.Determiners, lower) {
			continue
		}
		tokens = append(tokens, word)
	}
	if len(tokens) == 0 {
		return []string{""}
	}
	return tokens
}

// Parse filters the input and builds the Action from the surviving
// tokens. It is a pure function of the input and the catalog: identical
// input always yields an identical Action.
func Parse(cfg *types.Config, input string) Action {
	tokens := Filter(cfg, input)
	if len(tokens) == 1 && tokens[0] == "" {
		return Action{Tokens: tokens, Input: input}
	}
	return Action{
		Verb:     extractVerb(cfg, tokens),
		Movement: extractMovement(cfg, tokens),
		Subject:  extractSubject(cfg, tokens),
		Item:     extractItem(cfg, tokens, input),
		Tokens:   tokens,
		Input:    input,
	}
}

// extractVerb matches the first token, case-sensitively, against each
// verb's name list. First match wins; verb names are authored
// non-overlapping.
func extractVerb(cfg *types.Config, tokens []string) *types.Verb {
	for i := range cfg.Verbs {
		for _, name := range cfg.Verbs[i].Names {
			if name == tokens[0] {
				return &cfg.Verbs[i]
			}
		}
	}
	return nil
}

// directionWords maps full direction words and their single-letter
// abbreviations. Only the cardinal directions are recognized as
// movements; anything else in the allowed-directions set parses as a
// plain token.
var directionWords = map[string]types.Direction{
	"north": types.North, "n": types.North,
	"south": types.South, "s": types.South,
	"east": types.East, "e": types.East,
	"west": types.West, "w": types.West,
}

// extractMovement recognizes a movement in exactly two shapes: a lone
// direction word ("south", "s"), or a configured movement verb followed
// by a word from the allowed-directions set ("go south"). Any other
// token count is not a movement.
func extractMovement(cfg *types.Config, tokens []string) types.Direction {
	switch len(tokens) {
	case 1:
		if dir, ok := directionWords[tokens[0]]; ok {
			return dir
		}
	case 2:
		if contains(cfg.Movements, tokens[0]) && contains(cfg.Directions, tokens[1]) {
			if dir, ok := directionWords[tokens[1]]; ok {
				return dir
			}
		}
	}
	return ""
}

// extractSubject matches the second token (two-token input) or the last
// token (longer input) against subject names. One token or fewer never
// carries a subject.
func extractSubject(cfg *types.Config, tokens []string) *types.Subject {
	var candidate string
	switch {
	case len(tokens) < 2:
		return nil
	case len(tokens) == 2:
		candidate = tokens[1]
	default:
		candidate = tokens[len(tokens)-1]
	}
	for i := range cfg.Subjects {
		if cfg.Subjects[i].Name == candidate {
			return &cfg.Subjects[i]
		}
	}
	return nil
}

// extractItem matches a regex alternation of every item name against the
// original, unfiltered input and resolves the first capture. It only
// applies when there are at least two tokens and the second token is not
// a subject name — that rule disambiguates "look item1" from
// "look subject1".
func extractItem(cfg *types.Config, tokens []string, input string) *types.Item {
	if len(tokens) < 2 || len(cfg.Items) == 0 {
		return nil
	}
	for _, subject := range cfg.Subjects {
		if subject.Name == tokens[1] {
			return nil
		}
	}
	names := make([]string, len(cfg.Items))
	for i, item := range cfg.Items {
		names[i] = regexp.QuoteMeta(item.Name)
	}
	re := regexp.MustCompile("(" + strings.Join(names, "|") + ")")
	match := re.FindStringSubmatch(input)
	if match == nil {
		return nil
	}
	for i := range cfg.Items {
		if cfg.Items[i].Name == match[1] {
			return &cfg.Items[i]
		}
	}
	return nil
}

func contains(set []string, word string) bool {
	for _, s := range set {
		if s == word {
			return true
		}
	}
	return false
}
