// Package narrative renders room and event text: it resolves {word}
// placeholders against the currently-relevant items and subjects, builds
// the exits listing, and assembles the final display message with its
// structured parts and highlight words.
package narrative

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/nathoo/storycore/engine/state"
	"github.com/nathoo/storycore/types"
)

var placeholderRE = regexp.MustCompile(`\{(.*?)\}`)

// ParseRoomText assembles the EventMessage for the current room. The
// narrative text and the event fragment text are templated against the
// highlight corpus; eventID, when non-nil, contributes the event's
// add/remove items to that corpus.
func ParseRoomText(s *state.State, narrativeText, eventText string, eventID *int) (types.EventMessage, error) {
	room, err := s.Current()
	if err != nil {
		return types.EventMessage{}, err
	}

	corpus := highlightCorpus(s, room, eventID)

	roomText, roomWords := resolveTemplates(narrativeText, corpus)
	evText, evWords := resolveTemplates(eventText, corpus)
	exits := exitsListing(s, room)

	words := append(roomWords, evWords...)
	sort.Strings(words)
	words = dedup(words)

	return types.EventMessage{
		Message: roomText + "\n" + evText + "\n\n" + exits,
		Parts: map[types.MessagePart]string{
			types.PartRoomText:  roomText,
			types.PartEventText: evText,
			types.PartExits:     exits,
		},
		TemplatedWords: words,
	}, nil
}

// highlightCorpus collects the names eligible for highlighting: items in
// the player's inventory, items in the room's stash, items moved by the
// current event, and subjects present in the room.
func highlightCorpus(s *state.State, room *types.Room, eventID *int) []string {
	var corpus []string
	for _, item := range s.Player.Inventory.Items {
		corpus = append(corpus, item.Name)
	}
	for _, item := range room.Stash.Items {
		corpus = append(corpus, item.Name)
	}
	if eventID != nil {
		for _, event := range s.Config.Events {
			if event.ID != *eventID {
				continue
			}
			for _, id := range []*int{event.AddItem, event.RemoveItem} {
				if id == nil {
					continue
				}
				if item, err := s.ItemByID(*id); err == nil {
					corpus = append(corpus, item.Name)
				}
			}
		}
	}
	for _, subject := range room.Subjects {
		corpus = append(corpus, subject.Name)
	}
	return corpus
}

// resolveTemplates strips {word} markers line by line. Words found in the
// corpus are recorded for highlighting; unknown placeholders degrade to
// plain text instead of leaking braces.
func resolveTemplates(text string, corpus []string) (string, []string) {
	var words []string
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		for _, match := range placeholderRE.FindAllStringSubmatch(line, -1) {
			if containsWord(corpus, match[1]) {
				words = append(words, match[1])
			}
		}
		lines[i] = placeholderRE.ReplaceAllString(line, "$1")
	}
	return strings.Join(lines, "\n"), words
}

// exitsListing describes each exit by the destination room's description.
func exitsListing(s *state.State, room *types.Room) string {
	var parts []string
	for _, exit := range room.Exits {
		dest, err := s.Room(exit.RoomID)
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("to the %s you see %s", exit.Direction, dest.Description))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Exits:\n" + strings.Join(parts, "\n")
}

func containsWord(corpus []string, word string) bool {
	for _, w := range corpus {
		if w == word {
			return true
		}
	}
	return false
}

func dedup(sorted []string) []string {
	out := sorted[:0]
	for i, w := range sorted {
		if i == 0 || sorted[i-1] != w {
			out = append(out, w)
		}
	}
	return out
}
