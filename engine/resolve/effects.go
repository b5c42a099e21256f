package resolve

import (
	"fmt"
	"strings"

	"github.com/nathoo/storycore/engine/state"
	"github.com/nathoo/storycore/types"
)

// applyEffects applies a selected event's state effects in fixed order:
// add item, remove item, remove/move subject, add subject, adopt the
// replacement narrative. It returns the accumulated message fragments
// ("You now have…"). Any failure aborts the whole action; the engine's
// copy-then-swap guarantees the partial mutations are discarded.
func applyEffects(s *state.State, event *types.Event, subject *types.Subject) (string, error) {
	var fragments []string

	if event.AddItem != nil {
		item, err := s.ItemByID(*event.AddItem)
		if err != nil {
			return "", err
		}
		state.AddItem(&s.Player.Inventory, item)
		fragments = append(fragments, fmt.Sprintf("\nYou now have a %s\n", item.Name))
	}

	if event.RemoveItem != nil {
		item, err := s.ItemByID(*event.RemoveItem)
		if err != nil {
			return "", err
		}
		removed, err := state.RemoveItem(&s.Player.Inventory, item.Name)
		if err != nil {
			return "", err
		}
		fragments = append(fragments, fmt.Sprintf("\nYou no longer have a %s\n", removed.Name))
	}

	if event.RemoveSubject && subject != nil {
		if event.MoveSubjectToLocation != nil {
			if err := s.MoveSubject(subject.ID, *event.MoveSubjectToLocation); err != nil {
				return "", err
			}
		} else if err := s.RemoveSubject(subject.ID); err != nil {
			return "", err
		}
	}

	if event.AddSubject != nil {
		added, err := s.SubjectByID(*event.AddSubject)
		if err != nil {
			return "", err
		}
		if err := s.AddSubject(added); err != nil {
			return "", err
		}
	}

	// A replaced narrative is permanent: the room's baseline description
	// changes for the rest of the session.
	if event.RemoveOldNarrative && event.NarrativeAfter != nil {
		room, err := s.Current()
		if err != nil {
			return "", err
		}
		room.Narrative = *event.NarrativeAfter
	}

	return strings.Join(fragments, ""), nil
}
