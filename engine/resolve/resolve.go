// Package resolve implements the event resolution engine: it filters the
// current room's events by the action's verb/item/subject shape, picks
// the first uncompleted candidate, verifies prerequisites, applies the
// event's state effects, and composes the outgoing message.
package resolve

import (
	"github.com/nathoo/storycore/engine/errs"
	"github.com/nathoo/storycore/engine/narrative"
	"github.com/nathoo/storycore/engine/parser"
	"github.com/nathoo/storycore/engine/state"
	"github.com/nathoo/storycore/types"
)

// BindRelevant filters the action's item and subject down to what is
// actually reachable: the item must be in the player's inventory and the
// subject must be present in the current room. Anything referenced by
// the raw action but not reachable is treated as absent.
func BindRelevant(s *state.State, act parser.Action) (*types.Item, *types.Subject) {
	room, err := s.Current()
	if err != nil {
		return nil, nil
	}
	var item *types.Item
	if act.Item != nil && state.HasItem(&s.Player.Inventory, act.Item.ID) {
		item = act.Item
	}
	var subject *types.Subject
	if act.Subject != nil {
		for i := range room.Subjects {
			if room.Subjects[i].ID == act.Subject.ID {
				subject = act.Subject
				break
			}
		}
	}
	return item, subject
}

// Resolve runs the full resolution pipeline for an action that reached
// the event engine. The state is mutated in place; the engine calls this
// on a clone and swaps it in only on success.
func Resolve(s *state.State, act parser.Action) (types.Result, error) {
	if act.Verb == nil {
		return types.Result{}, errs.ErrInvalidVerb
	}
	room, err := s.Current()
	if err != nil {
		return types.Result{}, err
	}

	item, subject := BindRelevant(s, act)

	pool := candidates(room.Events, act.Verb.ID, item, subject)
	event := firstEligible(pool)
	if event == nil {
		if subject != nil {
			return types.Result{Kind: types.ResultSubjectNoEvent, Text: subject.DefaultText}, nil
		}
		return types.Result{}, errs.ErrInvalidEvent
	}

	if !prerequisitesMet(s, event) {
		return types.Result{}, errs.ErrRequiredEventNotCompleted
	}

	fragments, err := applyEffects(s, event, subject)
	if err != nil {
		return types.Result{}, err
	}

	message, err := composeMessage(s, event, fragments)
	if err != nil {
		return types.Result{}, err
	}

	s.CompleteEvent(event.ID)
	if event.Destination != nil {
		s.CurrentRoom = *event.Destination
	}

	return types.Result{Kind: types.ResultEventSuccess, Message: &message}, nil
}

// candidates selects the room events whose required verb matches and
// whose required subject/item match exactly the combination actually
// bound. The shape match is exact: a verb+subject action never matches
// an event that additionally requires an item, and vice versa.
func candidates(events []types.Event, verbID int, item *types.Item, subject *types.Subject) []*types.Event {
	var out []*types.Event
	for i := range events {
		event := &events[i]
		if event.RequiredVerb == nil || *event.RequiredVerb != verbID {
			continue
		}
		switch {
		case subject != nil && item != nil:
			if event.RequiredSubject != nil && *event.RequiredSubject == subject.ID &&
				event.RequiredItem != nil && *event.RequiredItem == item.ID {
				out = append(out, event)
			}
		case subject != nil:
			if event.RequiredSubject != nil && *event.RequiredSubject == subject.ID &&
				event.RequiredItem == nil {
				out = append(out, event)
			}
		case item != nil:
			if event.RequiredItem != nil && *event.RequiredItem == item.ID &&
				event.RequiredSubject == nil {
				out = append(out, event)
			}
		}
	}
	return out
}

// firstEligible returns the first uncompleted candidate. Ties between
// uncompleted candidates fall back to catalog order — a data-authoring
// contract, deliberately not strengthened into a priority system.
func firstEligible(pool []*types.Event) *types.Event {
	for _, event := range pool {
		if !event.Completed {
			return event
		}
	}
	return nil
}

// prerequisitesMet reports whether every event listed in RequiredEvents
// has been completed.
func prerequisitesMet(s *state.State, event *types.Event) bool {
	for _, id := range event.RequiredEvents {
		if !s.EventCompleted(id) {
			return false
		}
	}
	return true
}

// composeMessage renders the event narrative. When the event replaces
// the old narrative, its text stands alone (and becomes the room's new
// narrative if NarrativeAfter was adopted during effects); otherwise the
// room's current narrative and the event narrative are shown together,
// separated by a blank line.
func composeMessage(s *state.State, event *types.Event, fragments string) (types.EventMessage, error) {
	if event.Narrative == nil {
		return types.EventMessage{}, errs.ErrInvalidNarrative
	}
	eventNarrative, err := s.Narrative(*event.Narrative)
	if err != nil {
		return types.EventMessage{}, err
	}

	if event.RemoveOldNarrative {
		return narrative.ParseRoomText(s, eventNarrative.Text, fragments, &event.ID)
	}

	room, err := s.Current()
	if err != nil {
		return types.EventMessage{}, err
	}
	roomNarrative, err := s.Narrative(room.Narrative)
	if err != nil {
		return types.EventMessage{}, err
	}
	text := roomNarrative.Text + "\n\n" + eventNarrative.Text
	return narrative.ParseRoomText(s, text, fragments, &event.ID)
}
