package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/nathoo/storycore/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

var knownDirections = map[types.Direction]bool{
	types.North: true,
	types.South: true,
	types.East:  true,
	types.West:  true,
	types.Up:    true,
	types.Down:  true,
}

// Validate checks the catalog for referential integrity. Every id a
// room or event references must name a defined entry; a broken
// reference is a hard load failure, never a runtime surprise.
func Validate(cfg *types.Config) error {
	ve := &ValidationError{}

	verbs := indexVerbs(cfg, ve)
	items := indexItems(cfg, ve)
	subjects := indexSubjects(cfg, ve)
	narratives := indexNarratives(cfg, ve)
	rooms := indexRooms(cfg, ve)

	if len(cfg.Rooms) == 0 {
		ve.Errors = append(ve.Errors, "catalog defines no rooms")
	}
	if len(cfg.Verbs) == 0 {
		ve.Errors = append(ve.Errors, "catalog defines no verbs")
	}

	for _, v := range cfg.Verbs {
		if len(v.Names) == 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("verb %d has no names", v.ID))
		}
		switch v.Function {
		case types.VerbNormal, types.VerbQuit, types.VerbHelp, types.VerbLook,
			types.VerbInventory, types.VerbTake, types.VerbDrop, types.VerbTalk:
		default:
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"verb %d has unknown verb_function %q", v.ID, v.Function))
		}
	}

	for _, r := range cfg.Rooms {
		if !narratives[r.Narrative] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"room %d references undefined narrative %d", r.ID, r.Narrative))
		}
		for _, ex := range r.Exits {
			if !knownDirections[ex.Direction] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %d has exit with unknown direction %q", r.ID, ex.Direction))
			}
			if !rooms[ex.RoomID] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %d exit %s points to undefined room %d", r.ID, ex.Direction, ex.RoomID))
			}
		}
		for _, id := range r.ItemIDs {
			if !items[id] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %d references undefined item %d", r.ID, id))
			}
		}
		for _, id := range r.SubjectIDs {
			if !subjects[id] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"room %d references undefined subject %d", r.ID, id))
			}
		}
	}

	eventIDs := map[int]bool{}
	for _, e := range cfg.Events {
		if eventIDs[e.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate event id %d", e.ID))
		}
		eventIDs[e.ID] = true
		validateEvent(e, rooms, verbs, items, subjects, narratives, ve)
	}
	for _, e := range cfg.Events {
		for _, req := range e.RequiredEvents {
			if !eventIDs[req] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"event %d requires undefined event %d", e.ID, req))
			}
		}
	}

	// Warnings: a game without a quit verb traps the player.
	if !hasFunction(cfg, types.VerbQuit) {
		ve.Warnings = append(ve.Warnings, "no verb with verb_function \"quit\" defined")
	}

	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateEvent(e types.Event, rooms, verbs, items, subjects, narratives map[int]bool, ve *ValidationError) {
	check := func(ref *int, set map[int]bool, what string) {
		if ref != nil && !set[*ref] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"event %d references undefined %s %d", e.ID, what, *ref))
		}
	}
	if !rooms[e.Location] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"event %d located in undefined room %d", e.ID, e.Location))
	}
	check(e.Destination, rooms, "destination room")
	check(e.Narrative, narratives, "narrative")
	check(e.NarrativeAfter, narratives, "narrative")
	check(e.RequiredVerb, verbs, "verb")
	check(e.RequiredSubject, subjects, "subject")
	check(e.RequiredItem, items, "item")
	check(e.AddItem, items, "item")
	check(e.RemoveItem, items, "item")
	check(e.AddSubject, subjects, "subject")
	check(e.MoveSubjectToLocation, rooms, "room")
	if e.RemoveSubject && e.RequiredSubject == nil {
		ve.Warnings = append(ve.Warnings, fmt.Sprintf(
			"event %d removes its subject but requires none", e.ID))
	}
}

func hasFunction(cfg *types.Config, fn types.VerbFunction) bool {
	for _, v := range cfg.Verbs {
		if v.Function == fn {
			return true
		}
	}
	return false
}

func indexVerbs(cfg *types.Config, ve *ValidationError) map[int]bool {
	set := map[int]bool{}
	for _, v := range cfg.Verbs {
		if set[v.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate verb id %d", v.ID))
		}
		set[v.ID] = true
	}
	return set
}

func indexItems(cfg *types.Config, ve *ValidationError) map[int]bool {
	set := map[int]bool{}
	for _, it := range cfg.Items {
		if set[it.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate item id %d", it.ID))
		}
		set[it.ID] = true
	}
	return set
}

func indexSubjects(cfg *types.Config, ve *ValidationError) map[int]bool {
	set := map[int]bool{}
	for _, s := range cfg.Subjects {
		if set[s.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate subject id %d", s.ID))
		}
		set[s.ID] = true
	}
	return set
}

func indexNarratives(cfg *types.Config, ve *ValidationError) map[int]bool {
	set := map[int]bool{}
	for _, n := range cfg.Narratives {
		if set[n.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate narrative id %d", n.ID))
		}
		set[n.ID] = true
	}
	return set
}

func indexRooms(cfg *types.Config, ve *ValidationError) map[int]bool {
	set := map[int]bool{}
	for _, r := range cfg.Rooms {
		if set[r.ID] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate room id %d", r.ID))
		}
		set[r.ID] = true
	}
	return set
}
