// Package state manages the mutable world state: the player's location
// and inventory, the live rooms with their stashes, subjects, and
// event-completion flags. The static catalog is referenced, never changed.
package state

import (
	"github.com/nathoo/storycore/engine/errs"
	"github.com/nathoo/storycore/types"
)

// State is the complete mutable state of one play session. Handlers that
// mutate it work on a Clone and the engine swaps the clone in only when
// the whole action succeeds, so a failed action leaves no partial change.
type State struct {
	CurrentRoom int
	Player      types.Player
	Rooms       []types.Room
	Config      *types.Config
}

// New builds a fresh session state from a loaded catalog. Room blueprints
// are resolved into live rooms with their stash items, subjects, and
// scoped events populated. The starting room is the lowest room id.
func New(cfg *types.Config) *State {
	rooms := buildRooms(cfg)
	start := 0
	for _, r := range rooms {
		if start == 0 || r.ID < start {
			start = r.ID
		}
	}
	return &State{
		CurrentRoom: start,
		Player:      types.Player{Inventory: types.Storage{}},
		Rooms:       rooms,
		Config:      cfg,
	}
}

// buildRooms resolves blueprints against the catalog. Events are scoped
// to a room by their Location field; their order follows catalog order,
// which is also the tie-break order during resolution.
func buildRooms(cfg *types.Config) []types.Room {
	rooms := make([]types.Room, 0, len(cfg.Rooms))
	for _, bp := range cfg.Rooms {
		room := types.Room{
			ID:          bp.ID,
			Name:        bp.Name,
			Description: bp.Description,
			Exits:       append([]types.Exit(nil), bp.Exits...),
			Narrative:   bp.Narrative,
		}
		for _, itemID := range bp.ItemIDs {
			for _, item := range cfg.Items {
				if item.ID == itemID {
					room.Stash.Items = append(room.Stash.Items, item)
					break
				}
			}
		}
		for _, subjectID := range bp.SubjectIDs {
			for _, subject := range cfg.Subjects {
				if subject.ID == subjectID {
					room.Subjects = append(room.Subjects, subject)
					break
				}
			}
		}
		for _, event := range cfg.Events {
			if event.Location == bp.ID {
				room.Events = append(room.Events, event)
			}
		}
		rooms = append(rooms, room)
	}
	return rooms
}

// Clone deep-copies the mutable parts of the state. The catalog pointer
// is shared; it is immutable by contract.
func (s *State) Clone() *State {
	c := &State{
		CurrentRoom: s.CurrentRoom,
		Config:      s.Config,
	}
	c.Player.Inventory.Items = append([]types.Item(nil), s.Player.Inventory.Items...)
	c.Rooms = make([]types.Room, len(s.Rooms))
	for i, r := range s.Rooms {
		cr := r
		cr.Exits = append([]types.Exit(nil), r.Exits...)
		cr.Stash.Items = append([]types.Item(nil), r.Stash.Items...)
		cr.Events = make([]types.Event, len(r.Events))
		for j, ev := range r.Events {
			cev := ev
			cev.RequiredEvents = append([]int(nil), ev.RequiredEvents...)
			cr.Events[j] = cev
		}
		cr.Subjects = append([]types.Subject(nil), r.Subjects...)
		c.Rooms[i] = cr
	}
	return c
}

// Room returns the live room with the given id.
func (s *State) Room(id int) (*types.Room, error) {
	for i := range s.Rooms {
		if s.Rooms[i].ID == id {
			return &s.Rooms[i], nil
		}
	}
	return nil, errs.ErrInvalidRoom
}

// Current returns the room the player occupies.
func (s *State) Current() (*types.Room, error) {
	return s.Room(s.CurrentRoom)
}

// CanMove returns the destination room id for a direction, or
// ErrInvalidMovement when the room has no exit that way.
func CanMove(room *types.Room, dir types.Direction) (int, error) {
	for _, exit := range room.Exits {
		if exit.Direction == dir {
			return exit.RoomID, nil
		}
	}
	return 0, errs.ErrInvalidMovement
}

// MoveTo relocates the player through an exit of the current room.
func (s *State) MoveTo(dir types.Direction) error {
	room, err := s.Current()
	if err != nil {
		return err
	}
	dest, err := CanMove(room, dir)
	if err != nil {
		return err
	}
	s.CurrentRoom = dest
	return nil
}

// Narrative looks up a narrative in the catalog.
func (s *State) Narrative(id int) (types.Narrative, error) {
	for _, n := range s.Config.Narratives {
		if n.ID == id {
			return n, nil
		}
	}
	return types.Narrative{}, errs.ErrInvalidNarrative
}

// ItemByID looks up an item in the catalog.
func (s *State) ItemByID(id int) (types.Item, error) {
	for _, item := range s.Config.Items {
		if item.ID == id {
			return item, nil
		}
	}
	return types.Item{}, errs.ErrInvalidItem
}

// SubjectByID looks up a subject in the catalog.
func (s *State) SubjectByID(id int) (types.Subject, error) {
	for _, subject := range s.Config.Subjects {
		if subject.ID == id {
			return subject, nil
		}
	}
	return types.Subject{}, errs.ErrInvalidSubject
}

// EventCompleted reports whether the event with the given id has been
// completed in any room. Unknown ids report false.
func (s *State) EventCompleted(id int) bool {
	for i := range s.Rooms {
		for j := range s.Rooms[i].Events {
			if s.Rooms[i].Events[j].ID == id {
				return s.Rooms[i].Events[j].Completed
			}
		}
	}
	return false
}

// CompleteEvent marks an event completed. Completion is monotonic: there
// is no way to clear the flag.
func (s *State) CompleteEvent(id int) {
	for i := range s.Rooms {
		for j := range s.Rooms[i].Events {
			if s.Rooms[i].Events[j].ID == id {
				s.Rooms[i].Events[j].Completed = true
			}
		}
	}
}

// RemoveSubject removes a subject from the current room.
func (s *State) RemoveSubject(subjectID int) error {
	room, err := s.Current()
	if err != nil {
		return err
	}
	kept := room.Subjects[:0]
	for _, subject := range room.Subjects {
		if subject.ID != subjectID {
			kept = append(kept, subject)
		}
	}
	room.Subjects = kept
	return nil
}

// AddSubject places a catalog subject in the current room.
func (s *State) AddSubject(subject types.Subject) error {
	room, err := s.Current()
	if err != nil {
		return err
	}
	room.Subjects = append(room.Subjects, subject)
	return nil
}

// MoveSubject removes a subject from the current room and re-adds it to
// the room with the given id. A subject is in at most one room at a time.
func (s *State) MoveSubject(subjectID, location int) error {
	if err := s.RemoveSubject(subjectID); err != nil {
		return err
	}
	subject, err := s.SubjectByID(subjectID)
	if err != nil {
		return err
	}
	dest, err := s.Room(location)
	if err != nil {
		return err
	}
	dest.Subjects = append(dest.Subjects, subject)
	return nil
}

// AddItem appends an item to a storage.
func AddItem(st *types.Storage, item types.Item) {
	st.Items = append(st.Items, item)
}

// RemoveItem removes the named item from a storage and returns it, so the
// same item can be handed to another storage (drop, pick up).
func RemoveItem(st *types.Storage, name string) (types.Item, error) {
	for i, item := range st.Items {
		if item.Name == name {
			st.Items = append(st.Items[:i], st.Items[i+1:]...)
			return item, nil
		}
	}
	return types.Item{}, errs.ErrNoItem
}

// HasItem reports whether a storage holds the item with the given id.
func HasItem(st *types.Storage, id int) bool {
	for _, item := range st.Items {
		if item.ID == id {
			return true
		}
	}
	return false
}
