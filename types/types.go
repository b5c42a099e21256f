// Package types defines the shared data structures for the Storycore engine.
// This package contains only type definitions — no logic, no methods.
package types

// VerbFunction tags a verb with the built-in behavior it triggers.
// Verbs can be named anything; the function decides how the dispatcher
// routes them. Normal verbs are handled by the event resolution engine.
type VerbFunction string

const (
	VerbQuit      VerbFunction = "quit"
	VerbHelp      VerbFunction = "help"
	VerbLook      VerbFunction = "look"
	VerbInventory VerbFunction = "inventory"
	VerbTake      VerbFunction = "take"
	VerbDrop      VerbFunction = "drop"
	VerbTalk      VerbFunction = "talk"
	VerbNormal    VerbFunction = "normal"
)

// Direction is a movement direction keyword.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
	Up    Direction = "up"
	Down  Direction = "down"
)

// Verb is a player-usable action word. A verb may have several names
// ("take", "grab", "get") but exactly one function.
type Verb struct {
	ID       int          `yaml:"id" json:"id"`
	Names    []string     `yaml:"names" json:"names"`
	Function VerbFunction `yaml:"verb_function" json:"verb_function"`
}

// Item is a world object. Identity is by ID; Name is what the player
// types and must be unique among items in the active catalog.
type Item struct {
	ID          int    `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	CanPick     bool   `yaml:"can_pick" json:"can_pick"`
}

// Subject is an interactive presence in a room: a person, a desk, a door.
// DefaultText is shown when the player interacts with the subject and no
// uncompleted event currently matches.
type Subject struct {
	ID          int    `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	DefaultText string `yaml:"default_text" json:"default_text"`
}

// Narrative is an authored text block, possibly containing {word}
// placeholders that resolve against currently-relevant item and subject
// names.
type Narrative struct {
	ID          int    `yaml:"id" json:"id"`
	Text        string `yaml:"text" json:"text"`
	Description string `yaml:"description" json:"description"`
}

// Event is a room-scoped rule: a trigger shape (verb + subject and/or
// item), a set of state effects, and a one-time completion flag.
// Name and Description exist to keep authored catalogs readable; the
// engine never shows them to the player.
type Event struct {
	ID                    int    `yaml:"id" json:"id"`
	Location              int    `yaml:"location" json:"location"`
	Name                  string `yaml:"name" json:"name"`
	Description           string `yaml:"description" json:"description"`
	Destination           *int   `yaml:"destination" json:"destination"`
	Narrative             *int   `yaml:"narrative" json:"narrative"`
	RequiredVerb          *int   `yaml:"required_verb" json:"required_verb"`
	RequiredSubject       *int   `yaml:"required_subject" json:"required_subject"`
	RequiredItem          *int   `yaml:"required_item" json:"required_item"`
	Completed             bool   `yaml:"completed" json:"completed"`
	AddItem               *int   `yaml:"add_item" json:"add_item"`
	RemoveItem            *int   `yaml:"remove_item" json:"remove_item"`
	RemoveOldNarrative    bool   `yaml:"remove_old_narrative" json:"remove_old_narrative"`
	NarrativeAfter        *int   `yaml:"narrative_after" json:"narrative_after"`
	RequiredEvents        []int  `yaml:"required_events" json:"required_events"`
	AddSubject            *int   `yaml:"add_subject" json:"add_subject"`
	RemoveSubject         bool   `yaml:"remove_subject" json:"remove_subject"`
	MoveSubjectToLocation *int   `yaml:"move_subject_to_location" json:"move_subject_to_location"`
}

// Exit links a room to a destination room in one direction.
type Exit struct {
	RoomID    int       `yaml:"room_id" json:"room_id"`
	Direction Direction `yaml:"direction" json:"direction"`
}

// Storage is the live item list owned by a room (its stash) or by the
// player (the inventory).
type Storage struct {
	Items []Item `yaml:"items" json:"items"`
}

// RoomBlueprint is the catalog form of a room: items, subjects, and the
// narrative referenced by id. The state package turns blueprints into
// live Rooms.
type RoomBlueprint struct {
	ID          int    `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Exits       []Exit `yaml:"exits" json:"exits"`
	ItemIDs     []int  `yaml:"item_ids" json:"item_ids"`
	Narrative   int    `yaml:"narrative" json:"narrative"`
	SubjectIDs  []int  `yaml:"subject_ids" json:"subject_ids"`
}

// Room is the live form of a room: resolved subjects and stash items,
// the events scoped to it (with their completion flags), and its current
// narrative id, which an event may replace for the rest of the session.
type Room struct {
	ID          int
	Name        string
	Description string
	Exits       []Exit
	Stash       Storage
	Events      []Event
	Narrative   int
	Subjects    []Subject
}

// Player holds the player's runtime state.
type Player struct {
	Inventory Storage
}

// Config is the full static catalog produced by the loader. It is never
// mutated after load; all mutable state lives in state.State.
type Config struct {
	Prepositions []string        `yaml:"prepositions" json:"prepositions"`
	Determiners  []string        `yaml:"determiners" json:"determiners"`
	Movements    []string        `yaml:"movements" json:"movements"`
	Directions   []string        `yaml:"directions" json:"directions"`
	Verbs        []Verb          `yaml:"allowed_verbs" json:"allowed_verbs"`
	Items        []Item          `yaml:"items" json:"items"`
	Subjects     []Subject       `yaml:"subjects" json:"subjects"`
	Narratives   []Narrative     `yaml:"narratives" json:"narratives"`
	Events       []Event         `yaml:"events" json:"events"`
	Rooms        []RoomBlueprint `yaml:"room_blueprints" json:"room_blueprints"`
	Intro        string          `yaml:"intro" json:"intro"`
}

// MessagePart keys the structured breakdown of an EventMessage.
type MessagePart string

const (
	PartRoomText  MessagePart = "room_text"
	PartEventText MessagePart = "event_text"
	PartExits     MessagePart = "exits"
)

// EventMessage is the rendered output of a successful event or movement:
// the assembled display message, its structured parts, and the resolved
// placeholder words a front-end may choose to highlight.
type EventMessage struct {
	Message        string                 `json:"message"`
	Parts          map[MessagePart]string `json:"message_parts"`
	TemplatedWords []string               `json:"templated_words"`
}

// ResultKind discriminates the Result union.
type ResultKind string

const (
	ResultHelp           ResultKind = "help"
	ResultLook           ResultKind = "look"
	ResultNewItem        ResultKind = "new_item"
	ResultDropItem       ResultKind = "drop_item"
	ResultInventory      ResultKind = "inventory"
	ResultSubjectNoEvent ResultKind = "subject_no_event"
	ResultEventSuccess   ResultKind = "event_success"
	ResultQuit           ResultKind = "quit"
)

// Result is the outcome of processing one line of player input. Text is
// set for the plain-text kinds; Message is set only for ResultEventSuccess.
type Result struct {
	Kind    ResultKind    `json:"kind"`
	Text    string        `json:"text,omitempty"`
	Message *EventMessage `json:"message,omitempty"`
}
