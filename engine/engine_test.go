package engine

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/nathoo/storycore/engine/errs"
	"github.com/nathoo/storycore/types"
)

func intp(i int) *int { return &i }

// fixture: a gatehouse demo with a fixed statue, a portable key, and a
// gatekeeper who opens the gate when given the key.
func testConfig() *types.Config {
	return &types.Config{
		Prepositions: []string{"at", "to", "the", "with"},
		Determiners:  []string{"a", "an", "my"},
		Movements:    []string{"go", "walk"},
		Directions:   []string{"north", "south", "east", "west", "up", "down"},
		Verbs: []types.Verb{
			{ID: 1, Names: []string{"quit", "q"}, Function: types.VerbQuit},
			{ID: 2, Names: []string{"help"}, Function: types.VerbHelp},
			{ID: 3, Names: []string{"look", "examine"}, Function: types.VerbLook},
			{ID: 4, Names: []string{"inventory", "i"}, Function: types.VerbInventory},
			{ID: 5, Names: []string{"take", "grab"}, Function: types.VerbTake},
			{ID: 6, Names: []string{"drop"}, Function: types.VerbDrop},
			{ID: 7, Names: []string{"talk", "speak"}, Function: types.VerbTalk},
			{ID: 8, Names: []string{"give"}, Function: types.VerbNormal},
		},
		Items: []types.Item{
			{ID: 1, Name: "statue", Description: "Carved granite. Far too heavy.", CanPick: false},
			{ID: 2, Name: "brass key", Description: "A small brass key.", CanPick: true},
		},
		Subjects: []types.Subject{
			{ID: 1, Name: "gatekeeper", Description: "An old man in a grey cloak.",
				DefaultText: "The gatekeeper ignores you."},
		},
		Narratives: []types.Narrative{
			{ID: 1, Text: "A stone courtyard. A {brass key} glints by the {statue}."},
			{ID: 2, Text: "A narrow path beyond the gate."},
			{ID: 3, Text: "The gatekeeper takes the {brass key} and opens the gate."},
		},
		Events: []types.Event{
			{ID: 1, Location: 1, Name: "give key",
				RequiredVerb: intp(8), RequiredSubject: intp(1), RequiredItem: intp(2),
				Narrative: intp(3), RemoveItem: intp(2), Destination: intp(2),
				RequiredEvents: []int{2}},
			{ID: 2, Location: 1, Name: "greet",
				RequiredVerb: intp(7), RequiredSubject: intp(1), Narrative: intp(1)},
		},
		Rooms: []types.RoomBlueprint{
			{ID: 1, Name: "courtyard", Description: "a stone courtyard", Narrative: 1,
				Exits:   []types.Exit{{RoomID: 2, Direction: types.North}},
				ItemIDs: []int{1, 2}, SubjectIDs: []int{1}},
			{ID: 2, Name: "path", Description: "a narrow path", Narrative: 2,
				Exits: []types.Exit{{RoomID: 1, Direction: types.South}}},
		},
		Intro: "Welcome to the gatehouse.",
	}
}

func TestProcess_InvalidInput(t *testing.T) {
	e := New(testConfig())

	for _, input := range []string{"", "   ", "at the", "xyzzy"} {
		if _, err := e.Process(input); !errors.Is(err, errs.ErrInvalidInput) {
			t.Errorf("Process(%q) err = %v, want ErrInvalidInput", input, err)
		}
	}
}

func TestProcess_TakeCantPick(t *testing.T) {
	e := New(testConfig())

	_, err := e.Process("take statue")
	if !errors.Is(err, errs.ErrCantPick) {
		t.Fatalf("err = %v, want ErrCantPick", err)
	}
	// The statue stays in the stash.
	room, _ := e.State.Room(1)
	if len(room.Stash.Items) != 2 {
		t.Errorf("stash = %v, want both items untouched", room.Stash.Items)
	}
}

func TestProcess_TakeSucceeds(t *testing.T) {
	e := New(testConfig())

	result, err := e.Process("take the brass key")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.Kind != types.ResultNewItem {
		t.Errorf("Kind = %s, want new_item", result.Kind)
	}
	if !strings.Contains(result.Text, "brass key") {
		t.Errorf("Text = %q, want mention of brass key", result.Text)
	}

	room, _ := e.State.Room(1)
	if len(room.Stash.Items) != 1 || room.Stash.Items[0].Name != "statue" {
		t.Errorf("stash = %v, want statue only", room.Stash.Items)
	}
	if len(e.State.Player.Inventory.Items) != 1 {
		t.Errorf("inventory = %v, want brass key", e.State.Player.Inventory.Items)
	}
}

func TestProcess_TakeAbsentItem(t *testing.T) {
	e := New(testConfig())
	if _, err := e.Process("go north"); err != nil {
		t.Fatalf("move: %v", err)
	}
	// The key is back in the courtyard.
	if _, err := e.Process("take brass key"); !errors.Is(err, errs.ErrNoItem) {
		t.Errorf("err = %v, want ErrNoItem", err)
	}
}

func TestProcess_PickDropRoundTrip(t *testing.T) {
	e := New(testConfig())

	before := stashNames(t, e, 1)
	if _, err := e.Process("take brass key"); err != nil {
		t.Fatalf("take: %v", err)
	}
	result, err := e.Process("drop brass key")
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if result.Kind != types.ResultDropItem {
		t.Errorf("Kind = %s, want drop_item", result.Kind)
	}

	after := stashNames(t, e, 1)
	if !equalSets(before, after) {
		t.Errorf("stash membership changed: before %v, after %v", before, after)
	}
	if len(e.State.Player.Inventory.Items) != 0 {
		t.Errorf("inventory not empty: %v", e.State.Player.Inventory.Items)
	}
}

func TestProcess_DropUnheldItem(t *testing.T) {
	e := New(testConfig())
	if _, err := e.Process("drop brass key"); !errors.Is(err, errs.ErrNoItem) {
		t.Errorf("err = %v, want ErrNoItem", err)
	}
}

func TestProcess_Movement(t *testing.T) {
	e := New(testConfig())

	result, err := e.Process("go north")
	if err != nil {
		t.Fatalf("go north: %v", err)
	}
	if e.State.CurrentRoom != 2 {
		t.Errorf("CurrentRoom = %d, want 2", e.State.CurrentRoom)
	}
	if !strings.Contains(result.Message.Message, "A narrow path beyond the gate.") {
		t.Errorf("message = %q", result.Message.Message)
	}

	// Single-letter abbreviation moves back.
	if _, err := e.Process("s"); err != nil {
		t.Fatalf("s: %v", err)
	}
	if e.State.CurrentRoom != 1 {
		t.Errorf("CurrentRoom = %d, want 1", e.State.CurrentRoom)
	}

	// No exit west.
	if _, err := e.Process("go west"); !errors.Is(err, errs.ErrInvalidMovement) {
		t.Errorf("err = %v, want ErrInvalidMovement", err)
	}
}

func TestProcess_LookAndInventory(t *testing.T) {
	e := New(testConfig())

	result, err := e.Process("look")
	if err != nil {
		t.Fatalf("look: %v", err)
	}
	if !strings.Contains(result.Text, "a stone courtyard") ||
		!strings.Contains(result.Text, "a brass key") {
		t.Errorf("look text = %q", result.Text)
	}

	result, err = e.Process("inventory")
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	if result.Text != "You are not carrying anything." {
		t.Errorf("inventory text = %q", result.Text)
	}

	if _, err := e.Process("take brass key"); err != nil {
		t.Fatalf("take: %v", err)
	}
	result, _ = e.Process("i")
	if !strings.Contains(result.Text, "a brass key") {
		t.Errorf("inventory text = %q", result.Text)
	}
}

func TestProcess_LookAtItemAndSubject(t *testing.T) {
	e := New(testConfig())

	result, err := e.Process("look at the statue")
	if err != nil {
		t.Fatalf("look at statue: %v", err)
	}
	if result.Text != "Carved granite. Far too heavy." {
		t.Errorf("Text = %q", result.Text)
	}

	result, err = e.Process("look at the gatekeeper")
	if err != nil {
		t.Fatalf("look at gatekeeper: %v", err)
	}
	if result.Text != "An old man in a grey cloak." {
		t.Errorf("Text = %q", result.Text)
	}
}

func TestProcess_HelpAndQuit(t *testing.T) {
	e := New(testConfig())

	result, err := e.Process("help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	if result.Kind != types.ResultHelp {
		t.Errorf("Kind = %s", result.Kind)
	}
	for _, name := range []string{"quit", "look", "take", "give"} {
		if !strings.Contains(result.Text, name) {
			t.Errorf("help text missing verb %q", name)
		}
	}

	result, err = e.Process("quit")
	if err != nil {
		t.Fatalf("quit: %v", err)
	}
	if result.Kind != types.ResultQuit {
		t.Errorf("Kind = %s, want quit", result.Kind)
	}
}

// The full gatehouse scenario: the gated event fails before its
// prerequisite, then the chain runs through and moves the player.
func TestProcess_EventChain(t *testing.T) {
	e := New(testConfig())

	if _, err := e.Process("take brass key"); err != nil {
		t.Fatalf("take: %v", err)
	}

	// Gate: event 1 requires event 2 first.
	_, err := e.Process("give brass key to gatekeeper")
	if !errors.Is(err, errs.ErrRequiredEventNotCompleted) {
		t.Fatalf("err = %v, want ErrRequiredEventNotCompleted", err)
	}
	// The failed attempt is fully rolled back.
	if !hasInventoryItem(e, 2) {
		t.Fatal("failed action must not consume the key")
	}
	if e.State.EventCompleted(1) {
		t.Fatal("failed action must not complete the event")
	}

	if _, err := e.Process("talk to the gatekeeper"); err != nil {
		t.Fatalf("talk: %v", err)
	}

	result, err := e.Process("give brass key to gatekeeper")
	if err != nil {
		t.Fatalf("give after prerequisite: %v", err)
	}
	if result.Kind != types.ResultEventSuccess {
		t.Errorf("Kind = %s", result.Kind)
	}
	if !strings.Contains(result.Message.Message, "opens the gate") {
		t.Errorf("message = %q", result.Message.Message)
	}
	if hasInventoryItem(e, 2) {
		t.Error("key should be consumed")
	}
	if e.State.CurrentRoom != 2 {
		t.Errorf("CurrentRoom = %d, want destination 2", e.State.CurrentRoom)
	}
}

func TestProcess_TalkFallsBackToDefaultText(t *testing.T) {
	e := New(testConfig())

	if _, err := e.Process("talk to the gatekeeper"); err != nil {
		t.Fatalf("first talk: %v", err)
	}
	result, err := e.Process("talk to the gatekeeper")
	if err != nil {
		t.Fatalf("second talk: %v", err)
	}
	if result.Kind != types.ResultSubjectNoEvent {
		t.Errorf("Kind = %s, want subject_no_event", result.Kind)
	}
	if result.Text != "The gatekeeper ignores you." {
		t.Errorf("Text = %q", result.Text)
	}
}

func TestIntroAndFirstRoomText(t *testing.T) {
	e := New(testConfig())

	if e.Intro() != "Welcome to the gatehouse." {
		t.Errorf("Intro = %q", e.Intro())
	}

	msg, err := e.FirstRoomText()
	if err != nil {
		t.Fatalf("FirstRoomText: %v", err)
	}
	if !strings.Contains(msg.Message, "A brass key glints by the statue.") {
		t.Errorf("message = %q", msg.Message)
	}
	if !equalSets(msg.TemplatedWords, []string{"brass key", "statue"}) {
		t.Errorf("TemplatedWords = %v", msg.TemplatedWords)
	}
}

// Random take/drop/move sequences keep the world's total item population
// constant: every item is in exactly one stash or the inventory.
func TestProcess_ItemConservation(t *testing.T) {
	inputs := []string{
		"take brass key", "drop brass key", "take statue",
		"go north", "go south", "look", "talk to the gatekeeper",
	}

	rapid.Check(t, func(t *rapid.T) {
		e := New(testConfig())
		steps := rapid.IntRange(0, 20).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			input := rapid.SampledFrom(inputs).Draw(t, "input")
			_, _ = e.Process(input) // failures roll back, so always legal
		}

		total := len(e.State.Player.Inventory.Items)
		for i := range e.State.Rooms {
			total += len(e.State.Rooms[i].Stash.Items)
		}
		if total != 2 {
			t.Fatalf("item population = %d, want 2", total)
		}
	})
}

func stashNames(t *testing.T, e *Engine, roomID int) []string {
	t.Helper()
	room, err := e.State.Room(roomID)
	if err != nil {
		t.Fatalf("Room(%d): %v", roomID, err)
	}
	names := make([]string, 0, len(room.Stash.Items))
	for _, item := range room.Stash.Items {
		names = append(names, item.Name)
	}
	return names
}

func hasInventoryItem(e *Engine, id int) bool {
	for _, item := range e.State.Player.Inventory.Items {
		if item.ID == id {
			return true
		}
	}
	return false
}

func equalSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
