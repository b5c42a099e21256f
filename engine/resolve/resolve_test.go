package resolve

import (
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/storycore/engine/errs"
	"github.com/nathoo/storycore/engine/parser"
	"github.com/nathoo/storycore/engine/state"
	"github.com/nathoo/storycore/types"
)

func intp(i int) *int { return &i }

// fixture: a gatehouse with a gatekeeper. Giving him the key opens the
// way; a second, gated event requires the first one.
func testConfig() *types.Config {
	return &types.Config{
		Prepositions: []string{"to", "the"},
		Movements:    []string{"go"},
		Directions:   []string{"north", "south", "east", "west", "up", "down"},
		Verbs: []types.Verb{
			{ID: 1, Names: []string{"give"}, Function: types.VerbNormal},
			{ID: 2, Names: []string{"talk"}, Function: types.VerbTalk},
			{ID: 3, Names: []string{"show"}, Function: types.VerbNormal},
		},
		Items: []types.Item{
			{ID: 1, Name: "brass key", CanPick: true},
			{ID: 2, Name: "medallion", CanPick: true},
		},
		Subjects: []types.Subject{
			{ID: 1, Name: "gatekeeper", DefaultText: "The gatekeeper ignores you."},
			{ID: 2, Name: "watchman", DefaultText: "The watchman looks away."},
		},
		Narratives: []types.Narrative{
			{ID: 1, Text: "The gatehouse courtyard."},
			{ID: 2, Text: "The far side of the gate."},
			{ID: 3, Text: "The gatekeeper takes the {brass key} and opens the gate."},
			{ID: 4, Text: "The gatekeeper nods at the {medallion}."},
			{ID: 5, Text: "The courtyard, its gate standing open."},
		},
		Events: []types.Event{
			{ID: 1, Location: 1, Name: "give key",
				RequiredVerb: intp(1), RequiredSubject: intp(1), RequiredItem: intp(1),
				Narrative: intp(3), RemoveItem: intp(1),
				RemoveOldNarrative: true, NarrativeAfter: intp(5)},
			{ID: 2, Location: 1, Name: "show medallion",
				RequiredVerb: intp(3), RequiredSubject: intp(1), RequiredItem: intp(2),
				Narrative: intp(4), RequiredEvents: []int{1}},
			{ID: 3, Location: 1, Name: "talk to gatekeeper",
				RequiredVerb: intp(2), RequiredSubject: intp(1),
				Narrative: intp(3)},
		},
		Rooms: []types.RoomBlueprint{
			{ID: 1, Name: "courtyard", Description: "the gatehouse courtyard", Narrative: 1,
				Exits:      []types.Exit{{RoomID: 2, Direction: types.North}},
				SubjectIDs: []int{1}},
			{ID: 2, Name: "far side", Description: "the far side of the gate", Narrative: 2},
		},
	}
}

func newState(t *testing.T, inventory ...types.Item) *state.State {
	t.Helper()
	s := state.New(testConfig())
	for _, item := range inventory {
		state.AddItem(&s.Player.Inventory, item)
	}
	return s
}

func TestBindRelevant(t *testing.T) {
	s := newState(t)
	cfg := s.Config

	// Item referenced but not in inventory: dropped.
	act := parser.Parse(cfg, "give brass key to gatekeeper")
	item, subject := BindRelevant(s, act)
	if item != nil {
		t.Errorf("item bound without being in inventory: %v", item)
	}
	if subject == nil || subject.ID != 1 {
		t.Errorf("subject = %v, want gatekeeper", subject)
	}

	// Subject not present in the room: dropped.
	act = parser.Parse(cfg, "talk to the watchman")
	_, subject = BindRelevant(s, act)
	if subject != nil {
		t.Errorf("absent subject bound: %v", subject)
	}

	// Inventory item binds.
	state.AddItem(&s.Player.Inventory, cfg.Items[0])
	act = parser.Parse(cfg, "give brass key to gatekeeper")
	item, _ = BindRelevant(s, act)
	if item == nil || item.ID != 1 {
		t.Errorf("item = %v, want brass key", item)
	}
}

func TestResolve_FullEvent(t *testing.T) {
	cfg := testConfig()
	s := newState(t, cfg.Items[0])

	act := parser.Parse(s.Config, "give brass key to gatekeeper")
	result, err := Resolve(s, act)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Kind != types.ResultEventSuccess {
		t.Fatalf("Kind = %s, want event_success", result.Kind)
	}

	// remove_item effect: key gone from inventory, reported in message.
	if state.HasItem(&s.Player.Inventory, 1) {
		t.Error("brass key should have been removed from inventory")
	}
	if !strings.Contains(result.Message.Message, "You no longer have a brass key") {
		t.Errorf("message missing removal fragment:\n%s", result.Message.Message)
	}

	// remove_old_narrative: event text stands alone, braces resolved.
	if !strings.Contains(result.Message.Message, "The gatekeeper takes the brass key") {
		t.Errorf("message missing event narrative:\n%s", result.Message.Message)
	}
	if strings.Contains(result.Message.Message, "{") {
		t.Errorf("unresolved placeholder in message:\n%s", result.Message.Message)
	}
	if strings.Contains(result.Message.Parts[types.PartRoomText], "gatehouse courtyard") {
		t.Errorf("old narrative should be replaced:\n%s", result.Message.Parts[types.PartRoomText])
	}

	// narrative_after adopted for the room.
	room, _ := s.Room(1)
	if room.Narrative != 5 {
		t.Errorf("room narrative = %d, want 5", room.Narrative)
	}

	// completion is permanent.
	if !s.EventCompleted(1) {
		t.Error("event 1 not completed")
	}
}

func TestResolve_CompletedEventNeverRefires(t *testing.T) {
	cfg := testConfig()
	s := newState(t, cfg.Items[0])

	act := parser.Parse(s.Config, "give brass key to gatekeeper")
	if _, err := Resolve(s, act); err != nil {
		t.Fatalf("first Resolve: %v", err)
	}

	// Re-issue with the key restored: the completed event is excluded,
	// and the bound subject falls back to its default text.
	state.AddItem(&s.Player.Inventory, cfg.Items[0])
	result, err := Resolve(s, act)
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if result.Kind != types.ResultSubjectNoEvent {
		t.Errorf("Kind = %s, want subject_no_event", result.Kind)
	}
	if result.Text != "The gatekeeper ignores you." {
		t.Errorf("Text = %q", result.Text)
	}
	// Effects not re-applied: the restored key is still held.
	if !state.HasItem(&s.Player.Inventory, 1) {
		t.Error("completed event re-applied its effects")
	}
}

func TestResolve_PrerequisiteGate(t *testing.T) {
	cfg := testConfig()
	s := newState(t, cfg.Items[0], cfg.Items[1])

	show := parser.Parse(s.Config, "show medallion to gatekeeper")
	if _, err := Resolve(s, show); !errors.Is(err, errs.ErrRequiredEventNotCompleted) {
		t.Fatalf("err = %v, want ErrRequiredEventNotCompleted", err)
	}

	// Complete the prerequisite, then the same input succeeds.
	give := parser.Parse(s.Config, "give brass key to gatekeeper")
	if _, err := Resolve(s, give); err != nil {
		t.Fatalf("prerequisite Resolve: %v", err)
	}
	result, err := Resolve(s, show)
	if err != nil {
		t.Fatalf("gated Resolve after prerequisite: %v", err)
	}
	if result.Kind != types.ResultEventSuccess {
		t.Errorf("Kind = %s, want event_success", result.Kind)
	}
}

func TestResolve_NoCandidateWithoutSubject(t *testing.T) {
	cfg := testConfig()
	s := newState(t, cfg.Items[1])

	// "show medallion" binds no subject; no event matches verb+item alone.
	act := parser.Parse(s.Config, "show medallion")
	if _, err := Resolve(s, act); !errors.Is(err, errs.ErrInvalidEvent) {
		t.Errorf("err = %v, want ErrInvalidEvent", err)
	}
}

func TestResolve_SubjectDefaultText(t *testing.T) {
	s := newState(t)

	// talk+gatekeeper matches event 3 the first time.
	act := parser.Parse(s.Config, "talk to the gatekeeper")
	result, err := Resolve(s, act)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if result.Kind != types.ResultEventSuccess {
		t.Fatalf("Kind = %s, want event_success", result.Kind)
	}

	// Once completed, the same input falls back to default text.
	result, err = Resolve(s, act)
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if result.Kind != types.ResultSubjectNoEvent {
		t.Errorf("Kind = %s, want subject_no_event", result.Kind)
	}
}

func TestCandidates_ExactShape(t *testing.T) {
	cfg := testConfig()
	s := newState(t, cfg.Items[0])

	room, _ := s.Current()
	item := &cfg.Items[0]
	subject := &cfg.Subjects[0]

	// verb+subject+item matches only the three-part event.
	pool := candidates(room.Events, 1, item, subject)
	if len(pool) != 1 || pool[0].ID != 1 {
		t.Errorf("verb+item+subject pool = %v", ids(pool))
	}

	// verb+subject alone must not match an event that also needs an item.
	pool = candidates(room.Events, 1, nil, subject)
	if len(pool) != 0 {
		t.Errorf("verb+subject pool = %v, want empty", ids(pool))
	}

	// verb 2 + subject matches the talk event.
	pool = candidates(room.Events, 2, nil, subject)
	if len(pool) != 1 || pool[0].ID != 3 {
		t.Errorf("talk pool = %v", ids(pool))
	}

	// Nothing bound: no candidates at all.
	pool = candidates(room.Events, 1, nil, nil)
	if len(pool) != 0 {
		t.Errorf("bare verb pool = %v, want empty", ids(pool))
	}
}

func TestFirstEligible_CatalogOrder(t *testing.T) {
	a := types.Event{ID: 1, Completed: true}
	b := types.Event{ID: 2}
	c := types.Event{ID: 3}

	got := firstEligible([]*types.Event{&a, &b, &c})
	if got == nil || got.ID != 2 {
		t.Errorf("firstEligible = %v, want event 2", got)
	}

	if firstEligible([]*types.Event{&a}) != nil {
		t.Error("all-completed pool should yield nil")
	}
	if firstEligible(nil) != nil {
		t.Error("empty pool should yield nil")
	}
}

func TestResolve_DestinationMovesPlayer(t *testing.T) {
	cfg := testConfig()
	cfg.Events[0].Destination = intp(2)
	s := state.New(cfg)
	state.AddItem(&s.Player.Inventory, cfg.Items[0])

	act := parser.Parse(cfg, "give brass key to gatekeeper")
	if _, err := Resolve(s, act); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.CurrentRoom != 2 {
		t.Errorf("CurrentRoom = %d, want 2", s.CurrentRoom)
	}
}

func TestApplyEffects_AddItemAndSubjectMoves(t *testing.T) {
	cfg := testConfig()
	cfg.Events[2].AddItem = intp(2)
	cfg.Events[2].RemoveSubject = true
	cfg.Events[2].MoveSubjectToLocation = intp(2)
	s := state.New(cfg)

	act := parser.Parse(cfg, "talk to the gatekeeper")
	result, err := Resolve(s, act)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if !state.HasItem(&s.Player.Inventory, 2) {
		t.Error("medallion not added to inventory")
	}
	if !strings.Contains(result.Message.Message, "You now have a medallion") {
		t.Errorf("message missing add fragment:\n%s", result.Message.Message)
	}

	courtyard, _ := s.Room(1)
	if len(courtyard.Subjects) != 0 {
		t.Errorf("gatekeeper still in courtyard: %v", courtyard.Subjects)
	}
	farSide, _ := s.Room(2)
	if len(farSide.Subjects) != 1 || farSide.Subjects[0].ID != 1 {
		t.Errorf("gatekeeper not moved to far side: %v", farSide.Subjects)
	}
}

func TestApplyEffects_RemoveItemNotHeldFails(t *testing.T) {
	cfg := testConfig()
	cfg.Events[2].RemoveItem = intp(2) // medallion, never picked up
	s := state.New(cfg)

	act := parser.Parse(cfg, "talk to the gatekeeper")
	if _, err := Resolve(s, act); !errors.Is(err, errs.ErrNoItem) {
		t.Errorf("err = %v, want ErrNoItem", err)
	}
	// The event must not be marked completed by the failed attempt.
	if s.EventCompleted(3) {
		t.Error("failed event marked completed")
	}
}

func ids(pool []*types.Event) []int {
	out := make([]int, len(pool))
	for i, e := range pool {
		out[i] = e.ID
	}
	return out
}
