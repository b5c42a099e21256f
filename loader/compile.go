package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/storycore/types"
)

// rawDef holds a definition table before compilation.
type rawDef struct {
	id    int
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getOptInt returns a pointer to an int field, or nil if the field is
// missing. Optional id references use this so that 0 never silently
// becomes a reference.
func getOptInt(tbl *lua.LTable, key string) *int {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		i := int(n)
		return &i
	}
	return nil
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// getIntList returns an array field as []int, or nil if missing.
func getIntList(tbl *lua.LTable, key string) []int {
	t := getTable(tbl, key)
	if t == nil {
		return nil
	}
	var out []int
	t.ForEach(func(_, v lua.LValue) {
		if n, ok := v.(lua.LNumber); ok {
			out = append(out, int(n))
		}
	})
	return out
}

// getStringList returns an array field as []string, or nil if missing.
func getStringList(tbl *lua.LTable, key string) []string {
	t := getTable(tbl, key)
	if t == nil {
		return nil
	}
	var out []string
	t.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			out = append(out, string(s))
		}
	})
	return out
}

// compile converts all collected Lua data into a Config. Catalogs are
// sorted by id so iteration order is id order regardless of the order
// definitions appear in the source files.
func compile(coll *collector) (*types.Config, error) {
	cfg := &types.Config{}

	if coll.game != nil {
		cfg.Intro = getString(coll.game, "intro")
		cfg.Prepositions = getStringList(coll.game, "prepositions")
		cfg.Determiners = getStringList(coll.game, "determiners")
		cfg.Movements = getStringList(coll.game, "movements")
		cfg.Directions = getStringList(coll.game, "directions")
	}
	cfg.Prepositions, cfg.Determiners, cfg.Movements, cfg.Directions =
		applyWordDefaults(cfg.Prepositions, cfg.Determiners, cfg.Movements, cfg.Directions)

	for _, raw := range coll.verbs {
		v, err := compileVerb(raw)
		if err != nil {
			return nil, err
		}
		cfg.Verbs = append(cfg.Verbs, v)
	}
	for _, raw := range coll.items {
		cfg.Items = append(cfg.Items, types.Item{
			ID:          raw.id,
			Name:        getString(raw.table, "name"),
			Description: getString(raw.table, "description"),
			CanPick:     getBool(raw.table, "can_pick", false),
		})
	}
	for _, raw := range coll.subjects {
		cfg.Subjects = append(cfg.Subjects, types.Subject{
			ID:          raw.id,
			Name:        getString(raw.table, "name"),
			Description: getString(raw.table, "description"),
			DefaultText: getString(raw.table, "default_text"),
		})
	}
	for _, raw := range coll.narratives {
		cfg.Narratives = append(cfg.Narratives, types.Narrative{
			ID:          raw.id,
			Text:        getString(raw.table, "text"),
			Description: getString(raw.table, "description"),
		})
	}
	for _, raw := range coll.rooms {
		r, err := compileRoom(raw)
		if err != nil {
			return nil, err
		}
		cfg.Rooms = append(cfg.Rooms, r)
	}
	for _, raw := range coll.events {
		cfg.Events = append(cfg.Events, compileEvent(raw))
	}

	sortCatalogs(cfg)
	return cfg, nil
}

func compileVerb(raw rawDef) (types.Verb, error) {
	fn := getString(raw.table, "verb_function")
	if fn == "" {
		fn = string(types.VerbNormal)
	}
	vf, err := parseVerbFunction(fn)
	if err != nil {
		return types.Verb{}, fmt.Errorf("verb %d: %w", raw.id, err)
	}
	return types.Verb{
		ID:       raw.id,
		Names:    getStringList(raw.table, "names"),
		Function: vf,
	}, nil
}

func compileRoom(raw rawDef) (types.RoomBlueprint, error) {
	r := types.RoomBlueprint{
		ID:          raw.id,
		Name:        getString(raw.table, "name"),
		Description: getString(raw.table, "description"),
		Narrative:   getInt(raw.table, "narrative"),
		ItemIDs:     getIntList(raw.table, "items"),
		SubjectIDs:  getIntList(raw.table, "subjects"),
	}
	exits := getTable(raw.table, "exits")
	if exits != nil {
		var err error
		exits.ForEach(func(_, v lua.LValue) {
			t, ok := v.(*lua.LTable)
			if !ok {
				err = fmt.Errorf("room %d: exit entries must be tables", raw.id)
				return
			}
			r.Exits = append(r.Exits, types.Exit{
				RoomID:    getInt(t, "room_id"),
				Direction: types.Direction(getString(t, "direction")),
			})
		})
		if err != nil {
			return types.RoomBlueprint{}, err
		}
	}
	return r, nil
}

func compileEvent(raw rawDef) types.Event {
	return types.Event{
		ID:                    raw.id,
		Location:              getInt(raw.table, "location"),
		Name:                  getString(raw.table, "name"),
		Description:           getString(raw.table, "description"),
		Destination:           getOptInt(raw.table, "destination"),
		Narrative:             getOptInt(raw.table, "narrative"),
		RequiredVerb:          getOptInt(raw.table, "required_verb"),
		RequiredSubject:       getOptInt(raw.table, "required_subject"),
		RequiredItem:          getOptInt(raw.table, "required_item"),
		Completed:             getBool(raw.table, "completed", false),
		AddItem:               getOptInt(raw.table, "add_item"),
		RemoveItem:            getOptInt(raw.table, "remove_item"),
		RemoveOldNarrative:    getBool(raw.table, "remove_old_narrative", false),
		NarrativeAfter:        getOptInt(raw.table, "narrative_after"),
		RequiredEvents:        getIntList(raw.table, "required_events"),
		AddSubject:            getOptInt(raw.table, "add_subject"),
		RemoveSubject:         getBool(raw.table, "remove_subject", false),
		MoveSubjectToLocation: getOptInt(raw.table, "move_subject_to_location"),
	}
}

func parseVerbFunction(s string) (types.VerbFunction, error) {
	switch types.VerbFunction(s) {
	case types.VerbQuit, types.VerbHelp, types.VerbLook, types.VerbInventory,
		types.VerbTake, types.VerbDrop, types.VerbTalk, types.VerbNormal:
		return types.VerbFunction(s), nil
	}
	return "", fmt.Errorf("unknown verb_function %q", s)
}

func sortCatalogs(cfg *types.Config) {
	sort.Slice(cfg.Verbs, func(i, j int) bool { return cfg.Verbs[i].ID < cfg.Verbs[j].ID })
	sort.Slice(cfg.Items, func(i, j int) bool { return cfg.Items[i].ID < cfg.Items[j].ID })
	sort.Slice(cfg.Subjects, func(i, j int) bool { return cfg.Subjects[i].ID < cfg.Subjects[j].ID })
	sort.Slice(cfg.Narratives, func(i, j int) bool { return cfg.Narratives[i].ID < cfg.Narratives[j].ID })
	sort.Slice(cfg.Events, func(i, j int) bool { return cfg.Events[i].ID < cfg.Events[j].ID })
	sort.Slice(cfg.Rooms, func(i, j int) bool { return cfg.Rooms[i].ID < cfg.Rooms[j].ID })
}
