package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/storycore/engine/errs"
	"github.com/nathoo/storycore/engine/narrative"
	"github.com/nathoo/storycore/engine/parser"
	"github.com/nathoo/storycore/engine/resolve"
	"github.com/nathoo/storycore/engine/state"
	"github.com/nathoo/storycore/types"
)

const helpPreamble = `
To play this game you type your commands and hit enter to execute them. Typically a command has at most three parts: a verb, a subject, and an item. A verb indicates an action you, the player, wants to execute. Many commands can be executed with just a verb such as look, help, quit. For more complex commands you will also need verb and either a subject or an item. A command can also have a verb, item, and subject. A complex command can be: look at dog, talk to person, pick the box, give the box to the dog.

The game will ignore words like 'to', 'the', 'at', 'from', so using them is optional. A valid command can be: talk person, pick box, go south, climb tree, use axe tree.

Valid verbs: `

// handleMovement looks up the current room's exits for the requested
// direction and, on a hit, relocates the player and re-renders the
// destination room.
func handleMovement(s *state.State, dir types.Direction) (types.Result, error) {
	if dir == "" {
		return types.Result{}, errs.ErrInvalidDirection
	}
	if err := s.MoveTo(dir); err != nil {
		return types.Result{}, err
	}
	room, err := s.Current()
	if err != nil {
		return types.Result{}, err
	}
	n, err := s.Narrative(room.Narrative)
	if err != nil {
		return types.Result{}, err
	}
	message, err := narrative.ParseRoomText(s, n.Text, "", nil)
	if err != nil {
		return types.Result{}, err
	}
	return types.Result{Kind: types.ResultEventSuccess, Message: &message}, nil
}

// handleVerb handles actions that carry only a verb. Take and Drop are
// forwarded to the item handler, which then fails with NoItem — "pick"
// with no object is an invalid command, not a crash. Normal verbs go to
// event resolution, which rejects them: every event needs at least a
// subject or an item.
func handleVerb(s *state.State, act parser.Action) (types.Result, error) {
	switch act.Verb.Function {
	case types.VerbQuit:
		return types.Result{Kind: types.ResultQuit}, nil
	case types.VerbHelp:
		return helpText(s), nil
	case types.VerbLook:
		return lookRoom(s)
	case types.VerbInventory:
		return showInventory(s), nil
	case types.VerbTake, types.VerbDrop:
		return handleVerbItem(s, act)
	case types.VerbTalk:
		return handleVerbSubject(s, act)
	case types.VerbNormal:
		return resolve.Resolve(s, act)
	default:
		return types.Result{}, errs.ErrInvalidVerb
	}
}

// handleVerbItem handles verb+item actions. Normal verbs are forwarded
// to event resolution with the item only.
func handleVerbItem(s *state.State, act parser.Action) (types.Result, error) {
	if act.Item == nil {
		return types.Result{}, errs.ErrNoItem
	}
	switch act.Verb.Function {
	case types.VerbTake:
		return pickItem(s, *act.Item)
	case types.VerbDrop:
		return dropItem(s, *act.Item)
	case types.VerbLook:
		return lookItem(s, *act.Item)
	case types.VerbNormal:
		return resolve.Resolve(s, act)
	default:
		return types.Result{}, errs.ErrInvalidVerb
	}
}

// handleVerbSubject handles verb+subject actions. Look inspects the
// subject; every other function is an event trigger, including Talk and
// verbs used rhetorically.
func handleVerbSubject(s *state.State, act parser.Action) (types.Result, error) {
	if act.Subject == nil {
		return types.Result{}, errs.ErrInvalidSubject
	}
	if act.Verb.Function == types.VerbLook {
		return lookSubject(s, *act.Subject)
	}
	return resolve.Resolve(s, act)
}

func pickItem(s *state.State, item types.Item) (types.Result, error) {
	room, err := s.Current()
	if err != nil {
		return types.Result{}, err
	}
	if !state.HasItem(&room.Stash, item.ID) {
		return types.Result{}, errs.ErrNoItem
	}
	if !item.CanPick {
		return types.Result{}, errs.ErrCantPick
	}
	taken, err := state.RemoveItem(&room.Stash, item.Name)
	if err != nil {
		return types.Result{}, err
	}
	state.AddItem(&s.Player.Inventory, taken)
	return types.Result{
		Kind: types.ResultNewItem,
		Text: fmt.Sprintf("\nYou now have a %s\n", taken.Name),
	}, nil
}

func dropItem(s *state.State, item types.Item) (types.Result, error) {
	room, err := s.Current()
	if err != nil {
		return types.Result{}, err
	}
	if !state.HasItem(&s.Player.Inventory, item.ID) {
		return types.Result{}, errs.ErrNoItem
	}
	dropped, err := state.RemoveItem(&s.Player.Inventory, item.Name)
	if err != nil {
		return types.Result{}, err
	}
	state.AddItem(&room.Stash, dropped)
	return types.Result{
		Kind: types.ResultDropItem,
		Text: fmt.Sprintf("\nYou no longer have a %s\n", dropped.Name),
	}, nil
}

func lookItem(s *state.State, item types.Item) (types.Result, error) {
	room, err := s.Current()
	if err != nil {
		return types.Result{}, err
	}
	if state.HasItem(&room.Stash, item.ID) || state.HasItem(&s.Player.Inventory, item.ID) {
		return types.Result{Kind: types.ResultLook, Text: item.Description}, nil
	}
	return types.Result{Kind: types.ResultLook, Text: "I can't see that here"}, nil
}

func lookSubject(s *state.State, subject types.Subject) (types.Result, error) {
	room, err := s.Current()
	if err != nil {
		return types.Result{}, err
	}
	for _, present := range room.Subjects {
		if present.ID == subject.ID {
			return types.Result{Kind: types.ResultLook, Text: subject.Description}, nil
		}
	}
	return types.Result{Kind: types.ResultLook, Text: "I can't see that here"}, nil
}

func lookRoom(s *state.State) (types.Result, error) {
	room, err := s.Current()
	if err != nil {
		return types.Result{}, err
	}
	text := room.Description
	if len(room.Stash.Items) > 0 {
		var names []string
		for _, item := range room.Stash.Items {
			names = append(names, "a "+item.Name)
		}
		text += "\nHere you see: \n\n" + strings.Join(names, "\n")
	}
	return types.Result{Kind: types.ResultLook, Text: text}, nil
}

func showInventory(s *state.State) types.Result {
	items := s.Player.Inventory.Items
	if len(items) == 0 {
		return types.Result{Kind: types.ResultInventory, Text: "You are not carrying anything."}
	}
	var names []string
	for _, item := range items {
		names = append(names, "a "+item.Name)
	}
	return types.Result{
		Kind: types.ResultInventory,
		Text: "You are currently carrying: \n\n" + strings.Join(names, "\n"),
	}
}

func helpText(s *state.State) types.Result {
	var names []string
	for _, verb := range s.Config.Verbs {
		if len(verb.Names) > 0 {
			names = append(names, verb.Names[0])
		}
	}
	return types.Result{Kind: types.ResultHelp, Text: helpPreamble + strings.Join(names, ", ")}
}
