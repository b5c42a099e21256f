// Package engine wires parsing, dispatch, event resolution, and
// narrative rendering into the single Process() operation that
// front-ends call with raw player input.
package engine

import (
	"sync"

	"go.uber.org/zap"

	"github.com/nathoo/storycore/engine/errs"
	"github.com/nathoo/storycore/engine/narrative"
	"github.com/nathoo/storycore/engine/parser"
	"github.com/nathoo/storycore/engine/resolve"
	"github.com/nathoo/storycore/engine/state"
	"github.com/nathoo/storycore/types"
)

// Engine owns one play session's state. Commands are processed to
// completion one at a time; the mutex serializes callers that share a
// session. Sessions share nothing, so separate engines need no
// coordination.
type Engine struct {
	mu    sync.Mutex
	State *state.State
	log   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger installs a structured logger for debug tracing. The engine
// never prints to stdout; all diagnostics go through the logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an engine with a fresh session state for the catalog.
func New(cfg *types.Config, opts ...Option) *Engine {
	e := &Engine{
		State: state.New(cfg),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Process interprets one line of player input, applies its effects, and
// returns the renderable result. State changes are transactional: the
// handlers run against a clone, and the clone replaces the session state
// only when the whole action succeeds.
func (e *Engine) Process(input string) (types.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	act := parser.Parse(e.State.Config, input)
	e.log.Debug("parsed action",
		zap.String("input", input),
		zap.String("type", act.Type().String()),
	)

	next := e.State.Clone()
	result, err := dispatch(next, act)
	if err != nil {
		e.log.Debug("action failed", zap.String("input", input), zap.Error(err))
		return types.Result{}, err
	}

	e.State = next
	e.log.Debug("action applied",
		zap.String("kind", string(result.Kind)),
		zap.Int("room", e.State.CurrentRoom),
	)
	return result, nil
}

// dispatch routes a classified action to its handler. One transition per
// ActionType; adding a shape is a compile-time-checked change here.
func dispatch(s *state.State, act parser.Action) (types.Result, error) {
	switch act.Type() {
	case parser.Movement:
		return handleMovement(s, act.Movement)
	case parser.Verb:
		return handleVerb(s, act)
	case parser.VerbItem:
		return handleVerbItem(s, act)
	case parser.VerbSubject:
		return handleVerbSubject(s, act)
	case parser.VerbItemSubject:
		return resolve.Resolve(s, act)
	default:
		return types.Result{}, errs.ErrInvalidInput
	}
}

// Intro returns the catalog's intro text.
func (e *Engine) Intro() string {
	return e.State.Config.Intro
}

// FirstRoomText renders the starting room. There is no input to process
// when a session opens, so front-ends call this instead.
func (e *Engine) FirstRoomText() (types.EventMessage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	room, err := e.State.Current()
	if err != nil {
		return types.EventMessage{}, err
	}
	n, err := e.State.Narrative(room.Narrative)
	if err != nil {
		return types.EventMessage{}, err
	}
	return narrative.ParseRoomText(e.State, n.Text, "", nil)
}
