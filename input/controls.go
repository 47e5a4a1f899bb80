// Package input turns raw key state into named actions and dispatches
// released/pressed transitions to subscribers.
package input

import (
	"errors"
	"fmt"
	"strings"
)

type Action string

const (
	ActionForward   Action = "forward"
	ActionBackward  Action = "backward"
	ActionLeftward  Action = "leftward"
	ActionRightward Action = "rightward"
	ActionJump      Action = "jump"
)

// Actions lists every action in polling order.
var Actions = []Action{ActionForward, ActionBackward, ActionLeftward, ActionRightward, ActionJump}

var (
	ErrUnknownAction = errors.New("input: unknown action")
	ErrNoKeys        = errors.New("input: action has no keys")
)

func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}

// KeySource reports whether the key with the given lowercase name is held.
type KeySource interface {
	IsKeyPressed(name string) bool
}

type KeySourceFunc func(name string) bool

func (f KeySourceFunc) IsKeyPressed(name string) bool {
	return f(name)
}

// Bindings maps each action to the keys that trigger it. Any bound key held
// means the action is held.
type Bindings map[Action][]string

// DefaultBindings mirrors prefabs/controls.yaml.
func DefaultBindings() Bindings {
	return Bindings{
		ActionForward:   {"w", "arrowup"},
		ActionBackward:  {"s", "arrowdown"},
		ActionLeftward:  {"a", "arrowleft"},
		ActionRightward: {"d", "arrowright"},
		ActionJump:      {"space"},
	}
}

// Validate checks that every action is known and bound to at least one key.
func (b Bindings) Validate() error {
	for action, keys := range b {
		if !action.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownAction, action)
		}
		if len(keys) == 0 {
			return fmt.Errorf("%w: %s", ErrNoKeys, action)
		}
	}
	return nil
}

func (b Bindings) normalized() Bindings {
	out := make(Bindings, len(b))
	for action, keys := range b {
		names := make([]string, 0, len(keys))
		for _, k := range keys {
			names = append(names, strings.ToLower(strings.TrimSpace(k)))
		}
		out[action] = names
	}
	return out
}

// State is one frame's snapshot of the movement actions.
type State struct {
	Forward     bool
	Backward    bool
	Leftward    bool
	Rightward   bool
	Jump        bool
	JumpPressed bool
}

type subscription struct {
	id uint64
	fn func(pressed bool)
}

// Controls polls a KeySource once per Update. Subscribers run synchronously
// inside Update, only when an action changes state.
type Controls struct {
	source   KeySource
	bindings Bindings
	held     map[Action]bool
	edges    map[Action]bool
	subs     map[Action][]subscription
	nextID   uint64
}

func NewControls(source KeySource, bindings Bindings) (*Controls, error) {
	if source == nil {
		return nil, errors.New("input: nil key source")
	}
	if err := bindings.Validate(); err != nil {
		return nil, fmt.Errorf("input: new controls: %w", err)
	}
	return &Controls{
		source:   source,
		bindings: bindings.normalized(),
		held:     make(map[Action]bool),
		edges:    make(map[Action]bool),
		subs:     make(map[Action][]subscription),
	}, nil
}

// Rebind swaps the key bindings. Held state is kept so a key that stays
// down across a rebind does not re-fire.
func (c *Controls) Rebind(bindings Bindings) error {
	if c == nil {
		return nil
	}
	if err := bindings.Validate(); err != nil {
		return fmt.Errorf("input: rebind: %w", err)
	}
	c.bindings = bindings.normalized()
	return nil
}

// Update samples every action and notifies subscribers of transitions.
func (c *Controls) Update() {
	if c == nil {
		return
	}
	for _, action := range Actions {
		pressed := c.sample(action)
		c.edges[action] = pressed && !c.held[action]
		if pressed == c.held[action] {
			continue
		}
		c.held[action] = pressed
		c.dispatch(action, pressed)
	}
}

func (c *Controls) sample(action Action) bool {
	for _, key := range c.bindings[action] {
		if c.source.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

func (c *Controls) dispatch(action Action, pressed bool) {
	subs := append([]subscription(nil), c.subs[action]...)
	for _, s := range subs {
		s.fn(pressed)
	}
}

// Held reports whether the action was down at the last Update.
func (c *Controls) Held(action Action) bool {
	if c == nil {
		return false
	}
	return c.held[action]
}

// JustPressed reports a released to pressed transition at the last Update.
func (c *Controls) JustPressed(action Action) bool {
	if c == nil {
		return false
	}
	return c.edges[action]
}

func (c *Controls) State() State {
	if c == nil {
		return State{}
	}
	return State{
		Forward:     c.held[ActionForward],
		Backward:    c.held[ActionBackward],
		Leftward:    c.held[ActionLeftward],
		Rightward:   c.held[ActionRightward],
		Jump:        c.held[ActionJump],
		JumpPressed: c.edges[ActionJump],
	}
}

// Subscribe registers fn for transitions of action. The returned func
// removes the subscription and is safe to call more than once.
func (c *Controls) Subscribe(action Action, fn func(pressed bool)) (unsubscribe func()) {
	if c == nil || fn == nil {
		return func() {}
	}
	c.nextID++
	id := c.nextID
	c.subs[action] = append(c.subs[action], subscription{id: id, fn: fn})
	return func() {
		subs := c.subs[action]
		for i, s := range subs {
			if s.id == id {
				c.subs[action] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers reports how many callbacks are registered for action.
func (c *Controls) Subscribers(action Action) int {
	if c == nil {
		return 0
	}
	return len(c.subs[action])
}
