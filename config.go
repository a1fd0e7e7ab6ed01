package fsmx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config is the static description a Machine interprets.
type Config struct {
	Initial string     `json:"initial" yaml:"initial"`
	States  StateTable `json:"states" yaml:"states"`
}

// StateDefinition holds the outgoing transitions of one state, keyed by
// event name. Targets are resolved when an event fires, not here.
type StateDefinition struct {
	Transitions map[string]string `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// Target returns the state an event leads to. An empty target counts as
// undefined. Safe on a nil receiver.
func (d *StateDefinition) Target(event string) (string, bool) {
	if d == nil {
		return "", false
	}
	target, ok := d.Transitions[event]
	if !ok || target == "" {
		return "", false
	}
	return target, true
}

// Events returns the events defined on the state, sorted.
func (d *StateDefinition) Events() []string {
	if d == nil {
		return nil
	}
	events := make([]string, 0, len(d.Transitions))
	for event := range d.Transitions {
		events = append(events, event)
	}
	sort.Strings(events)
	return events
}

// StateTable maps state names to definitions and remembers insertion order.
// The zero value is an empty table ready for use.
type StateTable struct {
	order []string
	defs  map[string]*StateDefinition
}

// Set adds or replaces a state. Replacing keeps the existing position.
// A nil def is stored as an empty definition.
func (t *StateTable) Set(name string, def *StateDefinition) {
	if def == nil {
		def = &StateDefinition{}
	}
	if t.defs == nil {
		t.defs = make(map[string]*StateDefinition)
	}
	if _, exists := t.defs[name]; !exists {
		t.order = append(t.order, name)
	}
	t.defs[name] = def
}

func (t *StateTable) Get(name string) (*StateDefinition, bool) {
	def, ok := t.defs[name]
	return def, ok
}

func (t *StateTable) Has(name string) bool {
	_, ok := t.defs[name]
	return ok
}

// Names returns the state names in insertion order.
func (t *StateTable) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

func (t *StateTable) Len() int {
	return len(t.order)
}

// MarshalYAML emits the table as a mapping in insertion order.
func (t StateTable) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range t.order {
		var value yaml.Node
		if err := value.Encode(t.defs[name]); err != nil {
			return nil, fmt.Errorf("state %q: %w", name, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		node.Content = append(node.Content, key, &value)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping of state definitions, keeping document order.
func (t *StateTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	var table StateTable
	if node.Tag == "!!null" {
		*t = table
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: states must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return fmt.Errorf("line %d: state name: %w", node.Content[i].Line, err)
		}
		if table.Has(name) {
			return fmt.Errorf("line %d: duplicate state %q", node.Content[i].Line, name)
		}
		if err := checkStateFields(name, node.Content[i+1]); err != nil {
			return err
		}
		def := &StateDefinition{}
		if err := node.Content[i+1].Decode(def); err != nil {
			return fmt.Errorf("state %q: %w", name, err)
		}
		table.Set(name, def)
	}
	*t = table
	return nil
}

// checkStateFields rejects keys other than transitions in a state body.
func checkStateFields(name string, node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if key.Value != "transitions" {
			return fmt.Errorf("line %d: unknown field %q in state %q", key.Line, key.Value, name)
		}
	}
	return nil
}

// MarshalJSON emits the table as an object in insertion order.
func (t StateTable) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, name := range t.order {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(t.defs[name])
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", name, err)
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, value...)
	}
	return append(buf, '}'), nil
}

// UnmarshalJSON decodes an object of state definitions, keeping key order.
// Unknown fields inside a state body are rejected.
func (t *StateTable) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	var table StateTable
	if tok == nil {
		*t = table
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("states must be an object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected state name token %v", tok)
		}
		if table.Has(name) {
			return fmt.Errorf("duplicate state %q", name)
		}
		var def *StateDefinition
		if err := dec.Decode(&def); err != nil {
			return fmt.Errorf("state %q: %w", name, err)
		}
		table.Set(name, def)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*t = table
	return nil
}

// Validate performs the eager checks skipped by default:
// - Initial is non-empty and present in States
// - States is non-empty
// - every transition names an existing target
func (c *Config) Validate() error {
	if c.Initial == "" {
		return fmt.Errorf("%w: initial state is required", ErrInvalidConfig)
	}
	if c.States.Len() == 0 {
		return fmt.Errorf("%w: states table is empty", ErrInvalidConfig)
	}
	if !c.States.Has(c.Initial) {
		return fmt.Errorf("%w: initial state %q not found in states", ErrInvalidConfig, c.Initial)
	}
	for _, name := range c.States.order {
		def := c.States.defs[name]
		for _, event := range def.Events() {
			target := def.Transitions[event]
			if target == "" {
				return fmt.Errorf("%w: empty transition target (state %q, event %q)", ErrInvalidConfig, name, event)
			}
			if !c.States.Has(target) {
				return fmt.Errorf("%w: invalid transition target %q (state %q, event %q)", ErrInvalidConfig, target, name, event)
			}
		}
	}
	return nil
}
