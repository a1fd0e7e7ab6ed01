package fsmx_test

import (
	"slices"
	"testing"

	. "github.com/comalice/fsmx"
)

func TestBuilderOrderAndTransitions(t *testing.T) {
	cfg := NewBuilder("green").
		State("green").On("timer", "yellow").
		State("yellow").On("timer", "red").
		State("red").On("timer", "green").
		Build()

	if cfg.Initial != "green" {
		t.Errorf("Initial = %q", cfg.Initial)
	}
	if got := cfg.States.Names(); !slices.Equal(got, []string{"green", "yellow", "red"}) {
		t.Errorf("Names() = %v", got)
	}
	def, _ := cfg.States.Get("red")
	if target, ok := def.Target("timer"); !ok || target != "green" {
		t.Errorf("red --timer--> %q", target)
	}
}

func TestBuilderReopensState(t *testing.T) {
	b := NewBuilder("a")
	b.State("a").On("x", "b")
	b.State("b")
	b.State("a").On("y", "b").On("x", "a")
	cfg := b.Build()

	if got := cfg.States.Names(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v", got)
	}
	def, _ := cfg.States.Get("a")
	if got := def.Events(); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("Events() = %v", got)
	}
	if def.Transitions["x"] != "a" {
		t.Errorf("later On should overwrite: x -> %q", def.Transitions["x"])
	}
}

func TestBuilderDoesNotValidate(t *testing.T) {
	cfg := NewBuilder("ghost").State("a").On("go", "nowhere").Build()
	if cfg.Validate() == nil {
		t.Fatal("expected Validate to fail")
	}
	if _, err := New(cfg); err != nil {
		t.Errorf("lazy New failed: %v", err)
	}
}
