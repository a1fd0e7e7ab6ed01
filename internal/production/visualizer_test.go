package production

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/fsmx"
)

func TestVisualizer_ExportDOT(t *testing.T) {
	t.Parallel()

	cfg := fsmx.NewBuilder("idle").
		State("idle").On("start", "running").
		State("running").On("stop", "idle").On("pause", "paused").
		State("paused").On("resume", "running").
		Build()

	v := &Visualizer{}
	dot := v.ExportDOT(cfg, "running")

	assert.True(t, strings.HasPrefix(dot, "digraph FSM {"), "missing DOT header")
	assert.Contains(t, dot, `__start -> "idle";`)
	assert.Contains(t, dot, `"running" [label="running" style="rounded,filled" fillcolor=lightgreen];`)
	assert.Contains(t, dot, `"idle" [label="idle"];`)
	assert.Contains(t, dot, `"idle" -> "running" [label="start"];`)
	assert.Contains(t, dot, `"running" -> "paused" [label="pause"];`)
	assert.NotContains(t, dot, "dashed")

	// pause sorts before stop within running.
	assert.Less(t, strings.Index(dot, `[label="pause"]`), strings.Index(dot, `[label="stop"]`))
}

func TestVisualizer_ExportDOT_DanglingTarget(t *testing.T) {
	t.Parallel()

	cfg := fsmx.NewBuilder("a").
		State("a").On("go", "ghost").On("again", "ghost").On("blank", "").
		Build()

	dot := (&Visualizer{}).ExportDOT(cfg, "")

	assert.Equal(t, 1, strings.Count(dot, `"ghost" [label="ghost" style=dashed color=gray];`))
	assert.Contains(t, dot, `"a" -> "ghost" [label="go" style=dashed];`)
	assert.NotContains(t, dot, "blank")
	assert.NotContains(t, dot, "fillcolor")
}

func TestVisualizer_ExportJSON(t *testing.T) {
	t.Parallel()

	cfg := fsmx.NewBuilder("b").State("b").On("x", "a").State("a").Build()
	data, err := (&Visualizer{}).ExportJSON(cfg)
	require.NoError(t, err)

	var decoded fsmx.Config
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"b", "a"}, decoded.States.Names())
}

func TestCollectEdges(t *testing.T) {
	t.Parallel()

	cfg := fsmx.NewBuilder("x").
		State("y").On("b", "x").On("a", "y").
		State("x").On("c", "y").
		Build()

	assert.Equal(t, []Edge{
		{From: "y", To: "y", Label: "a"},
		{From: "y", To: "x", Label: "b"},
		{From: "x", To: "y", Label: "c"},
	}, CollectEdges(cfg))

	assert.Empty(t, CollectEdges(&fsmx.Config{}))
}
