package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, content string) *Scenario {
	t.Helper()
	scenario, err := ParseScenario([]byte(content))
	require.NoError(t, err)
	return scenario
}

func TestRun_TracesEveryStep(t *testing.T) {
	scenario := mustParse(t, `
name: trace
description: "x"
steps:
  - add: { id: "1", name: "A", date: "2024-01-01", rating: 2, genre: "עיון" }
  - search: "a"
  - clear: true
assertions:
  - type: trace_order
    ops: [load, add, search, clear]
`)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)

	require.Len(t, result.Trace, 4)
	assert.Equal(t, TraceEvent{Seq: 1, Op: "load"}, result.Trace[0])
	assert.Equal(t, TraceEvent{
		Seq:   2,
		Op:    "add",
		Args:  map[string]any{"id": "1", "name": "A", "rating": 2},
		Count: 1,
	}, result.Trace[1])
	assert.Equal(t, "search", result.Trace[2].Op)
	assert.Equal(t, 0, result.Trace[3].Count)
}

func TestRun_FailedExpectationIsReported(t *testing.T) {
	scenario := mustParse(t, `
name: wrong
description: "x"
steps:
  - add: { id: "1", name: "A", date: "2024-01-01", rating: 2, genre: "עיון" }
    expect:
      count: 2
      visible: ["B"]
      error: boom
assertions:
  - type: trace_count
    op: add
    count: 1
`)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "steps[0]: expected visible")
	assert.Contains(t, result.Errors[1], "expected count 2, got 1")
	assert.Contains(t, result.Errors[2], `expected error containing "boom"`)
}

func TestRun_FailedAssertionIsReported(t *testing.T) {
	scenario := mustParse(t, `
name: wrong
description: "x"
steps:
  - reload: true
assertions:
  - type: final_state
    expect: { count: 5 }
`)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "count = 5")
}

func TestRun_ExpectNoneFailsOnError(t *testing.T) {
	scenario := mustParse(t, `
name: none
description: "x"
seed: "garbage"
steps:
  - expect: { error: none }
assertions:
  - type: trace_count
    op: load
    count: 1
`)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "expected no error")
}

func TestRun_InvalidLocale(t *testing.T) {
	scenario := mustParse(t, `
name: locale
description: "x"
locale: "not a locale!"
steps: [{ reload: true }]
assertions: [{ type: trace_count, op: load, count: 1 }]
`)

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid locale")
}

func TestRun_IsolatedPerScenario(t *testing.T) {
	content := `
name: isolated
description: "x"
steps:
  - add: { id: "1", name: "A", date: "2024-01-01", rating: 2, genre: "עיון" }
assertions:
  - type: final_state
    expect: { count: 1, stored: 1 }
`
	for i := 0; i < 2; i++ {
		result, err := Run(mustParse(t, content))
		require.NoError(t, err)
		assert.True(t, result.Pass, result.Errors)
	}
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/persist_failure.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := MarshalSnapshot(scenario.Name, first.Trace)
	require.NoError(t, err)
	b, err := MarshalSnapshot(scenario.Name, second.Trace)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
