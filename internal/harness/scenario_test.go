package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	content := `
name: test_scenario
description: "Test scenario for validation"
steps:
  - add: { id: "1", name: "Book A", date: "2024-02-25", rating: 5, genre: "פרוזה", description: "notes" }
  - sort: rating
assertions:
  - type: trace_contains
    op: add
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Len(t, scenario.Steps, 2)
	require.NotNil(t, scenario.Steps[0].Add)
	assert.Equal(t, "Book A", scenario.Steps[0].Add.Name)
	assert.Equal(t, 5, scenario.Steps[0].Add.Rating)
	assert.Equal(t, "notes", scenario.Steps[0].Add.Description)
	require.NotNil(t, scenario.Steps[1].Sort)
	assert.Equal(t, "rating", *scenario.Steps[1].Sort)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: "x"
steps: [{ reload: true }]
assertions: [{ type: trace_count, op: load, count: 1 }]
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: x
steps: [{ reload: true }]
assertions: [{ type: trace_count, op: load, count: 1 }]
`,
			wantErr: "description is required",
		},
		{
			name: "no steps",
			content: `
name: x
description: "x"
assertions: [{ type: trace_count, op: load, count: 1 }]
`,
			wantErr: "steps list is required",
		},
		{
			name: "no assertions",
			content: `
name: x
description: "x"
steps: [{ reload: true }]
`,
			wantErr: "assertions list is required",
		},
		{
			name: "two actions in one step",
			content: `
name: x
description: "x"
steps: [{ reload: true, clear: true }]
assertions: [{ type: trace_count, op: load, count: 1 }]
`,
			wantErr: "only one action per step",
		},
		{
			name: "empty step",
			content: `
name: x
description: "x"
steps: [{}]
assertions: [{ type: trace_count, op: load, count: 1 }]
`,
			wantErr: "empty step",
		},
		{
			name: "unknown field",
			content: `
name: x
description: "x"
steps: [{ reload: true }]
assertion: [{ type: trace_count, op: load, count: 1 }]
`,
			wantErr: "failed to parse YAML",
		},
		{
			name: "unknown book field",
			content: `
name: x
description: "x"
steps: [{ add: { id: "1", title: "typo" } }]
assertions: [{ type: trace_count, op: load, count: 1 }]
`,
			wantErr: "failed to parse YAML",
		},
		{
			name: "unknown assertion type",
			content: `
name: x
description: "x"
steps: [{ reload: true }]
assertions: [{ type: trace_magic }]
`,
			wantErr: "unknown assertion type",
		},
		{
			name: "trace_order without ops",
			content: `
name: x
description: "x"
steps: [{ reload: true }]
assertions: [{ type: trace_order }]
`,
			wantErr: "ops list is required",
		},
		{
			name: "final_state without expect",
			content: `
name: x
description: "x"
steps: [{ reload: true }]
assertions: [{ type: final_state }]
`,
			wantErr: "expect is required",
		},
		{
			name: "negative count",
			content: `
name: x
description: "x"
steps: [{ reload: true }]
assertions: [{ type: trace_count, op: load, count: -1 }]
`,
			wantErr: "count must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_ExpectOnlyStep(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: x
description: "x"
steps:
  - expect: { count: 0, visible: [] }
assertions: [{ type: trace_count, op: load, count: 1 }]
`))
	require.NoError(t, err)

	require.NotNil(t, scenario.Steps[0].Expect)
	assert.NotNil(t, scenario.Steps[0].Expect.Visible)
	assert.Empty(t, scenario.Steps[0].Expect.Visible)
	assert.Nil(t, scenario.Steps[0].Expect.Collection)
}
