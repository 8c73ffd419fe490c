package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_EndToEnd(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/end_to_end.yaml")
	require.NoError(t, err)

	result, err := RunWithGolden(t, scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
}

func TestMarshalSnapshot_OmitsEmptyFields(t *testing.T) {
	data, err := MarshalSnapshot("tiny", []TraceEvent{{Seq: 1, Op: "load"}})
	require.NoError(t, err)

	want := `{
  "scenario_name": "tiny",
  "trace": [
    {
      "seq": 1,
      "op": "load",
      "count": 0
    }
  ]
}
`
	assert.Equal(t, want, string(data))
}
