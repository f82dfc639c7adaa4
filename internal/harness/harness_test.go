package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenarioFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gap.yaml")
	body := `name: gap
description: "skipped wall time resolves forward"
steps:
  - op: zoned
    input: "2020-03-08T02:30:00[America/Los_Angeles]"
    disambiguation: compatible
    expect: "2020-03-08T03:30:00-07:00[America/Los_Angeles]"
  - op: add_date
    input: "2020-01-31"
    duration: "P1M"
    overflow: reject
    expect_error: range
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)

	want := &Scenario{
		Name:        "gap",
		Description: "skipped wall time resolves forward",
		Steps: []Step{
			{
				Op:             "zoned",
				Input:          "2020-03-08T02:30:00[America/Los_Angeles]",
				Disambiguation: "compatible",
				Expect:         "2020-03-08T03:30:00-07:00[America/Los_Angeles]",
			},
			{
				Op:          "add_date",
				Input:       "2020-01-31",
				Duration:    "P1M",
				Overflow:    "reject",
				ExpectError: "range",
			},
		},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("scenario mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	rn := NewRunner()
	for _, sc := range scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			RunWithGolden(t, rn, sc)
		})
	}
}

func TestLoadScenarioValidation(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	_, err := LoadScenario(write("noname.yaml", "steps:\n  - op: parse_date\n    input: \"2020-01-01\"\n"))
	assert.ErrorContains(t, err, "missing name")

	_, err = LoadScenario(write("nosteps.yaml", "name: empty\n"))
	assert.ErrorContains(t, err, "no steps")

	_, err = LoadScenario(write("noop.yaml", "name: x\nsteps:\n  - input: \"2020-01-01\"\n"))
	assert.ErrorContains(t, err, "has no op")

	_, err = LoadScenario(write("both.yaml",
		"name: x\nsteps:\n  - op: parse_date\n    input: \"2020-01-01\"\n    expect: a\n    expect_error: range\n"))
	assert.ErrorContains(t, err, "both expect and expect_error")

	_, err = LoadScenario(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}

func TestRunReportsExpectationFailures(t *testing.T) {
	rn := NewRunner()
	result, err := rn.Run(&Scenario{
		Name: "mismatch",
		Steps: []Step{
			{Op: "parse_date", Input: "2020-01-01", Expect: "1999-01-01"},
			{Op: "parse_date", Input: "2020-02-30", ExpectError: "type"},
			{Op: "parse_date", Input: "2020-01-01", ExpectError: "range"},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 3)
}

func TestRunUnknownOp(t *testing.T) {
	rn := NewRunner()
	result, err := rn.Run(&Scenario{
		Name:  "unknown",
		Steps: []Step{{Op: "frobnicate", ExpectError: "type"}},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Equal(t, "type", result.Steps[0].ErrorKind)
}

func TestTranscript(t *testing.T) {
	result := NewResult()
	result.Steps = []StepResult{
		{Op: "parse_date", Output: "2020-01-01"},
		{Op: "parse_date", ErrorKind: "range"},
	}
	assert.Equal(t,
		"scenario: demo\n01 parse_date: 2020-01-01\n02 parse_date: error(range)\n",
		string(Transcript("demo", result)))
}
