package harness

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Transcript renders a result as a stable text snapshot for golden
// comparison: one line per step with its output or error kind.
func Transcript(scenarioName string, result *Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", scenarioName)
	for i, sr := range result.Steps {
		if sr.ErrorKind != "" {
			fmt.Fprintf(&b, "%02d %s: error(%s)\n", i+1, sr.Op, sr.ErrorKind)
			continue
		}
		fmt.Fprintf(&b, "%02d %s: %s\n", i+1, sr.Op, sr.Output)
	}
	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares its transcript against
// the golden file testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Test failure (via goldie) occurs if the transcript doesn't match the
// golden file; expectation failures inside the scenario fail the test
// directly.
func RunWithGolden(t *testing.T, rn *Runner, scenario *Scenario) {
	t.Helper()

	result, err := rn.Run(scenario)
	if err != nil {
		t.Fatalf("scenario %s: %v", scenario.Name, err)
	}
	for _, msg := range result.Errors {
		t.Errorf("scenario %s: %s", scenario.Name, msg)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, Transcript(scenario.Name, result))
}
