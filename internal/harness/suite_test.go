package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDir_Scenarios(t *testing.T) {
	suite, err := RunDir("testdata/scenarios")
	require.NoError(t, err)

	assert.True(t, suite.OK(), "%+v", suite.Failures)
	assert.Equal(t, suite.Total, suite.Passed)
	assert.Len(t, suite.Results, suite.Total)
}

func TestRunDir_CountsFailures(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	write("a_pass.yaml", `
name: a_pass
description: "passes"
flow: [{invoke: stats.recompute}]
assertions: [{type: changes, count: 1}]
`)
	write("b_fail.yaml", `
name: b_fail
description: "wrong count"
flow: [{invoke: stats.recompute}]
assertions: [{type: changes, count: 2}]
`)
	write("c_broken.yml", "name: [")
	write("notes.txt", "ignored")

	suite, err := RunDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 3, suite.Total)
	assert.Equal(t, 1, suite.Passed)
	assert.Equal(t, 2, suite.Failed)
	assert.False(t, suite.OK())
	require.Len(t, suite.Failures, 2)
	assert.Equal(t, "b_fail", suite.Failures[0].Name)
	assert.Contains(t, suite.Failures[1].Errors[0], "failed to parse YAML")
}

func TestScenarioFiles_SingleFile(t *testing.T) {
	files, err := ScenarioFiles("testdata/scenarios/event_lifecycle.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"testdata/scenarios/event_lifecycle.yaml"}, files)

	_, err = ScenarioFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
