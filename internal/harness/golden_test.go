package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Punitjadhav07/Hack-build/internal/model"
)

func TestScenarios_Golden(t *testing.T) {
	files, err := ScenarioFiles("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)
			require.Equal(t, name, scenario.Name, "file name and scenario name must agree")
			require.NoError(t, RunWithGolden(t, scenario))
		})
	}
}

func TestNewSnapshot(t *testing.T) {
	result := NewResult()
	result.addInvocation("notify.read_all", nil, 1)
	result.addCompletion(CaseSuccess, map[string]any{"ignored": true}, "", 2)
	result.Changes = append(result.Changes, ChangeEvent{Revision: 7})
	result.Record.Files.Badges = []model.FileEntry{{Name: "a.png"}}
	result.Record.Files.Documents = []model.FileEntry{{Name: "b.pdf"}}

	data, err := NewSnapshot("snap", result).Marshal()
	require.NoError(t, err)

	want := `{"changes":[{"collections":[],"revision":7}],` +
		`"counts":{"approvals":0,"events":0,"feedback":0,"files":2,"notifications":0,"registrations":0,"reports":0,"users":0},` +
		`"scenario_name":"snap",` +
		`"stats":{"pendingApprovals":0,"registrations":0,"totalEvents":0,"totalUsers":0},` +
		`"trace":[{"action":"notify.read_all","seq":1,"type":"invocation"},{"output_case":"Success","seq":2,"type":"completion"}]}`
	assert.Equal(t, want, string(data))
}
