package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/MissionIntelligence/pkg/errors"
	"github.com/turtacn/MissionIntelligence/pkg/types/brief"
	"github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "missionctl", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"standardize", "score", "price", "success", "stats", "version"} {
		assert.True(t, names[want], want)
	}
	for _, flag := range []string{"config", "log-level", "output", "ml-url", "server", "timeout"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "missionctl dev")

	out, err = run(t, "", "version")
	require.NoError(t, err)
	var info BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info.Version)
}

func TestStandardizeCommand_Flags(t *testing.T) {
	out, err := run(t, "", "standardize",
		"--title", "Refonte du site web de notre boutique",
		"--description", "Nous voulons un site React avec une API et PostgreSQL.",
		"--budget", "2500")
	require.NoError(t, err)

	var res brief.StandardizationResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "fallback", res.Source)
	assert.Equal(t, "web-development", res.CategoryStd)
	assert.NoError(t, res.Validate())
}

func TestStandardizeCommand_StdinAndTable(t *testing.T) {
	out, err := run(t, `{"title":"Logo pour une association","description":"Un logo simple et moderne."}`,
		"standardize", "--file", "-", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "missing.budget")
	assert.Contains(t, out, "fallback")
}

func TestStandardizeCommand_EmptyBrief(t *testing.T) {
	_, err := run(t, "", "standardize")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBriefEmpty))
}

func TestPriceCommand(t *testing.T) {
	out, err := run(t, "", "price", "--budget", "4000", "--category", "web-development", "--competition", "high", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "recommended")
	assert.Contains(t, out, "EUR")

	_, err = run(t, "", "price", "--budget", "4000", "--competition", "fierce")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestScoreCommand_FromStdin(t *testing.T) {
	in := `{"mission":{"title":"API","budget":3000,"skills_required":["Go"]},
	        "provider":{"id":"p1","rating":4.5,"completed_projects":20,"skills":["go"]},
	        "bid":{"price":2800,"duration_weeks":3}}`
	out, err := run(t, in, "score")
	require.NoError(t, err)

	var res scoring.ComprehensiveScoreResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "fallback", res.Source)
	assert.NoError(t, res.Validate())
}

func TestSuccessCommand_BadJSON(t *testing.T) {
	_, err := run(t, `{"mission":`, "success")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, `"ml_offline": true`)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := run(t, "", "stats", "-o", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml")
}

func TestFormatTable(t *testing.T) {
	out := FormatTable([]string{"A", "BB"}, [][]string{{"élan", "1"}, {"x"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "A     BB", lines[0])
	assert.Equal(t, "----  --", lines[1])
	assert.Equal(t, "élan  1 ", lines[2])
	assert.Equal(t, "x       ", lines[3])
	assert.Empty(t, FormatTable(nil, nil))
}

//Personal.AI order the ending
