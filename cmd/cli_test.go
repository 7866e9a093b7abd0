package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/boardroom/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func offlineEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("BOARDROOM_PROVIDER_KIND", "offline")
	t.Setenv("BOARDROOM_LOGGING_LEVEL", "error")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PASSWORD_STORE_DIR", filepath.Join(home, ".password-store"))
	return home
}

func TestVersionSkipsWiring(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BOARDROOM_PROVIDER_KIND", "carrier-pigeon")

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestRunRendersConsensusReport(t *testing.T) {
	home := offlineEnv(t)

	stdout, _, err := executeCLI(t, home, "run", "Should", "we", "open", "a", "Berlin", "office?")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Boardroom Deliberation")
	assert.Contains(t, stdout, "topic: Should we open a Berlin office?")
	assert.Contains(t, stdout, "Consensus reached: First Principles Physicist (6/6 votes, 100%)")
	assert.Contains(t, stdout, "Synthesis by Board:")
}

func TestRunJSONOutput(t *testing.T) {
	home := offlineEnv(t)

	stdout, _, err := executeCLI(t, home, "run", "--format", "json", "--max-iterations", "1", "--no-embodiment", "Pricing")
	require.NoError(t, err)

	var report domain.FinalReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report), stdout)
	assert.Equal(t, "Pricing", report.Topic)
	assert.True(t, report.ConsensusReached)
	assert.Equal(t, 1, report.IterationsCompleted)
	assert.Len(t, report.Participants, 6)
	assert.Len(t, report.Rounds, 30)
}

func TestRunOfflineFlagOverridesProvider(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BOARDROOM_LOGGING_LEVEL", "error")
	t.Setenv("BOARDROOM_PROVIDER_KIND", "openai")
	t.Setenv("OPENAI_API_KEY", "")

	stdout, _, err := executeCLI(t, home, "run", "--offline", "--format", "yaml", "Hiring plan")
	require.NoError(t, err)

	var report domain.FinalReport
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "Hiring plan", report.Topic)
	assert.Equal(t, domain.ParticipantName("First Principles Physicist"), report.Consensus.Winner)
}

func TestRunValidation(t *testing.T) {
	home := offlineEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing topic", args: []string{"run"}, want: "requires at least 1 arg(s)"},
		{name: "unknown format", args: []string{"run", "--format", "xml", "topic"}, want: "unsupported output format"},
		{name: "unknown adjustment source", args: []string{"run", "--adjust-from", "gut", "topic"}, want: "invalid adjustment_source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCLI(t, home, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUnsupportedProviderKind(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BOARDROOM_PROVIDER_KIND", "carrier-pigeon")

	_, _, err := executeCLI(t, home, "panel", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}

func TestHistoryAfterRun(t *testing.T) {
	home := offlineEnv(t)

	_, _, err := executeCLI(t, home, "run", "--format", "json", "Expand into Europe")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "history", "list", "--format", "json")
	require.NoError(t, err)
	var sessions []domain.SessionSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &sessions), stdout)
	require.Len(t, sessions, 1)
	assert.Equal(t, domain.SessionCompleted, sessions[0].Status)
	assert.True(t, sessions[0].ConsensusReached)

	stdout, _, err = executeCLI(t, home, "history", "show", string(sessions[0].ID), "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "topic: Expand into Europe")
	assert.Contains(t, stdout, "synthesizer: Board")

	stdout, _, err = executeCLI(t, home, "history", "show", string(sessions[0].ID))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Consensus reached")

	stdout, _, err = executeCLI(t, home, "history", "stats", "--format", "json")
	require.NoError(t, err)
	var stats domain.Stats
	require.NoError(t, json.Unmarshal([]byte(stdout), &stats))
	assert.Equal(t, domain.Stats{Total: 1, Completed: 1, ConsensusRate: 1, AverageIterations: 1}, stats)

	stdout, _, err = executeCLI(t, home, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sessions: 1")

	entries, err := os.ReadDir(filepath.Join(home, ".local", "share", "boardroom", "sessions"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_Expand_into_Europe"))
	assert.FileExists(t, filepath.Join(home, ".local", "share", "boardroom", "history.db"))
}

func TestHistoryFromSessionFoldersOnly(t *testing.T) {
	home := offlineEnv(t)
	t.Setenv("BOARDROOM_HISTORY_SINKS", "file")

	_, _, err := executeCLI(t, home, "run", "--format", "json", "Folders only")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "history", "list", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Folders only")
	assert.NoFileExists(t, filepath.Join(home, ".local", "share", "boardroom", "history.db"))
}

func TestHistoryUnavailableWithoutSinks(t *testing.T) {
	home := offlineEnv(t)
	t.Setenv("BOARDROOM_HISTORY_SINKS", "none")

	_, _, err := executeCLI(t, home, "history", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session history is not configured")
}

func TestHistoryShowUnknownSession(t *testing.T) {
	home := offlineEnv(t)

	_, _, err := executeCLI(t, home, "history", "show", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestPanelListAndInit(t *testing.T) {
	home := offlineEnv(t)

	stdout, _, err := executeCLI(t, home, "panel", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "1\tFirst Principles Physicist\t"))

	stdout, _, err = executeCLI(t, home, "panel", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote default panel to")
	assert.FileExists(t, filepath.Join(home, ".config", "boardroom", "panel.toml"))

	_, _, err = executeCLI(t, home, "panel", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = executeCLI(t, home, "panel", "init", "--force")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, "panel", "list", "--format", "json")
	require.NoError(t, err)
	var entries []panelEntry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	assert.Len(t, entries, 6)
}

func TestAuthStatusUsesOpenAIEnvironmentAlias(t *testing.T) {
	home := offlineEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	stdout, _, err := executeCLI(t, home, "auth", "status")
	require.NoError(t, err)
	assert.Equal(t, "boardroom://provider/api_key: configured (env)\n", stdout)
}

func TestAuthSetStoresSecret(t *testing.T) {
	home := offlineEnv(t)

	stdout, _, err := executeCLI(t, home, "auth", "set", "--secret-value", "sk-test-123")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Stored boardroom://provider/api_key")

	stdout, _, err = executeCLI(t, home, "auth", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "configured")
}

func TestAuthRemoveForgetsStoredSecret(t *testing.T) {
	home := offlineEnv(t)

	_, _, err := executeCLI(t, home, "auth", "set", "--secret-value", "sk-test-123")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, ".local", "share", "boardroom", "secrets", "secrets.toml"))

	stdout, _, err := executeCLI(t, home, "auth", "remove")
	require.NoError(t, err)
	assert.Equal(t, "Removed boardroom://provider/api_key\n", stdout)

	stdout, _, err = executeCLI(t, home, "auth", "status")
	require.NoError(t, err)
	assert.Equal(t, "boardroom://provider/api_key: missing\n", stdout)
}

func TestAuthSetRejectsEmptyValue(t *testing.T) {
	home := offlineEnv(t)

	_, _, err := executeCLI(t, home, "auth", "set")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret value is empty")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
