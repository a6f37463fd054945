package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/forkline/demosessions"
	"github.com/zjrosen/forkline/internal/config"
)

// isolate runs the test in an empty directory with no user config.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRoot_Scenario(t *testing.T) {
	isolate(t)

	out, err := execute(t, "new commit 'c1' master\nnew branch old master~1\ndelete branch master\ndelete branch old\n", "root")

	require.NoError(t, err)
	require.Equal(t, "master -> 'root'\nmaster -> 'c1'\nold -> 'root'\nmaster deleted\n'c1' deleted\nold deleted\n'root' deleted\n", out)
}

func TestRoot_FailureLine(t *testing.T) {
	isolate(t)

	out, err := execute(t, "new branch\nexamine now\n", "root")

	require.NoError(t, err)
	require.Equal(t, "master -> 'root'\nError\nError\n", out)
}

func TestRoot_MissingRootData(t *testing.T) {
	isolate(t)

	_, err := execute(t, "")

	require.ErrorIs(t, err, ErrNoRootData)
	require.EqualError(t, err, "give command line argument for master commit data")
}

func TestRoot_EmptyRootDataArgument(t *testing.T) {
	isolate(t)

	out, err := execute(t, "new branch b master\n", "")

	require.NoError(t, err)
	require.Equal(t, "master -> ''\nb -> ''\n", out)
}

func TestRoot_EmptyRootDataFromConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, config.LocalConfigFile), "root:\n  data: \"\"\n")

	out, err := execute(t, "")

	require.NoError(t, err)
	require.Equal(t, "master -> ''\n", out)
}

func TestRoot_SubcommandNameAsRootData(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "--", "demo")

	require.NoError(t, err)
	require.Equal(t, "master -> 'demo'\n", out)
}

func TestRoot_HelpExplainsSubcommandCollision(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "--help")

	require.NoError(t, err)
	require.Contains(t, out, `"forkline -- demo"`)
}

func TestRoot_OverlongLineKeepsReading(t *testing.T) {
	isolate(t)
	long := "new commit '" + strings.Repeat("x", 2<<20) + "' master\n"

	out, err := execute(t, long+"delete branch master\nnew branch b master\n", "--verbose-errors", "root")

	require.NoError(t, err)
	require.True(t, strings.HasSuffix(out, "master deleted\n'"+strings.Repeat("x", 2<<20)+"' deleted\n'root' deleted\nError: Branch ``master'' doesn't exist\n"))
}

func TestRoot_TooManyArgs(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "a", "b")
	require.Error(t, err)
}

func TestRoot_RootDataFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("FORKLINE_ROOT_DATA", "from env")

	out, err := execute(t, "")

	require.NoError(t, err)
	require.Equal(t, "master -> 'from env'\n", out)
}

func TestRoot_ArgumentBeatsConfig(t *testing.T) {
	isolate(t)
	t.Setenv("FORKLINE_ROOT_DATA", "from env")

	out, err := execute(t, "", "from arg")

	require.NoError(t, err)
	require.Equal(t, "master -> 'from arg'\n", out)
}

func TestRoot_LocalConfigFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, config.LocalConfigFile), "root:\n  data: local\nrepl:\n  verbose_errors: true\n")

	out, err := execute(t, "delete branch ghost\n")

	require.NoError(t, err)
	require.Equal(t, "master -> 'local'\nError: Branch ``ghost'' doesn't exist\n", out)
}

func TestRoot_UserConfigFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "xdg", "forkline", "config.yaml"), "root:\n  data: user\n")

	out, err := execute(t, "")

	require.NoError(t, err)
	require.Equal(t, "master -> 'user'\n", out)
}

func TestRoot_ExplicitConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "root:\n  data: custom\n")

	out, err := execute(t, "", "--config", path)

	require.NoError(t, err)
	require.Equal(t, "master -> 'custom'\n", out)
}

func TestRoot_ExplicitConfigFileMissing(t *testing.T) {
	dir := isolate(t)

	_, err := execute(t, "", "--config", filepath.Join(dir, "nope.yaml"), "root")

	require.ErrorContains(t, err, "reading config")
}

func TestRoot_InvalidConfig(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "--examine-format", "json", "root")

	require.ErrorContains(t, err, "invalid config: examine.format")
}

func TestRoot_VerboseErrorsFlag(t *testing.T) {
	isolate(t)

	out, err := execute(t, "new branch x master~1\n", "--verbose-errors", "root")

	require.NoError(t, err)
	require.Equal(t, "master -> 'root'\nError: Branch ``master'' does not go back 1 commit\n", out)
}

func TestRoot_ExamineYAML(t *testing.T) {
	isolate(t)

	out, err := execute(t, "new commit 'c1' master\nexamine\n", "--examine-format", "yaml", "root")

	require.NoError(t, err)
	require.Contains(t, out, "name: master")
	require.Contains(t, out, "data: c1")
	require.Contains(t, out, "live_commits: 2")
}

func TestRoot_ExamineTree(t *testing.T) {
	isolate(t)

	out, err := execute(t, "new branch dev master\nexamine\n", "root")

	require.NoError(t, err)
	require.Contains(t, out, "2 branches, 1 live commit")
	require.Contains(t, out, "dev")
	require.Contains(t, out, "#1 'root'")
}

func TestRoot_Script(t *testing.T) {
	dir := isolate(t)
	script := filepath.Join(dir, "session.fl")
	writeFile(t, script, "new commit 'scripted' master\n")

	out, err := execute(t, "new commit 'ignored' master\n", "--script", script, "root")

	require.NoError(t, err)
	require.Equal(t, "master -> 'root'\nmaster -> 'scripted'\n", out)
}

func TestRoot_ScriptMissing(t *testing.T) {
	dir := isolate(t)

	_, err := execute(t, "", "--script", filepath.Join(dir, "missing.fl"), "root")

	require.ErrorContains(t, err, "opening script")
}

func TestRoot_LogFile(t *testing.T) {
	dir := isolate(t)
	logPath := filepath.Join(dir, "forkline.log")

	_, err := execute(t, "new commit 'x' master\n", "--log-file", logPath, "--debug", "root")
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "Session started")
	require.Contains(t, string(data), "Commit created")
}

func TestRoot_LogFileUnwritable(t *testing.T) {
	dir := isolate(t)

	_, err := execute(t, "", "--log-file", filepath.Join(dir, "missing", "x.log"), "root")

	require.ErrorContains(t, err, "opening log file")
}

func TestRoot_TracingToFile(t *testing.T) {
	dir := isolate(t)
	spans := filepath.Join(dir, "spans.json")
	t.Setenv("FORKLINE_TRACING_ENABLED", "true")
	t.Setenv("FORKLINE_TRACING_FILE", spans)

	_, err := execute(t, "examine\n", "root")
	require.NoError(t, err)

	data, err := os.ReadFile(spans)
	require.NoError(t, err)
	require.Contains(t, string(data), "forkline.execute")
}

func TestInit_CreatesConfig(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "", "init")

	require.NoError(t, err)
	require.Equal(t, "Created .forkline.yaml\n", out)
	data, err := os.ReadFile(filepath.Join(dir, config.LocalConfigFile))
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfigTemplate(), string(data))
}

func TestInit_RefusesToOverwrite(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, config.LocalConfigFile)
	writeFile(t, path, "root:\n  data: mine\n")

	_, err := execute(t, "", "init")

	require.EqualError(t, err, ".forkline.yaml already exists")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "root:\n  data: mine\n", string(data))
}

func TestDemo_List(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "demo")

	require.NoError(t, err)
	require.Contains(t, out, "Demo sessions:")
	require.Contains(t, out, "  scenario  Branch off history, then delete everything")
	require.Contains(t, out, "  errors    Failed lines change nothing")
}

func TestDemo_Replay(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "demo", "scenario")

	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "# Branch off history, then delete everything\nmaster -> 'root'\n"))
	require.Contains(t, out, "\n> new commit 'c1' master\nmaster -> 'c1'\n")
	require.Contains(t, out, "\n> delete branch old\nold deleted\n'root' deleted\n")
}

func TestDemo_Unknown(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "demo", "nope")

	require.ErrorIs(t, err, demosessions.ErrNotFound)
}
