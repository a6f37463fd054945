package demosessions

import (
	"bytes"
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/forkline/internal/repl"
)

func TestFS_ScenarioExists(t *testing.T) {
	data, err := fs.ReadFile(FS(), "sessions/scenario.fl")
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestNames(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	require.Equal(t, []string{"errors", "offsets", "rebind", "scenario"}, names)
}

func TestLoad(t *testing.T) {
	d, err := Load("scenario")
	require.NoError(t, err)

	require.Equal(t, "scenario", d.Name)
	require.Equal(t, "Branch off history, then delete everything", d.Title)
	require.Equal(t, "root", d.Root)
	require.Equal(t, []string{
		"new commit 'c1' master",
		"new branch old master~1",
		"delete branch master",
		"delete branch old",
	}, d.Lines)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load("nope")
	require.ErrorIs(t, err, ErrNotFound)
	require.EqualError(t, err, `demo not found: "nope"`)
}

func TestParse(t *testing.T) {
	d := Parse("# title:  Hello \r\n\n# a plain comment\n  examine\r\n#root: seed\n")

	require.Equal(t, "Hello", d.Title)
	require.Equal(t, "seed", d.Root)
	require.Equal(t, []string{"  examine"}, d.Lines)
}

func TestParse_DefaultRoot(t *testing.T) {
	require.Equal(t, "root", Parse("examine").Root)
}

func TestList_EveryDemoRuns(t *testing.T) {
	demos, err := List()
	require.NoError(t, err)
	require.Len(t, demos, 4)

	for _, d := range demos {
		t.Run(d.Name, func(t *testing.T) {
			require.NotEmpty(t, d.Title)
			require.NotEmpty(t, d.Lines)

			var out bytes.Buffer
			s := repl.NewSession(d.Root, repl.NewWriterEmitter(&out))
			require.NoError(t, s.Run(context.Background(), repl.NewSliceSource(d.Lines...)))
		})
	}
}

func TestScenarioOutput(t *testing.T) {
	d, err := Load("scenario")
	require.NoError(t, err)

	var out bytes.Buffer
	s := repl.NewSession(d.Root, repl.NewWriterEmitter(&out))
	require.NoError(t, s.Run(context.Background(), repl.NewSliceSource(d.Lines...)))

	require.Equal(t, "master -> 'root'\nmaster -> 'c1'\nold -> 'root'\nmaster deleted\n'c1' deleted\nold deleted\n'root' deleted\n", out.String())
	require.Equal(t, 0, s.Store().Live())
}
