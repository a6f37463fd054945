package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func requireBox(t *testing.T, out string, width, height int) []string {
	t.Helper()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, height)
	for i, line := range lines {
		require.Equal(t, width, lipgloss.Width(line), "line %d: %q", i, line)
	}
	return lines
}

func TestRenderPane_Basic(t *testing.T) {
	lines := requireBox(t, RenderPane("master -> 'root'", "forkline", "", 30, 5, false), 30, 5)

	require.True(t, strings.HasPrefix(lines[0], "╭─ forkline "))
	require.True(t, strings.HasSuffix(lines[0], "╮"))
	require.Contains(t, lines[1], "master -> 'root'")
	require.True(t, strings.HasPrefix(lines[4], "╰"))
	require.True(t, strings.HasSuffix(lines[4], "╯"))
}

func TestRenderPane_BothTitles(t *testing.T) {
	lines := requireBox(t, RenderPane("", "transcript", "3 branches", 40, 4, true), 40, 4)

	require.Contains(t, lines[0], "transcript")
	require.True(t, strings.HasSuffix(lines[0], "3 branches ─╮"))
}

func TestRenderPane_NoTitles(t *testing.T) {
	lines := requireBox(t, RenderPane("x", "", "", 10, 3, false), 10, 3)
	require.Equal(t, "╭"+strings.Repeat("─", 8)+"╮", lines[0])
}

func TestRenderPane_NarrowDropsRightTitle(t *testing.T) {
	lines := requireBox(t, RenderPane("", "left", "a long right title", 16, 3, false), 16, 3)

	require.Contains(t, lines[0], "left")
	require.NotContains(t, lines[0], "right")
}

func TestRenderPane_TruncatesLeftTitle(t *testing.T) {
	lines := requireBox(t, RenderPane("", "a very long pane title", "", 14, 3, false), 14, 3)
	require.Contains(t, lines[0], "…")
}

func TestRenderPane_ClipsOverflowingContent(t *testing.T) {
	content := strings.Join([]string{"one", "two", "three", "four"}, "\n")
	lines := requireBox(t, RenderPane(content, "t", "", 12, 4, false), 12, 4)

	require.Contains(t, lines[1], "one")
	require.Contains(t, lines[2], "two")
	require.NotContains(t, strings.Join(lines, "\n"), "three")
}

func TestRenderPane_WrapsLongLines(t *testing.T) {
	requireBox(t, RenderPane(strings.Repeat("x", 50), "t", "", 12, 8, false), 12, 8)
}
