package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	cornerTopLeft     = "╭"
	cornerTopRight    = "╮"
	cornerBottomLeft  = "╰"
	cornerBottomRight = "╯"
	edgeHorizontal    = "─"
	edgeVertical      = "│"
)

// RenderPane draws content inside a rounded border of exactly width x height
// cells. leftTitle and rightTitle are embedded in the top edge; pass "" to
// omit either. A focused pane draws its border in AccentColor.
func RenderPane(content, leftTitle, rightTitle string, width, height int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = AccentColor
	}
	border := lipgloss.NewStyle().Foreground(borderColor)

	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)

	body := lipgloss.NewStyle().Width(innerWidth).Height(innerHeight).Render(content)
	bodyLines := strings.Split(body, "\n")

	var b strings.Builder
	b.WriteString(topEdge(leftTitle, rightTitle, innerWidth, border))
	for i := range innerHeight {
		var line string
		if i < len(bodyLines) {
			line = bodyLines[i]
		}
		if w := lipgloss.Width(line); w < innerWidth {
			line += strings.Repeat(" ", innerWidth-w)
		}
		b.WriteString("\n")
		b.WriteString(border.Render(edgeVertical) + line + border.Render(edgeVertical))
	}
	b.WriteString("\n")
	b.WriteString(border.Render(cornerBottomLeft + strings.Repeat(edgeHorizontal, innerWidth) + cornerBottomRight))
	return b.String()
}

// topEdge renders ╭─ Left ───── Right ─╮. The right title is dropped first
// when space runs out, then the left title is truncated.
func topEdge(left, right string, innerWidth int, border lipgloss.Style) string {
	plain := func() string {
		return border.Render(cornerTopLeft + strings.Repeat(edgeHorizontal, innerWidth) + cornerTopRight)
	}
	if left == "" && right == "" {
		return plain()
	}

	// "─ " + left + " " ... " " + right + " ─"
	need := 0
	if left != "" {
		need += runewidth.StringWidth(left) + 3
	}
	if right != "" {
		need += runewidth.StringWidth(right) + 3
	}
	if need+1 > innerWidth && right != "" {
		need -= runewidth.StringWidth(right) + 3
		right = ""
	}
	if left != "" && need+1 > innerWidth {
		avail := innerWidth - 4
		if avail < 1 {
			return plain()
		}
		left = runewidth.Truncate(left, avail, "…")
		need = runewidth.StringWidth(left) + 3
	}
	if left == "" && right == "" {
		return plain()
	}

	var b strings.Builder
	b.WriteString(border.Render(cornerTopLeft))
	if left != "" {
		b.WriteString(border.Render(edgeHorizontal + " "))
		b.WriteString(TitleStyle.Render(left))
		b.WriteString(border.Render(" "))
	}
	b.WriteString(border.Render(strings.Repeat(edgeHorizontal, max(innerWidth-need, 1))))
	if right != "" {
		b.WriteString(border.Render(" "))
		b.WriteString(HintStyle.Render(right))
		b.WriteString(border.Render(" " + edgeHorizontal))
	}
	b.WriteString(border.Render(cornerTopRight))
	return b.String()
}
