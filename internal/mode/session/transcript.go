package session

import (
	"strings"

	"github.com/zjrosen/forkline/internal/repl"
	"github.com/zjrosen/forkline/internal/ui/styles"
)

type entry struct {
	text  string
	input bool
}

// transcript collects a session's output. It is shared by pointer between
// copies of the Model so the session can emit into it.
type transcript struct {
	entries []entry
}

// Emit implements store.Emitter.
func (t *transcript) Emit(line string) {
	t.entries = append(t.entries, entry{text: line})
}

func (t *transcript) echo(line string) {
	t.entries = append(t.entries, entry{text: line, input: true})
}

func (t *transcript) clear() {
	t.entries = nil
}

func (t *transcript) len() int {
	return len(t.entries)
}

// plain renders the transcript the way the line-oriented REPL would print it.
func (t *transcript) plain(prompt string) string {
	var b strings.Builder
	for _, e := range t.entries {
		if e.input {
			b.WriteString(prompt)
		}
		b.WriteString(e.text)
		b.WriteString("\n")
	}
	return b.String()
}

func (t *transcript) styled(prompt string) string {
	lines := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		lines = append(lines, styleEntry(e, prompt))
	}
	return strings.Join(lines, "\n")
}

func styleEntry(e entry, prompt string) string {
	switch {
	case e.input:
		return styles.InputStyle.Render(prompt + e.text)
	case e.text == repl.FailureLine || strings.HasPrefix(e.text, repl.FailureLine+": "):
		return styles.ErrorStyle.Render(e.text)
	case strings.HasSuffix(e.text, " deleted"):
		return styles.DeletedStyle.Render(e.text)
	case strings.Contains(e.text, " -> '"):
		return styles.HeadStyle.Render(e.text)
	default:
		return e.text
	}
}
