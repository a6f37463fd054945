package session

import (
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// editorExecMsg carries a prepared editor process. Update hands it to
// tea.ExecProcess so the editor gets the terminal.
type editorExecMsg struct {
	cmd     *exec.Cmd
	tmpPath string
}

// scriptEditedMsg carries the lines saved from the editor.
type scriptEditedMsg struct {
	lines []string
	err   error
}

// editorCommand picks $VISUAL, then $EDITOR, then vi.
func editorCommand() string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if e := os.Getenv(key); e != "" {
			return e
		}
	}
	return "vi"
}

// openEditor writes draft to a temporary script file and prepares the editor
// on it.
func openEditor(draft string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.CreateTemp("", "forkline-script-*.fl")
		if err != nil {
			return scriptEditedMsg{err: err}
		}
		path := f.Name()
		if _, err := f.WriteString(draft); err != nil {
			_ = f.Close()
			_ = os.Remove(path)
			return scriptEditedMsg{err: err}
		}
		if err := f.Close(); err != nil {
			_ = os.Remove(path)
			return scriptEditedMsg{err: err}
		}

		// #nosec G204 -- the editor comes from the user's own environment
		return editorExecMsg{cmd: exec.Command(editorCommand(), path), tmpPath: path}
	}
}

// run suspends the program while the editor runs, then reads the script back.
func (msg editorExecMsg) run() tea.Cmd {
	return tea.ExecProcess(msg.cmd, func(err error) tea.Msg {
		defer func() { _ = os.Remove(msg.tmpPath) }()
		if err != nil {
			return scriptEditedMsg{err: err}
		}
		data, err := os.ReadFile(msg.tmpPath)
		if err != nil {
			return scriptEditedMsg{err: err}
		}
		return scriptEditedMsg{lines: scriptLines(string(data))}
	})
}

// scriptLines drops blank lines and "#" comments.
func scriptLines(script string) []string {
	var lines []string
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
