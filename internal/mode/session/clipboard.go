package session

import (
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Clipboard copies text somewhere the user can paste it from.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard writes to the desktop clipboard. Over SSH or inside GNU
// screen, where native tools cannot reach the user's desktop, it emits an
// OSC 52 sequence to the controlling terminal instead.
type SystemClipboard struct{}

// Copy implements Clipboard.
func (SystemClipboard) Copy(text string) error {
	if remoteTerminal() {
		return copyOSC52(text)
	}
	return copyNative(text)
}

func remoteTerminal() bool {
	for _, key := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION", "STY"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

func copyOSC52(text string) (err error) {
	seq := fmt.Sprintf("\x1b]52;c;%s\x07", base64.StdEncoding.EncodeToString([]byte(text)))
	if os.Getenv("TMUX") != "" {
		// tmux passthrough doubles the inner escape.
		seq = fmt.Sprintf("\x1bPtmux;\x1b%s\x1b\\", seq)
	}

	// /dev/tty bypasses the alt-screen renderer that owns stdout.
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open /dev/tty: %w", err)
	}
	defer func() {
		if cerr := tty.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	_, err = tty.WriteString(seq)
	return err
}

func copyNative(text string) error {
	name, args := "xclip", []string{"-selection", "clipboard"}
	if runtime.GOOS == "darwin" {
		name, args = "pbcopy", nil
	}

	cmd := exec.Command(name, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	if _, err := stdin.Write([]byte(text)); err != nil {
		return err
	}
	if err := stdin.Close(); err != nil {
		return err
	}
	return cmd.Wait()
}
