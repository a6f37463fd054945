// Package demosessions embeds example session scripts.
//
// Each script lives at sessions/<name>.fl. Lines starting with "#" are header
// comments; "# title:" and "# root:" set the demo's title and root commit
// data. Every other non-blank line is a command.
package demosessions

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed sessions
var sessions embed.FS

// Ext is the file extension of session scripts.
const Ext = ".fl"

const defaultRoot = "root"

// ErrNotFound is returned when no demo has the requested name.
var ErrNotFound = errors.New("demo not found")

// Demo is one parsed session script.
type Demo struct {
	Name  string
	Title string
	Root  string
	Lines []string
}

// FS returns the embedded filesystem holding sessions/*.fl.
func FS() fs.FS {
	return sessions
}

// Names returns the names of all embedded demos, sorted.
func Names() ([]string, error) {
	entries, err := fs.ReadDir(sessions, "sessions")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != Ext {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	sort.Strings(names)
	return names, nil
}

// List loads every embedded demo, sorted by name.
func List() ([]Demo, error) {
	names, err := Names()
	if err != nil {
		return nil, err
	}
	demos := make([]Demo, 0, len(names))
	for _, name := range names {
		d, err := Load(name)
		if err != nil {
			return nil, err
		}
		demos = append(demos, d)
	}
	return demos, nil
}

// Load reads and parses the named demo.
func Load(name string) (Demo, error) {
	data, err := fs.ReadFile(sessions, path.Join("sessions", name+Ext))
	if errors.Is(err, fs.ErrNotExist) {
		return Demo{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return Demo{}, err
	}
	d := Parse(string(data))
	d.Name = name
	return d, nil
}

// Parse splits a session script into its header and command lines.
func Parse(script string) Demo {
	d := Demo{Root: defaultRoot}
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
		case strings.HasPrefix(trimmed, "#"):
			key, value, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(trimmed, "#")), ":")
			if !ok {
				continue
			}
			switch strings.TrimSpace(key) {
			case "title":
				d.Title = strings.TrimSpace(value)
			case "root":
				d.Root = strings.TrimSpace(value)
			}
		default:
			d.Lines = append(d.Lines, line)
		}
	}
	return d
}
