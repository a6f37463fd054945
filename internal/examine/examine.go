// Package examine renders store snapshots for the examine command.
package examine

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/forkline/internal/log"
	"github.com/zjrosen/forkline/internal/store"
)

// Format selects the dump layout.
type Format string

const (
	FormatTree Format = "tree"
	FormatYAML Format = "yaml"
)

// ColorMode controls ANSI styling of the tree layout.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Options configures a renderer.
type Options struct {
	Format     Format
	Color      ColorMode
	ShowOwners bool
	// MaxWidth truncates payloads wider than this many cells. Zero disables.
	MaxWidth int
	// Output is the stream the dump is written to, used to detect colour
	// support when Color is auto.
	Output io.Writer
}

// Colours follow the chain art palette.
var (
	branchColor = lipgloss.Color("#54A0FF")
	commitColor = lipgloss.Color("#73F59F")
	mutedColor  = lipgloss.Color("#696969")
)

// New returns a store.Renderer for opts.
func New(opts Options) store.Renderer {
	if opts.Format == FormatYAML {
		return YAML
	}
	r := newLipglossRenderer(opts)
	return func(snap store.Snapshot) []string {
		return Tree(r, snap, opts)
	}
}

func newLipglossRenderer(opts Options) *lipgloss.Renderer {
	w := opts.Output
	if w == nil {
		w = io.Discard
	}
	r := lipgloss.NewRenderer(w)
	switch opts.Color {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever, "":
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// Tree renders the snapshot as a tree: one subtree per branch listing its
// history head first.
func Tree(r *lipgloss.Renderer, snap store.Snapshot, opts Options) []string {
	branchStyle := r.NewStyle().Foreground(branchColor).Bold(true)
	commitStyle := r.NewStyle().Foreground(commitColor)
	mutedStyle := r.NewStyle().Foreground(mutedColor)

	header := fmt.Sprintf("%d %s, %d live %s",
		len(snap.Branches), plural(len(snap.Branches), "branch", "branches"),
		snap.Live, plural(snap.Live, "commit", "commits"))

	root := tree.Root(header).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(mutedStyle)

	for _, b := range snap.Branches {
		labels := commitLabels(b.Chain, opts.MaxWidth)
		width := 0
		for _, l := range labels {
			width = max(width, runewidth.StringWidth(l))
		}

		sub := tree.Root(branchStyle.Render(b.Name)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(mutedStyle)
		for i, c := range b.Chain {
			label := commitStyle.Render(labels[i])
			if opts.ShowOwners {
				pad := strings.Repeat(" ", width-runewidth.StringWidth(labels[i]))
				label += pad + mutedStyle.Render(fmt.Sprintf("  owners %d", c.Owners))
			}
			sub.Child(label)
		}
		root.Child(sub)
	}

	return strings.Split(root.String(), "\n")
}

// YAML renders the snapshot as a YAML document.
func YAML(snap store.Snapshot) []string {
	data, err := yaml.Marshal(snap)
	if err != nil {
		log.ErrorErr(log.CatStore, "Failed to marshal snapshot", err)
		return []string{fmt.Sprintf("examine: %v", err)}
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func commitLabels(chain []store.CommitView, maxWidth int) []string {
	labels := make([]string, len(chain))
	for i, c := range chain {
		data := c.Data
		if maxWidth > 0 && runewidth.StringWidth(data) > maxWidth {
			data = runewidth.Truncate(data, maxWidth, "…")
		}
		labels[i] = fmt.Sprintf("#%d '%s'", c.ID, data)
	}
	return labels
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
