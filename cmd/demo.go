package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/forkline/demosessions"
	"github.com/zjrosen/forkline/internal/repl"
)

func (a *app) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [name]",
		Short: "List or replay the built-in example sessions",
		Long:  `Without a name, list the built-in example sessions. With a name, replay that session against a fresh store, echoing each command after the prompt.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runDemo,
	}
}

func (a *app) runDemo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		demos, err := demosessions.List()
		if err != nil {
			return fmt.Errorf("loading demos: %w", err)
		}
		fmt.Fprintln(out, "Demo sessions:")
		width := maxNameLen(demos)
		for _, d := range demos {
			fmt.Fprintf(out, "  %-*s  %s\n", width, d.Name, d.Title)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Replay one with: forkline demo <name>")
		return nil
	}

	d, err := demosessions.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# %s\n", d.Title)

	opts := append(a.sessionOptions(out), repl.WithPrompt(out, a.cfg.REPL.Prompt))
	s := repl.NewSession(d.Root, repl.NewWriterEmitter(out), opts...)
	src := repl.NewEchoSource(repl.NewSliceSource(d.Lines...), out)
	if err := s.Run(cmd.Context(), src); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return nil
}

// maxNameLen returns the length of the longest demo name.
func maxNameLen(demos []demosessions.Demo) int {
	n := 0
	for _, d := range demos {
		n = max(n, len(d.Name))
	}
	return n
}
