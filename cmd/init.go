package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/forkline/internal/config"
	"github.com/zjrosen/forkline/internal/log"
)

func (a *app) initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a .forkline.yaml config file in the current directory",
		Long:  `Write the default configuration, with every option documented, to ./.forkline.yaml. An existing file is never overwritten.`,
		Args:  cobra.NoArgs,
		RunE:  a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	f, err := os.OpenFile(config.LocalConfigFile, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s already exists", config.LocalConfigFile)
	}
	if err != nil {
		return fmt.Errorf("creating config: %w", err)
	}

	if _, err := f.WriteString(config.DefaultConfigTemplate()); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	log.Info(log.CatCLI, "Config file created", "path", config.LocalConfigFile)
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.LocalConfigFile)
	return nil
}
