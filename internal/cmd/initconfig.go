package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sealdice/sealupd/internal/templates"
)

func newInitConfigCmd() *cobra.Command {
	var (
		format string
		path   string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a documented sample config file",
		Long: `Write a sample sealupd config file listing every option with its default.

By default the file is written to the current directory as sealupd.toml, where
sealupd picks it up automatically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitConfig(cmd.OutOrStdout(), format, path, force)
		},
	}

	cmd.Flags().StringVar(&format, "format", "toml", "Config format: toml, yaml")
	cmd.Flags().StringVar(&path, "path", "", "Output path (default sealupd.<format>)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return templates.List(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runInitConfig(stdout io.Writer, format, path string, force bool) error {
	tmpl, err := templates.Get(format)
	if err != nil {
		return err
	}
	if path == "" {
		path = tmpl.FileName
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, tmpl.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	_, _ = fmt.Fprintf(stdout, "Created %s (%s)\n", path, tmpl.Description)
	return nil
}
