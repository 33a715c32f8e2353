// Package cmd implements the sealupd command line.
package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

// updateFlags holds the root command's flag values for one invocation.
type updateFlags struct {
	packagePath  string
	callerPID    int
	skipLaunch   bool
	disableLog   bool
	destRoot     string
	destChanged  bool
	configPath   string
	outputFormat string
	verbose      bool
}

var (
	// errMissingPackage mirrors cobra's wording for required flags; --package
	// cannot be marked required because its alias may be used instead.
	errMissingPackage = errors.New(`required flag(s) "package" not set`)
	errNegativePID    = errors.New("--pid must not be negative")
)

// buildInfo identifies the running binary.
type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Execute runs the command line and returns the process exit code.
func Execute(version, commit, date string) int {
	code := 0
	rootCmd := newRootCmd(buildInfo{Version: version, Commit: commit, Date: date}, &code)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return code
}

func newRootCmd(info buildInfo, code *int) *cobra.Command {
	var opts updateFlags

	rootCmd := &cobra.Command{
		Use:   "sealupd",
		Short: "Updater for SealDice",
		Long: `sealupd installs a downloaded SealDice update.

It waits for the running SealDice process to exit, renames the installed
executable to a backup, extracts the update package (zip or tar.gz) into the
installation directory and starts SealDice again.`,
		Example: `  sealupd --package update.zip --pid 4242
  sealupd -p sealdice-core_linux_amd64.tar.gz --skip-launch`,
		Version:      info.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.packagePath == "" {
				return errMissingPackage
			}
			if opts.callerPID < 0 {
				return errNegativePID
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.destChanged = cmd.Flags().Changed("dest")
			*code = runUpdate(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), info, opts)
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.packagePath, "package", "p", "", "Path to the update package (zip or tar.gz)")
	flags.StringVar(&opts.packagePath, "upgrade", "", "Alias of --package")
	flags.IntVar(&opts.callerPID, "pid", 0, "PID of the SealDice process to wait for (0 to not wait)")
	flags.BoolVar(&opts.skipLaunch, "skip-launch", false, "Do not start SealDice after updating")
	flags.BoolVar(&opts.skipLaunch, "skip", false, "Alias of --skip-launch")
	flags.BoolVar(&opts.disableLog, "disable-log", false, "Do not write an update log file")
	flags.StringVar(&opts.destRoot, "dest", ".", "Installation directory to update")
	flags.StringVar(&opts.configPath, "config", "", "Path to an updater config file")
	flags.StringVarP(&opts.outputFormat, "output", "o", "text", "Report format: text, json, yaml")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")
	_ = flags.MarkHidden("upgrade")
	_ = flags.MarkHidden("skip")

	rootCmd.AddCommand(newVersionCmd(info))
	rootCmd.AddCommand(newInitConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Register completion function for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("package", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"zip", "tar.gz", "tgz"}, cobra.ShellCompDirectiveFilterFileExt
	})

	return rootCmd
}
