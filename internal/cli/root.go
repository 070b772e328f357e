package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yildizm/GefSum/internal/config"
	"github.com/yildizm/GefSum/internal/emoji"
	"github.com/yildizm/GefSum/internal/logger"
	"github.com/yildizm/GefSum/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gefsum",
		Short: "GEF soil investigation toolkit",
		Long: `GefSum reads GEF files with cone penetration tests (CPT) and borehole
soil logs, shows their profiles, finds investigations near a location and
exports soil profiles for DAM.

Files are read permissively: utf-8 with replacement of invalid bytes or
latin-1, as configured.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)

			// config subcommands load their own file and report errors themselves
			if cmd.Name() == "version" || (cmd.Parent() != nil && cmd.Parent().Name() == "config") {
				return nil
			}
			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			globalConfig = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, yaml, markdown, csv)")

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newNearestCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newProjectCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newViewCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "GefSum %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig returns the configuration loaded for the running command
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

func isVerbose() bool {
	return verbose || GetGlobalConfig().Output.Verbose
}

// getOutputFormat prefers the --output flag over the configured default
func getOutputFormat() string {
	if outputFmt != "" {
		return outputFmt
	}
	return GetGlobalConfig().Output.DefaultFormat
}

func useColor() bool {
	if noColor {
		return false
	}
	switch GetGlobalConfig().Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return !ui.IsColorDisabled()
	}
}

func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}
