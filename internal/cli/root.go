// Package cli implements the condense command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/HartBrook/condense/internal/config"
	"github.com/HartBrook/condense/internal/errors"
	"github.com/HartBrook/condense/internal/logging"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time.
	Version = "dev"

	// configPath overrides the default config file location.
	configPath string

	// Output helpers.
	successIcon = color.New(color.FgGreen).Sprint("✓")
	warningIcon = color.New(color.FgYellow).Sprint("⚠")
	errorIcon   = color.New(color.FgRed).Sprint("✗")

	success = color.New(color.FgGreen).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
	danger  = color.New(color.FgRed).SprintFunc()
	info    = color.New(color.FgCyan).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "condense",
		Short: "Deterministic prompt compression",
		Long: `Condense shrinks AI prompts by a target percentage without calling a model.

It classifies the prompt, applies the rewrite policy for that type, steers the
result into the policy's reduction band, and scores how much structure survived.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	configPath = ""
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/condense/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(NewCompressCmd())
	rootCmd.AddCommand(NewClassifyCmd())
	rootCmd.AddCommand(NewPoliciesCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewCacheCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "condense %s\n", Version)
		},
	}
}

// Execute runs the CLI.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printErr(os.Stderr, err)
		return err
	}
	return nil
}

// printErr prints an error with its hint when it has one.
func printErr(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", errorIcon, err.Error())
	if typed, ok := err.(*errors.Error); ok && typed.Hint != "" {
		fmt.Fprintf(w, "  %s\n", dim(typed.Hint))
	}
}

// loadConfig returns the effective config and paths. A missing config file
// yields defaults.
func loadConfig() (*config.Config, *config.Paths, error) {
	paths := config.NewPaths()
	path := configPath
	if path == "" {
		path = paths.ConfigFile
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, paths, nil
}

// newLogger builds the logger for a command. Verbose raises the level to debug.
// The caller closes the returned Closer when the command is done.
func newLogger(cmd *cobra.Command, cfg *config.Config, verbose bool) (zerolog.Logger, io.Closer, error) {
	logCfg := cfg.Logging
	if verbose {
		logCfg.Level = "debug"
	}
	if logCfg.Output == "" || logCfg.Output == "stderr" {
		return logging.NewWithWriter(logCfg, cmd.ErrOrStderr()), logging.NopCloser, nil
	}
	logger, closer, err := logging.New(logCfg)
	if err != nil {
		return logger, closer, errors.Wrap(errors.ErrConfigInvalid,
			"cannot write logs to "+logCfg.Output, "Fix logging.output in the config file", err)
	}
	return logger, closer, nil
}

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", successIcon, fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", warningIcon, fmt.Sprintf(format, args...))
}

// printInfo prints an info line.
func printInfo(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s: %s\n", dim(label), value)
}
