// Package commands implements the CLI commands for masq.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/masq/internal/app"
	"go.trai.ch/masq/internal/build"
	"go.trai.ch/masq/internal/core/domain"
)

// CLI represents the command line interface for masq.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Anonymize(ctx context.Context, opts app.AnonymizeOptions) error
	Restore(ctx context.Context, opts app.RestoreOptions) error
	Verify(ctx context.Context, opts app.VerifyOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "masq",
		Short:         "Anonymize planning domains and problems, and restore them",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	// Persistent flags go first so -v stays with --verbose and the version
	// flag is registered without a shorthand.
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to "+domain.ConfigFileName+" (default: search upwards)")
	flags.BoolP("verbose", "v", false, "Show debug output")
	flags.String("log-format", "", "Log format: auto, pretty or json")

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newAnonymizeCmd())
	rootCmd.AddCommand(c.newRestoreCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// commonOptions reads the persistent flags.
func commonOptions(cmd *cobra.Command) app.CommonOptions {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logFormat, _ := cmd.Flags().GetString("log-format")
	return app.CommonOptions{
		ConfigPath: configPath,
		Verbose:    verbose,
		LogFormat:  logFormat,
	}
}
