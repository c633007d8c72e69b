package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/masq/internal/app"
)

func (c *CLI) newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <dir>",
		Short: "Restore the real identifiers of anonymized files",
		Long: `Restore writes <name>_restored.pddl next to every anonymized file of the
directory that has a symbol table. A directory name that does not exist is
looked up below the output root.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Restore(cmd.Context(), app.RestoreOptions{
				CommonOptions: commonOptions(cmd),
				Dir:           args[0],
			})
		},
	}
}

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <dir>",
		Short: "Check that anonymized files leak nothing and restore cleanly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Verify(cmd.Context(), app.VerifyOptions{
				CommonOptions: commonOptions(cmd),
				Dir:           args[0],
			})
		},
	}
}
