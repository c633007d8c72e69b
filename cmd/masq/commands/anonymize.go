package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/masq/internal/app"
)

func (c *CLI) newAnonymizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anonymize [dirs...]",
		Short: "Anonymize the domains and problems of the given directories",
		Long: `Anonymize replaces every identifier of the domain and problem files in each
directory with a placeholder. Each file is written to the output root together
with a symbol table that restores it.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			if len(args) == 0 && !all {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			input, _ := cmd.Flags().GetString("input")
			output, _ := cmd.Flags().GetString("output")
			workers, _ := cmd.Flags().GetInt("workers")

			return c.app.Anonymize(cmd.Context(), app.AnonymizeOptions{
				CommonOptions: commonOptions(cmd),
				Dirs:          args,
				All:           all,
				Input:         input,
				Output:        output,
				Workers:       workers,
			})
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Anonymize every directory below the input root")
	cmd.Flags().StringP("input", "i", "", "Input root (overrides the configuration)")
	cmd.Flags().StringP("output", "o", "", "Output root (overrides the configuration)")
	cmd.Flags().IntP("workers", "w", 0, "Number of files processed in parallel (default: configuration)")

	return cmd
}
