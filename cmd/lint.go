package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/shmd/shmd/core"
)

// lintCmd checks fence descriptors without extracting anything.
var lintCmd = &cobra.Command{
	Use:   "lint MARKDOWN",
	Short: "Check the shell fence descriptors of a document.",
	Long: `Checks every shell fence of a Markdown document and reports
descriptors that would abort extraction (an os filter without '=') or
that will not match the way they read (context tags containing
whitespace). Exits nonzero if any fence is malformed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		source, err := afero.ReadFile(afero.NewOsFs(), args[0])
		if err != nil {
			return err
		}

		diagnostics, err := core.LintDocument(source)
		if err != nil {
			return err
		}

		malformed := 0
		for _, diagnostic := range diagnostics {
			label := color.YellowString(string(diagnostic.Severity))
			if diagnostic.Severity == core.SeverityError {
				label = color.RedString(string(diagnostic.Severity))
				malformed++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%d: %s: %s\n", args[0], diagnostic.Line, label, diagnostic.Message)
		}

		if malformed > 0 {
			return fmt.Errorf("%d malformed fence(s) in %s", malformed, args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
