package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/shmd/shmd/core"
)

// tagsCmd summarizes what a document's fences can match against.
var tagsCmd = &cobra.Command{
	Use:   "tags MARKDOWN",
	Short: "Show the context tags and OS filters a document references.",
	Long: `Scans a Markdown document and prints, as YAML, the context tags and
KEY=VALUE os-release filters referenced by its shell fences. Use it to
discover which CONTEXT values and distributions a document supports.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		source, err := afero.ReadFile(afero.NewOsFs(), args[0])
		if err != nil {
			return err
		}

		report, err := core.ScanDocument(source)
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
