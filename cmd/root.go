package cmd

import (
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/shmd/shmd/core"
)

var stripPrompts bool

// rootCmd runs the extraction when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "shmd MARKDOWN OS_RELEASE [CONTEXT]",
	Short: "Extract shell commands from Markdown for the current distribution.",
	Long: `Extracts the text of fenced "sh" code blocks from a Markdown document
and writes it to stdout, ready to pipe into a shell.

A fence of the form "sh:<ctx-list>;<os-list>" is extracted only when at
least one of its comma-separated context tags appears in CONTEXT and at
least one of its whitespace-separated KEY=VALUE filters matches the
given os-release file. Either list may be empty; a plain "sh" fence is
always extracted.

CONTEXT is a single comma-separated list of tags, e.g. "git,sev".`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		opts := core.Options{
			MarkdownPath:  args[0],
			OSReleasePath: args[1],
			StripPrompts:  stripPrompts,
		}
		if len(args) == 3 && args[2] != "" {
			opts.Context = strings.Split(args[2], ",")
		}

		return core.NewExtractor(afero.NewOsFs(), cmd.OutOrStdout()).Run(opts)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.Flags().BoolVar(&stripPrompts, "strip-prompts", false, "remove leading '$' and '#' prompt markers from extracted lines")
}
