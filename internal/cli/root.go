package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the dpread command tree.
func NewRootCommand() *cobra.Command {

	root := &cobra.Command{
		Use:   "dpread",
		Short: "Read tabular data packages",
		Long: `dpread reads the CSV resources of a data package (a datapackage.json
manifest and its CSV files) from a local directory, a manifest URL, or a
GitHub repository, and prints or exports them.

Exit Codes:
  0 - Success
  1 - Reading or writing failed, or invalid arguments
  3 - Panic or unexpected system error`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	root.PersistentFlags().String("config", "", "Config file (default ./"+configFileHint+")")
	root.PersistentFlags().String("branch", "", "Branch used for GitHub repository URLs")
	root.PersistentFlags().Duration("timeout", 0, "HTTP timeout")

	root.AddCommand(
		newShowCommand(),
		newResourcesCommand(),
		newExportCommand(),
		newVersionCommand(),
	)

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
