package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resources <package>",
		Short: "List the resources declared in a data package",
		Args:  cobra.ExactArgs(1),
		RunE:  runResources,
	}
}

func runResources(cmd *cobra.Command, args []string) error {

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	r, err := s.reader()
	if err != nil {
		return err
	}

	m, err := r.ReadManifest(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	s.logger.Verbose("manifest %s", m.Location)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFIELDS\tCSV\tDATA")
	for i, res := range m.Resources {
		name := res.Name
		if name == "" {
			name = strconv.Itoa(i)
		}
		nfields := 0
		if res.Schema != nil {
			nfields = len(res.Schema.Fields)
		}
		fmt.Fprintf(tw, "%s\t%d\t%t\t%s\n", name, nfields, res.IsCSV(), strings.Join(res.DataPaths, " "))
	}

	return tw.Flush()
}
