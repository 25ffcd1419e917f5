package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCommand() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "show <package>",
		Short: "Print the tables of a data package",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	cmd.Flags().StringSliceP("resource", "r", nil, "Resource to read (repeatable)")
	cmd.Flags().Int("rows", 10, "Rows to print per table, all if negative")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	r, err := s.reader()
	if err != nil {
		return err
	}

	res, err := r.Read(cmd.Context(), args[0], s.resourceNames(cmd)...)
	if err != nil {
		return err
	}

	rows, _ := cmd.Flags().GetInt("rows")
	out := cmd.OutOrStdout()
	for i, tbl := range tables(res) {
		if i > 0 {
			fmt.Fprintln(out)
		}
		last := tbl.NumRows()
		if rows >= 0 && rows < last {
			last = rows
		}
		if err := tbl.WriteRange(out, 0, last); err != nil {
			return err
		}
	}

	return nil
}
