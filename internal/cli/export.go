package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openclimatedata/datapackage"
	"github.com/openclimatedata/datapackage/internal/config"
	"github.com/openclimatedata/datapackage/internal/export"
)

func newExportCommand() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "export <package>",
		Short: "Write the tables of a data package as CSV or Parquet files",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	cmd.Flags().StringSliceP("resource", "r", nil, "Resource to read (repeatable)")
	cmd.Flags().StringP("format", "f", "", "Output format: csv or parquet (default csv)")
	cmd.Flags().StringP("out", "o", "", "Output directory (default .)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	format := s.cfg.Format
	if cmd.Flags().Changed("format") || format == "" {
		format, _ = cmd.Flags().GetString("format")
	}
	if format == "" {
		format = config.DefaultFormat
	}
	if format != "csv" && format != "parquet" {
		return fmt.Errorf("unknown format %q, want csv or parquet", format)
	}

	dir := s.cfg.OutputDir
	if cmd.Flags().Changed("out") || dir == "" {
		dir, _ = cmd.Flags().GetString("out")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
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

	tbls := tables(res)
	paths := make([]string, len(tbls))
	for i, tbl := range tbls {
		if paths[i], err = outputPath(dir, tbl.Name, format); err != nil {
			return err
		}
	}

	for i, tbl := range tbls {
		if err := writeTable(paths[i], format, tbl); err != nil {
			return err
		}
		s.logger.Info("wrote %s (%d rows)", paths[i], tbl.NumRows())
	}

	return nil
}

// outputPath returns the file a table is written to.  Table names come
// from the manifest and must not leave dir.
func outputPath(dir, name, format string) (string, error) {

	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("resource name %q cannot be used as a file name", name)
	}

	path := filepath.Join(dir, name+"."+format)
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel != filepath.Base(path) {
		return "", fmt.Errorf("resource name %q cannot be used as a file name", name)
	}
	return path, nil
}

func writeTable(path, format string, tbl *datapackage.Table) error {

	if format == "parquet" {
		return export.WriteParquetFile(path, tbl)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(f, tbl); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
