package datapackage

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/openclimatedata/datapackage/internal/logging"
)

// Field types read as integers.
var integerTypes = []string{"integer", "int"}

// Field type read as dates.
const dateType = "date"

// A Reader reads the CSV resources of data packages.  The zero value
// is usable; NewReader fills in the defaults explicitly.
type Reader struct {

	// Manifest file name, ManifestName if empty.
	ManifestName string

	// Branch used for GitHub repository URLs, DefaultBranch if empty.
	DefaultBranch string

	// Client for remote manifests and resources.  A client with a
	// one minute timeout is used if nil.
	HTTPClient *http.Client

	// Sent with HTTP requests when not empty.
	UserAgent string

	// Receives progress messages.  Nothing is logged if nil.
	Logger Logger
}

// NewReader returns a Reader with default settings.
func NewReader() *Reader {
	return &Reader{
		ManifestName:  ManifestName,
		DefaultBranch: DefaultBranch,
		HTTPClient:    &http.Client{Timeout: time.Minute},
		Logger:        logging.NewNullLogger(),
	}
}

// A Result holds the tables read from a package.  When exactly one
// resource produced a table, Table is set and Tables is nil.
// Otherwise Tables maps resource names to tables and Table is nil.
type Result struct {
	Table  *Table
	Tables map[string]*Table

	// Names of the tables read, in manifest order.
	Names []string
}

// Len returns the number of tables in the result.
func (res *Result) Len() int {
	return len(res.Names)
}

// Get returns the table read for the named resource, whatever the
// shape of the result.
func (res *Result) Get(name string) (*Table, bool) {
	if res.Table != nil {
		if res.Names[0] == name {
			return res.Table, true
		}
		return nil, false
	}
	t, ok := res.Tables[name]
	return t, ok
}

// ReadDataPackage reads the CSV resources of the data package at
// locator with a default Reader.
func ReadDataPackage(ctx context.Context, locator string, names ...string) (*Result, error) {
	return NewReader().Read(ctx, locator, names...)
}

// ReadManifest resolves locator and parses the manifest it points to.
// The data locations of every resource are filled in.
func (r *Reader) ReadManifest(ctx context.Context, locator string) (*Manifest, error) {

	address, err := r.ResolveLocator(locator)
	if err != nil {
		return nil, err
	}
	r.logger().Verbose("reading manifest %s", address)

	rc, err := r.open(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer rc.Close()

	m, err := ParseManifest(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", address, err)
	}
	m.Location = address

	for i := range m.Resources {
		res := &m.Resources[i]
		for _, p := range res.sources() {
			dp, err := resolveDataPath(address, p)
			if err != nil {
				return nil, fmt.Errorf("resource %q: data path %q: %w", res.Name, p, err)
			}
			res.DataPaths = append(res.DataPaths, dp)
		}
	}

	return m, nil
}

// Read reads the CSV resources of the data package at locator.  If
// names are given, only resources with one of those names are read.
// Resources that are not CSV files are skipped.  Primary key fields
// become the table index, date fields are parsed as dates and integer
// fields are read as int64 values.  An integer column that is not part
// of the index keeps its missing value mask only if it has missing
// values.
func (r *Reader) Read(ctx context.Context, locator string, names ...string) (*Result, error) {

	m, err := r.ReadManifest(ctx, locator)
	if err != nil {
		return nil, err
	}

	resources := filterResources(m.Resources, names)

	tables := make(map[string]*Table)
	var order []string

	for idx := range resources {
		res := &resources[idx]

		name := res.Name
		if name == "" {
			name = strconv.Itoa(idx)
		}

		if !res.IsCSV() {
			r.logger().Verbose("skipping resource %s: not a CSV file", name)
			continue
		}

		tbl, err := r.readResource(ctx, name, res)
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", name, err)
		}
		r.logger().Verbose("read resource %s: %d rows, %d columns",
			name, tbl.NumRows(), len(tbl.Index)+len(tbl.Columns))

		if _, ok := tables[name]; !ok {
			order = append(order, name)
		}
		tables[name] = tbl
	}

	if len(order) == 1 {
		return &Result{Table: tables[order[0]], Names: order}, nil
	}
	return &Result{Tables: tables, Names: order}, nil
}

// filterResources keeps the resources named in names, in manifest
// order.  All resources are kept if names is empty.
func filterResources(resources []Resource, names []string) []Resource {

	if len(names) == 0 {
		return resources
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var kept []Resource
	for _, res := range resources {
		if res.Name != "" && want[res.Name] {
			kept = append(kept, res)
		}
	}
	return kept
}

// readResource reads one CSV resource into a Table.
func (r *Reader) readResource(ctx context.Context, name string, res *Resource) (*Table, error) {

	schema := res.Schema
	var index []string
	if schema != nil {
		index = schema.PrimaryKey
	}
	isIndex := make(map[string]bool, len(index))
	for _, k := range index {
		isIndex[k] = true
	}

	hints := make(map[string]string)
	dateFormats := make(map[string]string)
	var intColumns []string
	for _, col := range schema.FieldsOfType(integerTypes...) {
		hints[col] = KindInt64
		if !isIndex[col] {
			intColumns = append(intColumns, col)
		}
	}
	for _, col := range schema.FieldsOfType(dateType) {
		hints[col] = KindDate
		dateFormats[col] = schema.Field(col).Format
	}

	comma, err := res.comma()
	if err != nil {
		return nil, err
	}

	rc, err := r.openParts(ctx, res.DataPaths)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	rdr := NewCSVReader(rc)
	rdr.Comma = comma
	rdr.HasHeader = res.hasHeader()
	if rdr.HasHeader {
		rdr.TypeHintsName = hints
	} else if schema != nil {
		// Without a header the schema fields name the columns in order.
		for _, f := range schema.Fields {
			rdr.ColumnNames = append(rdr.ColumnNames, f.Name)
			rdr.TypeHintsPos = append(rdr.TypeHintsPos, hints[f.Name])
		}
	}
	if len(dateFormats) > 0 {
		rdr.DateFormats = dateFormats
	}
	if schema != nil && schema.MissingValues != nil {
		rdr.MissingValues = schema.MissingValues
	}

	series, err := rdr.Read(-1)
	if err != nil {
		return nil, err
	}
	for j, col := range rdr.ColumnNames {
		if h, ok := hints[col]; ok && h != rdr.DataTypes[j] {
			r.logger().Verbose("resource %s: column %s declared %s, read as %s",
				name, col, h, rdr.DataTypes[j])
		}
	}

	tbl, err := NewTable(name, series, index)
	if err != nil {
		return nil, err
	}

	// Integer columns without missing values are strict int64 columns,
	// the others keep their mask.
	for _, col := range intColumns {
		s, err := tbl.Column(col)
		if err != nil {
			return nil, err
		}
		s.DropEmptyMask()
	}

	return tbl, nil
}

func (r *Reader) manifestName() string {
	if r.ManifestName == "" {
		return ManifestName
	}
	return r.ManifestName
}

func (r *Reader) branch() string {
	if r.DefaultBranch == "" {
		return DefaultBranch
	}
	return r.DefaultBranch
}

func (r *Reader) client() *http.Client {
	if r.HTTPClient == nil {
		return &http.Client{Timeout: time.Minute}
	}
	return r.HTTPClient
}

func (r *Reader) logger() Logger {
	if r.Logger == nil {
		return logging.NewNullLogger()
	}
	return r.Logger
}
