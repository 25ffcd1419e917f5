package datapackage

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ManifestName is the file name of a data package descriptor.
const ManifestName = "datapackage.json"

// A Manifest is a parsed data package descriptor
// (https://specs.frictionlessdata.io/data-package/).
type Manifest struct {
	Name      string     `json:"name,omitempty"`
	Title     string     `json:"title,omitempty"`
	Resources []Resource `json:"resources"`

	// Address the manifest was read from.
	Location string `json:"-"`
}

// A Resource describes one data file of a package.
type Resource struct {

	// Optional; the positional index is used when it is empty.
	Name string `json:"name,omitempty"`

	// Relative path or URL of the data, or several parts of it.
	Path StringList `json:"path,omitempty"`

	// Older descriptors give remote data as url instead of path.
	URL string `json:"url,omitempty"`

	Format    string   `json:"format,omitempty"`
	MediaType string   `json:"mediatype,omitempty"`
	Schema    *Schema  `json:"schema,omitempty"`
	Dialect   *Dialect `json:"dialect,omitempty"`

	// Resolved data locations, one per part, filled in when the
	// manifest is read through a Reader.
	DataPaths []string `json:"-"`
}

// A Schema is a Table Schema (https://specs.frictionlessdata.io/table-schema/).
type Schema struct {
	Fields        []Field    `json:"fields"`
	PrimaryKey    StringList `json:"primaryKey,omitempty"`
	MissingValues []string   `json:"missingValues,omitempty"`
}

// A Field declares the name and logical type of a column.
type Field struct {
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`
}

// A Dialect describes the CSV layout of a resource.
type Dialect struct {
	Delimiter string `json:"delimiter,omitempty"`
	Header    *bool  `json:"header,omitempty"`
}

// StringList holds a JSON value that is either a string or an array
// of strings.
type StringList []string

// UnmarshalJSON accepts both forms.
func (sl *StringList) UnmarshalJSON(b []byte) error {

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*sl = StringList{s}
		return nil
	}

	var l []string
	if err := json.Unmarshal(b, &l); err != nil {
		return fmt.Errorf("expected a string or a list of strings: %w", err)
	}
	*sl = l

	return nil
}

// ParseManifest decodes a data package descriptor.
func ParseManifest(r io.Reader) (*Manifest, error) {

	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ManifestName, err)
	}

	return &m, nil
}

// FieldsOfType returns the names of the schema fields whose type is
// one of types.
func (s *Schema) FieldsOfType(types ...string) []string {

	if s == nil {
		return nil
	}

	var names []string
	for _, f := range s.Fields {
		for _, t := range types {
			if f.Type == t {
				names = append(names, f.Name)
				break
			}
		}
	}
	return names
}

// Field returns the field with the given name, or nil.
func (s *Schema) Field(name string) *Field {
	if s == nil {
		return nil
	}
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// sources returns the declared data locations before resolution.
func (res *Resource) sources() []string {
	if len(res.Path) > 0 {
		return res.Path
	}
	if res.URL != "" {
		return []string{res.URL}
	}
	return nil
}

// IsCSV reports whether the resource data is a CSV file, judged by
// the extension of its data location.
func (res *Resource) IsCSV() bool {

	paths := res.DataPaths
	if paths == nil {
		paths = res.sources()
	}
	if len(paths) == 0 {
		return false
	}

	p := paths[0]
	if i := strings.IndexAny(p, "?#"); i >= 0 && isURL(p) {
		p = p[:i]
	}
	return strings.HasSuffix(p, ".csv")
}

// comma returns the dialect delimiter, or zero for the default.
func (res *Resource) comma() (rune, error) {

	if res.Dialect == nil || res.Dialect.Delimiter == "" {
		return 0, nil
	}

	r := []rune(res.Dialect.Delimiter)
	if len(r) != 1 {
		return 0, fmt.Errorf("resource %q: delimiter %q is not a single character",
			res.Name, res.Dialect.Delimiter)
	}
	return r[0], nil
}

func (res *Resource) hasHeader() bool {
	return res.Dialect == nil || res.Dialect.Header == nil || *res.Dialect.Header
}
