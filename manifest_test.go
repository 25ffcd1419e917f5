package datapackage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {

	doc := `{
	  "name": "pkg",
	  "resources": [
	    {"name": "a", "path": "a.csv",
	     "schema": {"primaryKey": "id", "fields": [{"name": "id", "type": "integer"}]}},
	    {"name": "b", "path": ["b1.csv", "b2.csv"],
	     "schema": {"primaryKey": ["x", "y"], "fields": []}},
	    {"url": "https://example.org/c.csv"}
	  ]
	}`

	m, err := ParseManifest(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, m.Resources, 3)

	assert.Equal(t, "pkg", m.Name)
	assert.Equal(t, StringList{"id"}, m.Resources[0].Schema.PrimaryKey)
	assert.Equal(t, StringList{"b1.csv", "b2.csv"}, m.Resources[1].Path)
	assert.Equal(t, StringList{"x", "y"}, m.Resources[1].Schema.PrimaryKey)
	assert.Nil(t, m.Resources[2].Schema)
	assert.Equal(t, []string{"https://example.org/c.csv"}, m.Resources[2].sources())
}

func TestParseManifestErrors(t *testing.T) {

	_, err := ParseManifest(strings.NewReader(`{"resources": [`))
	assert.Error(t, err)

	_, err = ParseManifest(strings.NewReader(`{"resources": [{"path": 3}]}`))
	assert.Error(t, err)
}

func TestResourceIsCSV(t *testing.T) {

	assert.True(t, (&Resource{Path: StringList{"a.csv"}}).IsCSV())
	assert.True(t, (&Resource{URL: "https://example.org/a.csv?raw=true"}).IsCSV())
	assert.False(t, (&Resource{Path: StringList{"a.json"}}).IsCSV())
	assert.False(t, (&Resource{Path: StringList{"a.CSV.gz"}}).IsCSV())
	assert.False(t, (&Resource{}).IsCSV())
}

func TestSchemaFieldsOfType(t *testing.T) {

	s := &Schema{Fields: []Field{
		{Name: "a", Type: "integer"},
		{Name: "b", Type: "int"},
		{Name: "c", Type: "date"},
		{Name: "d", Type: "string"},
	}}
	assert.Equal(t, []string{"a", "b"}, s.FieldsOfType("integer", "int"))
	assert.Equal(t, []string{"c"}, s.FieldsOfType("date"))

	var none *Schema
	assert.Nil(t, none.FieldsOfType("date"))
	assert.Nil(t, none.Field("a"))
}

func TestResourceDialect(t *testing.T) {

	no := false
	res := &Resource{Dialect: &Dialect{Delimiter: ";", Header: &no}}
	c, err := res.comma()
	require.NoError(t, err)
	assert.Equal(t, ';', c)
	assert.False(t, res.hasHeader())

	res = &Resource{Dialect: &Dialect{Delimiter: "::"}}
	_, err = res.comma()
	assert.Error(t, err)

	assert.True(t, (&Resource{}).hasHeader())
}
