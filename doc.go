/*
Package datapackage reads the tabular resources of a data package
(https://specs.frictionlessdata.io/data-package/) into memory.

A package is located by a local directory, the path of its
datapackage.json manifest, a manifest URL, or a GitHub repository URL,
which is rewritten to the raw content URL of the manifest on the
default branch.  Every CSV resource of the manifest, or those named by
the caller, is read into a Table of Series values.  The resource schema
drives the conversion: primary key fields become the table index, date
fields are parsed into time values, and integer fields are read as
int64 columns whose missing value mask is kept only when the column
actually has missing values.

	res, err := datapackage.ReadDataPackage(ctx, "https://github.com/org/repo")
	if err != nil {
		log.Fatal(err)
	}
	if res.Table != nil {
		// exactly one CSV resource
	}

The package also includes the underlying column container, Series, and
a CSVReader that reads CSV files, infers the datatype of each column,
honors type hints, and places the columns into an array of Series
objects.
*/
package datapackage
