// Package minyaml implements parsing of a small, indentation-based subset of
// YAML, and converting it to JSON or CSV.
//
// A document is a tree of mappings. Each non-blank line is either a
// "key: value" pair or a "key:" header that opens a nested mapping; nesting is
// taken from the number of leading spaces, four per level. Lines starting with
// # are comments.
//
//	# a basic document
//	monday:
//	    first:
//	        subject: Math
//	        room: 101
//	        online: false
//	tuesday:
//	    first:
//	        subject: 'History'
//	        teacher: null
//
// Values are typed when they are read, by trying each of these in turn:
// true or false (any case) is a boolean; null (any case) is null; a run of
// digits is an integer, kept exactly however long it is; a finite decimal
// number such as 2.5, -3 or 1_000 is a float; and everything else is a
// string, with one surrounding quote removed from each end.
//
// Lists, anchors, block scalars, flow collections and multiple documents are
// not supported. A line that is neither a pair nor a header is a
// [*SyntaxError].
//
// [JSON] renders any document as JSON indented by four spaces. [CSV] renders
// a two-level document (records of columns) as a table:
//
//	doc, err := minyaml.Parse(input)
//	if err != nil {
//	  return err
//	}
//	table, err := minyaml.CSV(doc)
//
// Package [github.com/ConradIrwin/minyaml/yamllib] reads the same documents
// using gopkg.in/yaml.v3, for comparison.
package minyaml
