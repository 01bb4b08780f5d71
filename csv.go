package minyaml

import (
	"fmt"
	"strings"
)

// A LookupError is returned by [CSV] when a record lacks one of the columns
// taken from the first record.
type LookupError struct {
	Record string
	Column string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("record %q: missing column %q", e.Record, e.Column)
}

// A RecordError is returned by [CSV] when the document is not a mapping of
// records, each a mapping of scalars.
type RecordError struct {
	Key    string
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %q: %s", e.Key, e.Reason)
}

// CSV flattens a two level document into a table. Each top-level key becomes
// a row, and the keys of the first record become the columns:
//
//	number,<column>,<column>...
//	<key>,"<value>","<value>"...
//
// Later records are read using the first record's columns: missing columns
// are a [*LookupError], extra columns are dropped. Values are not escaped.
func CSV(root *Mapping) (string, error) {
	header := []string{"number"}
	var columns []string
	rows := []string{}

	for key, node := range root.All() {
		record, ok := node.(*Mapping)
		if !ok {
			return "", &RecordError{Key: key, Reason: "expected a mapping"}
		}
		if columns == nil {
			columns = record.Keys()
			header = append(header, columns...)
		}

		row := []string{key}
		for _, column := range columns {
			value, ok := record.Get(column)
			if !ok {
				return "", &LookupError{Record: key, Column: column}
			}
			scalar, ok := value.(Scalar)
			if !ok {
				return "", &RecordError{Key: key, Reason: fmt.Sprintf("column %q is not a scalar", column)}
			}
			row = append(row, `"`+scalar.String()+`"`)
		}
		rows = append(rows, strings.Join(row, ","))
	}

	return strings.Join(append([]string{strings.Join(header, ",")}, rows...), "\n"), nil
}
