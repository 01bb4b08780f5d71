package minyaml

import (
	"fmt"
	"strings"
)

// Format selects the output of [Convert].
type Format int8

const (
	FormatJSON = Format(iota)
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	default:
		return fmt.Sprintf("Format(%d)", int8(f))
	}
}

// ParseFormat returns the format named by s ("json" or "csv", any case).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	}
	return 0, fmt.Errorf("unknown format %q", s)
}

// Convert parses input and serializes the result in the given format.
func Convert(input string, format Format) (string, error) {
	doc, err := Parse(input)
	if err != nil {
		return "", err
	}
	return Serialize(doc, format)
}

// Serialize writes an already parsed document in the given format.
func Serialize(doc *Mapping, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return JSON(doc), nil
	case FormatCSV:
		return CSV(doc)
	}
	return "", fmt.Errorf("unknown format %v", format)
}
