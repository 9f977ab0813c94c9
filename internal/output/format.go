package output

import "strings"

// Format selects the artifact representation.
type Format string

const (
	// FormatCode emits an ES module exporting the collection.
	FormatCode Format = "code"
	// FormatJSON emits a standalone JSON document.
	FormatJSON Format = "json"
)

// ParseFormat maps a configuration value onto a Format. Only "json" selects
// the JSON form; every other value selects code.
func ParseFormat(value string) Format {
	if strings.EqualFold(strings.TrimSpace(value), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatCode
}

// Extension returns the artifact file extension including the dot.
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".js"
}
