package iconset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AttributeMode selects the shape descriptor representation for a run.
type AttributeMode int

const (
	// ModeSimple records the path data string of every shape.
	ModeSimple AttributeMode = iota
	// ModeAttributed records every shape attribute except fill.
	ModeAttributed
)

func (m AttributeMode) String() string {
	switch m {
	case ModeAttributed:
		return "attributed"
	default:
		return "simple"
	}
}

// SourceDirectory is one icon folder directly below the source root.
type SourceDirectory struct {
	Path string
	Name string
}

// CandidateFile is an icon file discovered inside a SourceDirectory.
type CandidateFile struct {
	DirectoryPath string
	FilePath      string
	Key           string
}

// ShapeAttr is one normalized attribute of an attributed shape.
type ShapeAttr struct {
	Name  string
	Value string
}

// Shape describes one path element. Simple shapes carry Path (nil when the
// element has no d attribute); attributed shapes carry Attrs.
type Shape struct {
	Path  *string
	Attrs []ShapeAttr
}

// PathShape builds a simple mode shape.
func PathShape(d *string) Shape {
	return Shape{Path: d}
}

// AttributedShape builds an attributed mode shape. A nil attrs slice is
// recorded as an empty mapping.
func AttributedShape(attrs []ShapeAttr) Shape {
	if attrs == nil {
		attrs = []ShapeAttr{}
	}
	return Shape{Attrs: attrs}
}

// Attributed reports whether the shape uses the attribute mapping form.
func (s Shape) Attributed() bool {
	return s.Attrs != nil
}

// MarshalJSON renders a string (or null) in simple mode and an object with
// attributes in document order in attributed mode.
func (s Shape) MarshalJSON() ([]byte, error) {
	if !s.Attributed() {
		if s.Path == nil {
			return []byte("null"), nil
		}
		return json.Marshal(*s.Path)
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range s.Attrs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONPair(&buf, attr.Name, attr.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IconRecord is the geometry extracted from one icon file.
type IconRecord struct {
	Viewbox *string
	Shapes  []Shape
}

type iconRecordJSON struct {
	Viewbox *string `json:"viewbox,omitempty"`
	Paths   []Shape `json:"paths"`
}

// MarshalJSON renders {"viewbox": ..., "paths": [...]}.
func (r IconRecord) MarshalJSON() ([]byte, error) {
	paths := r.Shapes
	if paths == nil {
		paths = []Shape{}
	}
	return json.Marshal(iconRecordJSON{Viewbox: r.Viewbox, Paths: paths})
}

// Entry pairs a collection key with its record.
type Entry struct {
	Key    string
	Record IconRecord
}

// Collection holds the records of one directory in insertion order.
type Collection struct {
	Name    string
	entries []Entry
	index   map[string]int
}

// NewCollection returns an empty collection for the named directory.
func NewCollection(name string) *Collection {
	return &Collection{Name: name, index: map[string]int{}}
}

// Set stores record under key. An existing key keeps its position, its
// record is overwritten and replaced reports true.
func (c *Collection) Set(key string, record IconRecord) (replaced bool) {
	if pos, ok := c.index[key]; ok {
		c.entries[pos].Record = record
		return true
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, Entry{Key: key, Record: record})
	return false
}

// Get returns the record stored for key.
func (c *Collection) Get(key string) (IconRecord, bool) {
	pos, ok := c.index[key]
	if !ok {
		return IconRecord{}, false
	}
	return c.entries[pos].Record, true
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in insertion order.
func (c *Collection) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Keys returns the keys in insertion order.
func (c *Collection) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		keys = append(keys, entry.Key)
	}
	return keys
}

// MarshalJSON renders the collection as an object preserving insertion order.
func (c *Collection) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range c.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONPair(&buf, entry.Key, entry.Record); err != nil {
			return nil, fmt.Errorf("iconset: encode %s: %w", entry.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONPair(buf *bytes.Buffer, key string, value any) error {
	encodedKey, err := json.Marshal(key)
	if err != nil {
		return err
	}
	encodedValue, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(encodedKey)
	buf.WriteByte(':')
	buf.Write(encodedValue)
	return nil
}

// DirectoryReport summarizes the processing of one source directory.
type DirectoryReport struct {
	Directory  SourceDirectory
	Artifact   string
	Entries    int
	Failures   []*FileError
	Duplicates []string
	Err        error
	Duration   time.Duration
}

// Failed reports whether the directory produced no artifact.
func (r DirectoryReport) Failed() bool {
	return r.Err != nil
}

// RunReport summarizes a full run. The run succeeds as a whole even when
// individual files or directories failed; inspect the counters to learn
// about partial failures.
type RunReport struct {
	RunID             uuid.UUID
	Directories       []DirectoryReport
	Artifacts         int
	Entries           int
	FileFailures      int
	DirectoryFailures int
	SkippedPlugins    []string
	Duration          time.Duration
}

func (r *RunReport) tally() {
	for _, dir := range r.Directories {
		r.FileFailures += len(dir.Failures)
		if dir.Failed() {
			r.DirectoryFailures++
			continue
		}
		r.Artifacts++
		r.Entries += dir.Entries
	}
}

// Summary renders a one line human readable description of the report.
func (r *RunReport) Summary() string {
	parts := []string{
		fmt.Sprintf("%d artifact(s)", r.Artifacts),
		fmt.Sprintf("%d icon(s)", r.Entries),
	}
	if r.FileFailures > 0 {
		parts = append(parts, fmt.Sprintf("%d file failure(s)", r.FileFailures))
	}
	if r.DirectoryFailures > 0 {
		parts = append(parts, fmt.Sprintf("%d directory failure(s)", r.DirectoryFailures))
	}
	return strings.Join(parts, ", ")
}
