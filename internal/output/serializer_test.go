package output

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-svglist/internal/iconset"
	"github.com/spf13/afero"
)

func arrowsCollection() *iconset.Collection {
	vb := "0 0 24 24"
	d := "M1 1"
	c := iconset.NewCollection("arrows")
	c.Set("left", iconset.IconRecord{Viewbox: &vb, Shapes: []iconset.Shape{iconset.PathShape(&d)}})
	return c
}

const arrowsJSON = `{
  "left": {
    "viewbox": "0 0 24 24",
    "paths": ["M1 1"]
  }
}
`

func newTestSerializer(t *testing.T, format Format, opts ...Option) (*Serializer, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	writer := NewArtifactWriter(fs, nil)
	if err := writer.EnsureDir(context.Background(), "/out"); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	return NewSerializer(Config{DestRoot: "/out", Format: format}, writer, opts...), fs
}

func TestSerializeJSONForm(t *testing.T) {
	serializer, fs := newTestSerializer(t, FormatJSON)

	path, err := serializer.Serialize(context.Background(), "arrows", arrowsCollection())
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	if path != "/out/arrows.json" {
		t.Fatalf("unexpected path %s", path)
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != arrowsJSON {
		t.Fatalf("unexpected artifact\nwant: %s\ngot:  %s", arrowsJSON, data)
	}
}

func TestSerializeCodeFormWrapsCollection(t *testing.T) {
	serializer, fs := newTestSerializer(t, FormatCode, WithFormatter(PassThrough))

	path, err := serializer.Serialize(context.Background(), "arrow-icons", arrowsCollection())
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	if path != "/out/arrowIcons.js" {
		t.Fatalf("unexpected path %s", path)
	}
	data, _ := afero.ReadFile(fs, path)
	want := "const arrowIcons = " + strings.TrimRight(arrowsJSON, "\n") + ";\nexport default arrowIcons;\n"
	if string(data) != want {
		t.Fatalf("unexpected artifact\nwant: %s\ngot:  %s", want, data)
	}
}

func TestSerializeCodeFormWithDefaultFormatter(t *testing.T) {
	serializer, fs := newTestSerializer(t, FormatCode)

	path, err := serializer.Serialize(context.Background(), "arrow-icons", arrowsCollection())
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	data, _ := afero.ReadFile(fs, path)
	text := string(data)
	if !strings.HasPrefix(text, "const arrowIcons = {") {
		t.Fatalf("expected a single named binding, got:\n%s", text)
	}
	if !strings.HasSuffix(text, "export default arrowIcons;\n") {
		t.Fatalf("expected the binding to be exported as written, got:\n%s", text)
	}
	if strings.Contains(text, "stdin") || strings.Count(text, "export") != 1 {
		t.Fatalf("unexpected export rewrite:\n%s", text)
	}
	if !strings.Contains(text, `"M1 1"`) || !strings.Contains(text, `"0 0 24 24"`) {
		t.Fatalf("expected geometry to survive formatting:\n%s", text)
	}
}

func TestSerializeArtifactNameKeepsLeadingDigit(t *testing.T) {
	serializer, _ := newTestSerializer(t, FormatJSON)
	if got := serializer.Path("2d"); got != "/out/2d.json" {
		t.Fatalf("expected /out/2d.json, got %s", got)
	}

	code, _ := newTestSerializer(t, FormatCode, WithFormatter(PassThrough))
	if got := code.Path("2d-shapes"); got != "/out/2dShapes.js" {
		t.Fatalf("expected /out/2dShapes.js, got %s", got)
	}
	text, err := code.Render("2d-shapes", iconset.NewCollection("2d-shapes"))
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.HasPrefix(text, "const _2dShapes = {}") || !strings.HasSuffix(text, "export default _2dShapes;\n") {
		t.Fatalf("expected a prefixed identifier, got:\n%s", text)
	}
}

func TestSerializeEmptyCollection(t *testing.T) {
	serializer, fs := newTestSerializer(t, FormatJSON)

	path, err := serializer.Serialize(context.Background(), "empty", iconset.NewCollection("empty"))
	if err != nil {
		t.Fatalf("Serialize returned error: %v", err)
	}
	data, _ := afero.ReadFile(fs, path)
	if !json.Valid(data) || strings.TrimSpace(string(data)) != "{}" {
		t.Fatalf("expected empty object, got %q", data)
	}
}

func TestSerializeIsDeterministic(t *testing.T) {
	serializer, _ := newTestSerializer(t, FormatJSON)
	first, err := serializer.Render("arrows", arrowsCollection())
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	second, _ := serializer.Render("arrows", arrowsCollection())
	if first != second {
		t.Fatalf("expected identical renders:\n%s\n%s", first, second)
	}
}

func TestSerializeDoesNotCreateDestination(t *testing.T) {
	fs := afero.NewMemMapFs()
	serializer := NewSerializer(Config{DestRoot: "/missing", Format: FormatJSON}, NewArtifactWriter(fs, nil))

	_, err := serializer.Serialize(context.Background(), "arrows", arrowsCollection())
	if !errors.Is(err, ErrDestinationMissing) || !errors.Is(err, iconset.ErrArtifactWrite) {
		t.Fatalf("expected destination error, got %v", err)
	}
	if ok, _ := afero.Exists(fs, "/missing/arrows.json"); ok {
		t.Fatal("artifact should not have been written")
	}
}

func TestSerializeSurfacesFormatterErrors(t *testing.T) {
	failing := FormatterFunc(func(string) (string, error) { return "", ErrFormat })
	serializer, _ := newTestSerializer(t, FormatCode, WithFormatter(failing))

	_, err := serializer.Serialize(context.Background(), "arrows", arrowsCollection())
	if !errors.Is(err, ErrFormat) || errors.Is(err, iconset.ErrArtifactWrite) {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"json": FormatJSON, " JSON ": FormatJSON, "js": FormatCode, "": FormatCode}
	for input, want := range cases {
		if got := ParseFormat(input); got != want {
			t.Fatalf("ParseFormat(%q) = %s, want %s", input, got, want)
		}
	}
}
