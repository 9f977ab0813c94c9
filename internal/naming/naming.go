// Package naming implements the identifier convention shared by collection
// keys, attribute names and artifact names: names are case-folded into lower
// camel case with delimiters removed.
package naming

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ettle/strcase"
)

// Key derives the collection key for a file or directory name. A trailing
// extension must be stripped by the caller.
func Key(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.NewReplacer(":", "-", ".", "-").Replace(name)
	return strcase.ToCamel(name)
}

// FileKey strips ext from the base name of filePath before applying Key.
func FileKey(filePath, ext string) string {
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	return Key(strings.TrimSuffix(base, ext))
}

// Attribute normalizes a markup attribute name, e.g. stroke-width becomes
// strokeWidth and xlink:href becomes xlinkHref.
func Attribute(name string) string {
	return Key(name)
}

// Identifier returns a declaration-safe identifier for name. Keys that would
// start with a digit are prefixed with an underscore.
func Identifier(name string) string {
	key := Key(name)
	if key == "" {
		return "_"
	}
	first, _ := utf8.DecodeRuneInString(key)
	if unicode.IsDigit(first) {
		return "_" + key
	}
	return key
}
