package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// ErrFormat is returned when the formatting pass rejects generated code.
var ErrFormat = errors.New("output: format failed")

// Formatter is a text in, text out pass over generated code.
type Formatter interface {
	Format(source string) (string, error)
}

// FormatterFunc adapts a function to Formatter.
type FormatterFunc func(source string) (string, error)

func (f FormatterFunc) Format(source string) (string, error) {
	return f(source)
}

// PassThrough returns source unchanged.
var PassThrough Formatter = FormatterFunc(func(source string) (string, error) {
	return source, nil
})

// EsbuildFormatter reprints JavaScript modules with esbuild. No output
// format is requested, so import and export statements keep their written
// form.
type EsbuildFormatter struct{}

// NewEsbuildFormatter returns the default code formatter.
func NewEsbuildFormatter() *EsbuildFormatter {
	return &EsbuildFormatter{}
}

func (EsbuildFormatter) Format(source string) (string, error) {
	result := api.Transform(source, api.TransformOptions{
		Loader:        api.LoaderJS,
		Charset:       api.CharsetUTF8,
		LegalComments: api.LegalCommentsNone,
	})
	if len(result.Errors) > 0 {
		messages := make([]string, 0, len(result.Errors))
		for _, msg := range result.Errors {
			messages = append(messages, msg.Text)
		}
		return "", fmt.Errorf("%w: %s", ErrFormat, strings.Join(messages, "; "))
	}
	return string(result.Code), nil
}
