// Package output writes analysis results to disk or a stream.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goliatone/go-slug"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/cwbudde/algo-neuro/internal/pipeline"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ErrUnknownFormat is returned for unsupported formats.
var ErrUnknownFormat = errors.New("output: unknown format")

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatMsgpack:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Ext returns the file extension of f, including the dot.
func (f Format) Ext() string {
	if f == FormatMsgpack {
		return ".msgpack"
	}
	return ".json"
}

// Encode writes v to w in format f. Struct fields use their json names in
// both encodings.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// FileName returns the slugged file name for result r.
func FileName(r pipeline.Result, f Format) string {
	name := r.Session + "-" + r.Analysis
	s, err := slug.Normalize(name)
	if err != nil || s == "" {
		s = "result"
	}
	return s + f.Ext()
}

// WriteDir writes every result to its own file in dir, creating dir if
// needed, and returns the written paths.
func WriteDir(dir string, f Format, results []pipeline.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	paths := make([]string, 0, len(results))
	seen := make(map[string]int, len(results))
	for _, r := range results {
		name := FileName(r, f)
		if n := seen[name]; n > 0 {
			name = fmt.Sprintf("%s-%d%s", name[:len(name)-len(f.Ext())], n+1, f.Ext())
		}
		seen[FileName(r, f)]++

		path := filepath.Join(dir, name)
		if err := writeFile(path, f, r); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, f Format, v any) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("output: %w", cerr)
		}
	}()
	if err := Encode(file, f, v); err != nil {
		return fmt.Errorf("output: encode %s: %w", filepath.Base(path), err)
	}
	return nil
}
