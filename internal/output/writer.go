package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/quantmind-br/ucmpurge/internal/utils"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedExt indicates a report path with an unknown extension
var ErrUnsupportedExt = errors.New("unsupported report extension (use .json, .yaml or .yml, optionally with .gz)")

const gzipExt = ".gz"

// Writer writes run reports to disk
type Writer struct {
	path string
}

// NewWriter creates a report writer for path. A leading ~ is expanded. The
// format follows the extension; a trailing .gz compresses the encoded report.
func NewWriter(path string) (*Writer, error) {
	path = utils.ExpandPath(path)
	if _, err := formatFor(path); err != nil {
		return nil, err
	}
	return &Writer{path: path}, nil
}

// Path returns the report destination
func (w *Writer) Path() string {
	return w.path
}

// Write encodes the report and replaces any existing file
func (w *Writer) Write(r *Report) error {
	data, err := Encode(r, w.path)
	if err != nil {
		return err
	}

	if isCompressed(w.path) {
		data, err = compress(data)
		if err != nil {
			return err
		}
	}

	if err := utils.EnsureDir(w.path); err != nil {
		return err
	}

	return os.WriteFile(w.path, data, 0644)
}

// Encode renders the report in the format implied by path's extension
func Encode(r *Report, path string) ([]byte, error) {
	format, err := formatFor(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case "yaml":
		return yaml.Marshal(r)
	default:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

func isCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), gzipExt)
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFor(path string) (string, error) {
	if isCompressed(path) {
		path = path[:len(path)-len(gzipExt)]
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedExt, ext)
	}
}
