package utils

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/quantmind-br/ucmpurge/internal/domain"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CheckFile verifies that path is a readable, non-empty regular file.
// The returned error is a *domain.FileAccessError naming the failed check.
func CheckFile(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return domain.NewFileAccessError(path, domain.ErrNotAFile)
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.NewFileAccessError(path, domain.ErrNotReadable)
	}
	f.Close()

	if info.Size() == 0 {
		return domain.NewFileAccessError(path, domain.ErrEmptyFile)
	}

	return nil
}

// ReadTextFile reads the whole file and decodes it as UTF-8 text.
// A leading byte order mark is dropped; UTF-16 files with a BOM are converted.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", domain.NewFileAccessError(path, domain.ErrNotReadable)
	}
	return DecodeText(data)
}

// DecodeText converts raw file content to a string. Content that is neither
// valid UTF-8 nor marked by a BOM is decoded with the sniffed legacy charset.
func DecodeText(data []byte) (string, error) {
	enc, _, certain := charset.DetermineEncoding(data, "text/plain")
	if !certain && !utf8.Valid(data) {
		out, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EnsureDir ensures the parent directory of path exists
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}
