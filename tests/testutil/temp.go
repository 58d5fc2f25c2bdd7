package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes content to dir/name and returns the path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

// WriteInputs writes a connection properties file and a manifest into a
// fresh temp dir and returns both paths
func WriteInputs(t *testing.T, connection, manifest string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	return WriteFile(t, dir, "connection.properties", connection),
		WriteFile(t, dir, "MANIFEST.MF", manifest)
}

// ConnectionProperties renders a properties file for url with fixed test credentials
func ConnectionProperties(url string) string {
	return "url=" + url + "\nusername=bob\npassword=secret\npolicy=default\n"
}
