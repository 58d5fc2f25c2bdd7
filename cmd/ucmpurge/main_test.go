package main

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/ucmpurge/internal/app"
	"github.com/quantmind-br/ucmpurge/internal/config"
	"github.com/quantmind-br/ucmpurge/internal/domain"
	"github.com/quantmind-br/ucmpurge/tests/testutil"
)

// isolateHome keeps config lookups away from the developer's home directory
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("UCMPURGE_LOGGING_LEVEL", "error")
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantUsage bool
	}{
		{name: "nil", err: nil, wantCode: 0},
		{name: "usage", err: domain.NewUsageError("Error: Incorrect number of parameters!"), wantCode: 2, wantUsage: true},
		{name: "file", err: domain.NewFileAccessError("x", domain.ErrEmptyFile), wantCode: 1},
		{name: "status", err: &domain.StatusError{DocID: "1", Status: "500", Attempted: 1}, wantCode: 1},
		{name: "other", err: errors.New("boom"), wantCode: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := reportError(tt.err, &buf)

			assert.Equal(t, tt.wantCode, code)
			if tt.err == nil {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.err.Error())
			if tt.wantUsage {
				assert.Contains(t, buf.String(), app.UsageLine)
			} else {
				assert.NotContains(t, buf.String(), "Usage:")
			}
		})
	}
}

func TestRun_UsageErrors(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", []string{}},
		{"two arguments", []string{"conn.properties", "MANIFEST.MF"}},
		{"non numeric doc id", []string{"conn.properties", "MANIFEST.MF", "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(rootCmd, tt.args)
			assert.True(t, domain.IsUsage(err))
		})
	}
}

func TestExecute_FlagErrorsAreUsageErrors(t *testing.T) {
	isolateHome(t)

	for _, args := range [][]string{
		{"--bogus", "conn.properties", "MANIFEST.MF", "42"},
		{"--timeout", "soon", "conn.properties", "MANIFEST.MF", "42"},
		{"doctor", "--bogus"},
	} {
		t.Run(args[0]+" "+args[1], func(t *testing.T) {
			rootCmd.SetArgs(args)
			defer rootCmd.SetArgs(nil)

			err := rootCmd.Execute()
			require.Error(t, err)
			assert.True(t, domain.IsUsage(err))

			var buf bytes.Buffer
			assert.Equal(t, domain.ExitUsage, reportError(err, &buf))
			assert.Contains(t, buf.String(), app.UsageLine)
		})
	}
}

func TestRun_AgainstFakeServer(t *testing.T) {
	isolateHome(t)

	server := testutil.NewFakeUCM(t)
	server.RequireCredentials("bob", "secret")
	connPath, manifestPath := testutil.WriteInputs(t,
		testutil.ConnectionProperties(server.URL),
		"HEADER\nfoo.csv;100001;\nbar.csv;100002;\n")

	err := run(rootCmd, []string{connPath, manifestPath, "999999"})

	require.NoError(t, err)
	assert.Equal(t, []string{"100001", "100002", "999999"}, server.DeletedIDs())
}

func TestRun_StatusFailureExitCode(t *testing.T) {
	isolateHome(t)

	server := testutil.NewFakeUCM(t)
	server.SetDeleteStatus("100002", http.StatusInternalServerError)
	connPath, manifestPath := testutil.WriteInputs(t,
		testutil.ConnectionProperties(server.URL),
		"HEADER\nfoo.csv;100001;\nbar.csv;100002;\n")

	err := run(rootCmd, []string{connPath, manifestPath, "999999"})

	require.Error(t, err)
	assert.Equal(t, domain.ExitFailure, domain.ExitCode(err))
	assert.Equal(t, []string{"100001", "100002"}, server.DeletedIDs())
}

func TestInitConfig_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfgFile = "~/custom.yaml"
	defer func() {
		cfgFile = ""
		viper.SetConfigFile("")
	}()

	initConfig()

	assert.Equal(t, filepath.Join(home, "custom.yaml"), viper.ConfigFileUsed())
}

func TestDoctorCmd(t *testing.T) {
	isolateHome(t)

	t.Run("without connection file", func(t *testing.T) {
		var out bytes.Buffer
		doctorCmd.SetOut(&out)
		defer doctorCmd.SetOut(nil)

		err := doctorCmd.RunE(doctorCmd, []string{})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "Config file: OK (defaults, "+config.ConfigFilePath()+" not found)")
		assert.Contains(t, out.String(), "Connection: SKIPPED")
	})

	t.Run("reachable server", func(t *testing.T) {
		server := testutil.NewFakeUCM(t)
		connPath := testutil.WriteFile(t, t.TempDir(), "conn.properties", testutil.ConnectionProperties(server.URL))

		var out bytes.Buffer
		doctorCmd.SetOut(&out)
		defer doctorCmd.SetOut(nil)

		err := doctorCmd.RunE(doctorCmd, []string{connPath})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "UCM connection: OK")
		assert.Contains(t, out.String(), "password=****")
		assert.NotContains(t, out.String(), "secret")
		assert.Equal(t, 1, server.PingCount())
	})

	t.Run("rejected credentials", func(t *testing.T) {
		server := testutil.NewFakeUCM(t)
		server.RequireCredentials("alice", "other")
		connPath := testutil.WriteFile(t, t.TempDir(), "conn.properties", testutil.ConnectionProperties(server.URL))

		var out bytes.Buffer
		doctorCmd.SetOut(&out)
		defer doctorCmd.SetOut(nil)

		err := doctorCmd.RunE(doctorCmd, []string{connPath})

		assert.Error(t, err)
		assert.Contains(t, out.String(), "UCM connection: FAILED")
		assert.Contains(t, out.String(), "Some checks failed")
	})

	t.Run("missing connection file", func(t *testing.T) {
		var out bytes.Buffer
		doctorCmd.SetOut(&out)
		defer doctorCmd.SetOut(nil)

		err := doctorCmd.RunE(doctorCmd, []string{filepath.Join(t.TempDir(), "missing.properties")})

		assert.Error(t, err)
		assert.Contains(t, out.String(), "Connection properties: FAILED")
		assert.NotContains(t, out.String(), "UCM connection")
	})
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, checkDir(dir))
	assert.False(t, checkDir(file))
	assert.False(t, checkDir(filepath.Join(dir, "missing")))
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, []string{})

	assert.Contains(t, out.String(), "ucmpurge")
}
