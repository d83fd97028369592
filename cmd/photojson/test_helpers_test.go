package main

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photojson/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	logPath    string
	root       string
}

// setupCLITestEnv isolates HOME, writes a config that logs to a temp file,
// and lays out a small image tree with one corrupt file.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("PHOTOJSON_LOG_LEVEL", "")

	logPath := filepath.Join(base, "logs", "photojson.log")
	configPath := filepath.Join(base, "config.toml")
	contents := fmt.Sprintf("[logging]\nformat = \"json\"\nfile = %q\n", logPath)
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	root := filepath.Join(base, "photos")
	red := color.NRGBA{R: 200, A: 255}
	green := color.NRGBA{G: 200, A: 255}
	blue := color.NRGBA{B: 200, A: 255}
	testsupport.WritePNG(t, filepath.Join(root, "a.png"), testsupport.Bands(30, 10, red, green, blue))
	testsupport.WriteJPEG(t, filepath.Join(root, "nested", "b.jpeg"), testsupport.Bands(20, 20, blue, red))
	testsupport.WriteFile(t, filepath.Join(root, "nested", "broken.png"), 32)
	testsupport.WriteFile(t, filepath.Join(root, "notes.md"), 8)

	return &cliTestEnv{baseDir: base, configPath: configPath, logPath: logPath, root: root}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q in output:\n%s", needle, haystack)
	}
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}
