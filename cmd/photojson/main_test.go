package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"photojson/internal/catalog"
	"photojson/internal/document"
)

func decodeImages(t *testing.T, data []byte) []catalog.Image {
	t.Helper()
	var images []catalog.Image
	if err := json.Unmarshal(data, &images); err != nil {
		t.Fatalf("decode document: %v\n%s", err, data)
	}
	return images
}

func TestGenerateWritesDocumentToStdout(t *testing.T) {
	env := setupCLITestEnv(t)

	out, stderr, err := runCLI(t, []string{"generate", env.root}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v (stderr: %s)", err, stderr)
	}
	images := decodeImages(t, []byte(out))
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %+v", images)
	}
	if images[0].FileName != "a.png" || images[0].Kind != catalog.KindPNG {
		t.Fatalf("unexpected first image %+v", images[0])
	}
	if images[1].FileName != "b.jpeg" || images[1].Kind != catalog.KindJPEG {
		t.Fatalf("unexpected second image %+v", images[1])
	}
	if images[0].Path != filepath.Join(env.root, "a.png") {
		t.Fatalf("expected absolute path, got %q", images[0].Path)
	}
	if images[0].Width != 30 || images[0].Height != 10 || len(images[0].Colors) != 3 {
		t.Fatalf("unexpected metadata %+v", images[0])
	}
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected compact single-line output, got %q", out)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	env := setupCLITestEnv(t)

	first, _, err := runCLI(t, []string{"generate", env.root}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, _, err := runCLI(t, []string{"generate", env.root, "--workers", "4"}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first != second {
		t.Fatalf("outputs differ:\n%s\n%s", first, second)
	}
}

func TestGenerateToDirectoryWithPretty(t *testing.T) {
	env := setupCLITestEnv(t)
	outDir := filepath.Join(env.baseDir, "out")
	if err := os.Mkdir(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, []string{"generate", "--pretty", env.root, outDir}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != "" {
		t.Fatalf("expected nothing on stdout, got %q", out)
	}
	data, err := os.ReadFile(filepath.Join(outDir, document.DefaultFileName))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "[\n  {") {
		t.Fatalf("expected indented document, got %s", data)
	}
	if len(decodeImages(t, data)) != 2 {
		t.Fatalf("expected 2 images in %s", data)
	}
}

func TestGenerateRejectsInvalidDestination(t *testing.T) {
	env := setupCLITestEnv(t)
	dest := filepath.Join(env.baseDir, "catalog.txt")

	out, _, err := runCLI(t, []string{"generate", env.root, dest}, env.configPath)
	if !errors.Is(err, document.ErrInvalidDestination) {
		t.Fatalf("expected ErrInvalidDestination, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no document, got %q", out)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Fatalf("expected no file at %s", dest)
	}
	if _, statErr := os.Stat(env.logPath); !os.IsNotExist(statErr) {
		t.Fatal("expected the run to stop before logging started")
	}
}

func TestGenerateFlagsOverrideConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	dest := filepath.Join(env.baseDir, "single.JSON")

	_, _, err := runCLI(t, []string{"generate", "-n", "1", "--method", "Median-Cut", "--quality", "1", env.root, dest}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, img := range decodeImages(t, data) {
		if len(img.Colors) != 1 {
			t.Fatalf("expected one color for %s, got %v", img.FileName, img.Colors)
		}
	}
}

func TestGenerateRejectsBadOptions(t *testing.T) {
	env := setupCLITestEnv(t)
	for _, args := range [][]string{
		{"generate", env.root, "--colors", "0"},
		{"generate", env.root, "--colors", "256"},
		{"generate", env.root, "--method", "octree"},
		{"generate", env.root, "--workers", "-1"},
		{"generate", env.root, "--verbose", "--quiet"},
		{"generate"},
	} {
		if _, _, err := runCLI(t, args, env.configPath); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestGenerateEmptyTree(t *testing.T) {
	env := setupCLITestEnv(t)
	empty := filepath.Join(env.baseDir, "empty")
	if err := os.Mkdir(empty, 0o755); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, []string{"generate", empty}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out != "[]\n" {
		t.Fatalf("expected empty array, got %q", out)
	}
}

func TestGenerateSummaryAndVerboseLogging(t *testing.T) {
	env := setupCLITestEnv(t)

	_, stderr, err := runCLI(t, []string{"generate", "--summary", "--verbose", env.root}, env.configPath)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	requireContains(t, stderr, "Cataloged")
	requireContains(t, stderr, "Decode Failure")
	requireContains(t, stderr, "Unsupported Extension")

	var skipped []string
	var runIDs = map[string]bool{}
	for _, line := range strings.Split(strings.TrimSpace(readLog(t, env.logPath)), "\n") {
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		if id, ok := record["run_id"].(string); ok {
			runIDs[id] = true
		}
		if record["msg"] == "entry skipped" {
			skipped = append(skipped, record["path"].(string))
		}
	}
	if len(runIDs) != 1 {
		t.Fatalf("expected a single run id across log lines, got %v", runIDs)
	}
	want := []string{
		env.root,
		filepath.Join(env.root, "nested"),
		filepath.Join(env.root, "nested", "broken.png"),
		filepath.Join(env.root, "notes.md"),
	}
	if !reflect.DeepEqual(skipped, want) {
		t.Fatalf("skipped = %v, want %v", skipped, want)
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check", env.root, env.baseDir}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "Catalog root")
	requireContains(t, out, document.DefaultFileName)

	out, _, err = runCLI(t, []string{"check", filepath.Join(env.baseDir, "missing")}, env.configPath)
	if err == nil {
		t.Fatal("expected failure for missing root")
	}
	requireContains(t, out, "does not exist")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "median_cut")

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
	if _, _, err := runCLI(t, []string{"config", "validate"}, target); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}

func TestGenerateHelpNamesStableMethod(t *testing.T) {
	out, _, err := runCLI(t, []string{"generate", "--help"}, "")
	if err != nil {
		t.Fatalf("generate --help: %v", err)
	}
	requireContains(t, out, "only median_cut output is stable across runs")
}
