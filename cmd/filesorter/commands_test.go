package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClassifyCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"classify", ".JPG", "pdf", "archive.tar.gz", ".xls", "notes."}, "")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	for _, want := range []string{
		".jpg: Images",
		".pdf: Documents",
		".gz: Archives",
		".xls: Documents (also listed under Spreadsheets)",
		"notes.: no extension (skipped)",
	} {
		requireContains(t, out, want)
	}
}

func TestCategoriesCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"categories"}, "")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	for _, want := range []string{"Documents", "Database", "Others", ".woff2"} {
		requireContains(t, out, want)
	}
	if strings.Index(out, "Documents") > strings.Index(out, "Spreadsheets") {
		t.Fatal("expected table order to be preserved")
	}
}

func TestCategoriesCommandJSON(t *testing.T) {
	out, _, err := runCLI(t, []string{"categories", "--json"}, "")
	if err != nil {
		t.Fatalf("categories --json: %v", err)
	}
	var view categoriesView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode categories: %v\n%s", err, out)
	}
	if view.Fallback != "Others" {
		t.Fatalf("expected Others fallback, got %q", view.Fallback)
	}
	if len(view.Categories) == 0 || view.Categories[0].Name != "Documents" {
		t.Fatalf("expected Documents first, got %+v", view.Categories)
	}
}

func TestRenderTablePadsRowsAndFooter(t *testing.T) {
	if got := renderTable(nil, [][]string{{"x"}}, nil); got != "" {
		t.Fatalf("expected empty output without columns, got %q", got)
	}

	out := renderTable(doctorColumns, [][]string{{"source", "ok"}, {"dest", "FAIL", "missing", "extra"}}, nil)
	for _, want := range []string{"CHECK", "source", "missing"} {
		requireContains(t, out, want)
	}
	if strings.Contains(out, "extra") {
		t.Fatalf("expected cells beyond the last column to be dropped:\n%s", out)
	}

	out = renderTable(historyColumns, nil, []string{"2 runs", "", "", "5"})
	requireContains(t, out, "2 RUNS")
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite without --overwrite")
	}

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "collision_policy")
	requireContains(t, out, "overwrite")
	requireContains(t, out, env.configPath)

	out, _, err = runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestInvalidLogLevelFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--config", env.configPath, "--log-level", "loud", "config", "show"})
	cmd.SetOut(&strings.Builder{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected invalid log level to be rejected")
	}
}

func TestNormalizeExtension(t *testing.T) {
	cases := map[string]string{
		".JPG":           ".jpg",
		"png":            ".png",
		"photo.HEIC":     ".heic",
		"archive.tar.gz": ".gz",
		".":              "",
		"notes.":         "",
		".bashrc":        ".bashrc",
	}
	for input, want := range cases {
		if got := normalizeExtension(input); got != want {
			t.Fatalf("normalizeExtension(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestProgressLineDrawsCounts(t *testing.T) {
	var out bytes.Buffer
	line := &progressLine{out: &out}
	line.Update(0, 0)
	if out.Len() != 0 || line.bar != nil {
		t.Fatalf("expected nothing drawn for an empty run, got %q", out.String())
	}

	line.Update(1, 3)
	line.Update(3, 3)
	line.Finish()
	requireContains(t, out.String(), "Organizing")
	requireContains(t, out.String(), "3/3")
	if !line.bar.IsFinished() {
		t.Fatal("expected bar finished")
	}
}

func TestProgressLineNilAndNonTerminal(t *testing.T) {
	var nilLine *progressLine
	nilLine.Update(1, 2)
	nilLine.Finish()

	if line := newProgressLine(&bytes.Buffer{}); line != nil {
		t.Fatal("expected no progress line for a non-terminal writer")
	}
}
