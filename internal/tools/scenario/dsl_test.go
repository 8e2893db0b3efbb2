package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadScenarioBuildsSteps(t *testing.T) {
	path := writeScenarioFixture(t, `-- Setup
local s = Scenario.new("steps")
s:seed(42)
s:preset("sample")
s:set("money", 4)
s:build{expect_warnings = 0}
s:draw()
s:draw(3)
s:expect_error("DRAW_INSUFFICIENT_SUPPLY")
s:draw_all()
s:expect_remaining{total = 3, Money = 1}
return s
`)

	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "steps" {
		t.Fatalf("name = %q", scenario.Name)
	}
	kinds := make([]string, 0, len(scenario.Steps))
	for _, step := range scenario.Steps {
		kinds = append(kinds, step.Kind)
	}
	want := "seed,preset,set,build,draw,draw,expect_error,draw_all,expect_remaining"
	if got := strings.Join(kinds, ","); got != want {
		t.Fatalf("kinds = %s, want %s", got, want)
	}

	if v := scenario.Steps[0].Args["value"]; v != uint64(42) {
		t.Fatalf("seed = %v", v)
	}
	if v := scenario.Steps[2].Args["category"]; v != "money" {
		t.Fatalf("category = %v", v)
	}
	if v := scenario.Steps[2].Args["count"]; v != 4 {
		t.Fatalf("count = %v", v)
	}
	if v := scenario.Steps[3].Args["expect_warnings"]; v != 0 {
		t.Fatalf("expect_warnings = %v", v)
	}
	if v := scenario.Steps[4].Args["count"]; v != 1 {
		t.Fatalf("default draw count = %v", v)
	}
	if v := scenario.Steps[5].Args["count"]; v != 3 {
		t.Fatalf("draw count = %v", v)
	}
	if v := scenario.Steps[6].Args["code"]; v != "DRAW_INSUFFICIENT_SUPPLY" {
		t.Fatalf("code = %v", v)
	}
	remaining := scenario.Steps[8].Args
	if remaining["total"] != 3 || remaining["Money"] != 1 {
		t.Fatalf("expect_remaining = %v", remaining)
	}
}

func TestLoadScenarioSeedKeepsFullPrecision(t *testing.T) {
	scenario, err := LoadScenarioFromString(`local s = Scenario.new("big")
s:seed("18446744073709551615")
s:seed(9007199254740992)
return s`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if v := scenario.Steps[0].Args["value"]; v != uint64(18446744073709551615) {
		t.Fatalf("string seed = %v", v)
	}
	if v := scenario.Steps[1].Args["value"]; v != uint64(1<<53) {
		t.Fatalf("number seed = %v", v)
	}
}

func TestLoadScenarioDefaultsNameToFile(t *testing.T) {
	path := writeScenarioFixture(t, `return Scenario.new()`)
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	if scenario.Name != "scenario" {
		t.Fatalf("name = %q, want scenario", scenario.Name)
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "no return", source: `local s = Scenario.new("x")`, want: "must return Scenario"},
		{name: "wrong return", source: `return 5`, want: "must return Scenario"},
		{name: "negative seed", source: `local s = Scenario.new("x") s:seed(-1) return s`, want: "seed must be non-negative"},
		{name: "fractional seed", source: `local s = Scenario.new("x") s:seed(1.5) return s`, want: "seed must be an integer"},
		{name: "inexact seed", source: `local s = Scenario.new("x") s:seed(2^53 + 2) return s`, want: "must be passed as a string"},
		{name: "bad seed string", source: `local s = Scenario.new("x") s:seed("-3") return s`, want: "must be a non-negative integer"},
		{name: "history count", source: `local s = Scenario.new("x") s:expect_history{filter = "seq = 1"} return s`, want: "count is required"},
		{name: "empty error code", source: `local s = Scenario.new("x") s:expect_error("  ") return s`, want: "error code is required"},
		{name: "syntax", source: `local s = `, want: "load lua"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenarioFromString(tt.source)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestLoadScenarioMissingFile(t *testing.T) {
	if _, err := LoadScenarioFromFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNormalizeNumber(t *testing.T) {
	if got := normalizeNumber(3); got != 3 {
		t.Fatalf("normalizeNumber(3) = %#v", got)
	}
	if got := normalizeNumber(2.5); got != 2.5 {
		t.Fatalf("normalizeNumber(2.5) = %#v", got)
	}
}

func writeScenarioFixture(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.lua")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}
