package lootbag

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/lootbag/internal/services/loot/app"
)

func newTestREPL(t *testing.T, locale string) (*repl, *bytes.Buffer) {
	t.Helper()

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := app.NewService(
		app.WithClock(func() time.Time { return clock }),
		app.WithIDGenerator(func() (string, error) { return "s1", nil }),
	)
	seed := uint64(11)
	view, err := svc.NewSession(context.Background(), app.SessionOptions{Seed: &seed, Locale: locale})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	var out bytes.Buffer
	r := newREPL(svc, view, &out)
	r.now = func() time.Time { return clock.Add(3 * time.Minute) }
	return r, &out
}

func runLines(t *testing.T, r *repl, out *bytes.Buffer, lines ...string) string {
	t.Helper()

	out.Reset()
	for _, line := range lines {
		if r.handle(context.Background(), line) {
			break
		}
	}
	return out.String()
}

func TestREPLComposesAndDraws(t *testing.T) {
	r, out := newTestREPL(t, "en-US")

	got := runLines(t, r, out, "set hide 9", "set axenut 2", "start")
	for _, want := range []string{"set to 9", "Configured size: 11", "only 7 are available", "Pool built with 9 tokens."} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}

	got = runLines(t, r, out, "draw", "draw", "draw")
	if !strings.Contains(got, "6 remaining") {
		t.Fatalf("output missing remaining count:\n%s", got)
	}

	got = runLines(t, r, out, "history")
	if !strings.Contains(got, "#1  3 minutes ago") {
		t.Fatalf("history output:\n%s", got)
	}
	got = runLines(t, r, out, "history size = 2")
	if !strings.Contains(got, "No draws yet.") {
		t.Fatalf("filtered history output:\n%s", got)
	}

	got = runLines(t, r, out, "reset", "size", "clear", "size")
	for _, want := range []string{"Session reset.", "Configured size: 11", "All counts cleared.", "Configured size: 0"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestREPLReportsUsageAndErrors(t *testing.T) {
	r, out := newTestREPL(t, "en-US")

	tests := []struct {
		line string
		want string
	}{
		{line: "set hide", want: "Usage: set <id> <n>"},
		{line: "set hide many", want: "Usage: set <id> <n>"},
		{line: "preset", want: "Usage: preset <name>"},
		{line: "draw 2", want: "Usage: draw"},
		{line: "draw", want: "Only 0 remaining."},
		{line: "fly", want: `Unknown command "fly"`},
		{line: "start", want: "Please add at least one token to the pool."},
		{line: "remaining", want: "Pool is empty"},
		{line: "totals", want: "Nothing gained yet."},
		{line: "help", want: "Commands:"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := runLines(t, r, out, tt.line)
			if !strings.Contains(got, tt.want) {
				t.Fatalf("%q output = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestREPLTotalsAndCatalog(t *testing.T) {
	r, out := newTestREPL(t, "en-US")

	runLines(t, r, out, "set money 9", "start")
	lines := []string{}
	for i := 0; i < 9; i++ {
		lines = append(lines, "draw")
	}
	got := runLines(t, r, out, append(lines, "totals")...)
	if !strings.Contains(got, "gold: 19") {
		t.Fatalf("totals output:\n%s", got)
	}

	got = runLines(t, r, out, "catalog")
	for _, want := range []string{"Money (random, max 9)", "presets: blank, sample"} {
		if !strings.Contains(got, want) {
			t.Fatalf("catalog output missing %q:\n%s", want, got)
		}
	}
}

func TestREPLUsesSessionLocale(t *testing.T) {
	r, out := newTestREPL(t, "pt-BR")

	got := runLines(t, r, out, "clear", "catalog")
	if !strings.Contains(got, "Todas as contagens foram zeradas.") {
		t.Fatalf("clear output:\n%s", got)
	}
	for _, want := range []string{"Dinheiro (aleatório, máx. 9)", "predefinições:"} {
		if !strings.Contains(got, want) {
			t.Fatalf("catalog output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "presets:") || strings.Contains(got, "max ") {
		t.Fatalf("catalog output has untranslated text:\n%s", got)
	}
}

func TestREPLRunStopsAtQuit(t *testing.T) {
	r, out := newTestREPL(t, "en-US")

	if err := r.run(context.Background(), strings.NewReader("size\nexit\nclear\n")); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(out.String(), "All counts cleared.") {
		t.Fatalf("command after exit ran:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "loot> ") {
		t.Fatalf("prompt missing:\n%s", out.String())
	}
}
