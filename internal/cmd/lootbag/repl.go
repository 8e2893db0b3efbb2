package lootbag

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/louisbranch/lootbag/internal/platform/branding"
	"github.com/louisbranch/lootbag/internal/services/loot/app"
	looti18n "github.com/louisbranch/lootbag/internal/services/loot/i18n"
)

// repl drives one session from line commands.
type repl struct {
	svc       *app.Service
	sessionID string
	text      *looti18n.Localizer
	out       io.Writer
	now       func() time.Time
}

func newREPL(svc *app.Service, view app.SessionView, out io.Writer) *repl {
	r := &repl{
		svc:       svc,
		sessionID: view.ID,
		text:      looti18n.New(view.Locale),
		out:       out,
		now:       time.Now,
	}
	r.printf("%s (seed %d)", branding.AppName, view.Seed)
	if view.ConfiguredSize > 0 {
		r.println(r.text.Text("configured", view.ConfiguredSize))
	}
	return r
}

// run reads commands until quit, end of input, or ctx is done.
func (r *repl) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, r.text.Text("prompt"))
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
		if quit := r.handle(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// handle executes one command line and reports whether the session should end.
func (r *repl) handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		r.println(r.text.Text("help"))
	case "catalog":
		r.catalog()
	case "set":
		r.set(ctx, args)
	case "preset":
		r.preset(ctx, args)
	case "clear":
		if _, err := r.svc.ClearCounts(ctx, r.sessionID); err != nil {
			r.fail(err)
			return false
		}
		r.println(r.text.Text("cleared"))
	case "size":
		view, err := r.svc.Session(ctx, r.sessionID)
		if err != nil {
			r.fail(err)
			return false
		}
		r.println(r.text.Text("configured", view.ConfiguredSize))
	case "start":
		r.start(ctx)
	case "draw":
		r.draw(ctx, args)
	case "remaining":
		r.remaining(ctx)
	case "history":
		r.history(ctx, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0])))
	case "totals":
		r.totals(ctx)
	case "reset":
		if _, err := r.svc.Reset(ctx, r.sessionID); err != nil {
			r.fail(err)
			return false
		}
		r.println(r.text.Text("reset"))
	default:
		r.println(r.text.Text("unknown_command", fields[0]))
	}
	return false
}

func (r *repl) catalog() {
	view := r.svc.Catalog(r.text.Locale())
	for _, c := range view.Categories {
		kind := r.text.Text("kind_" + c.Kind)
		if c.Max > 0 {
			r.println(r.text.Text("catalog_row_max", c.CategoryID, c.Label, kind, c.Max))
			continue
		}
		r.println(r.text.Text("catalog_row", c.CategoryID, c.Label, kind))
	}
	r.println(r.text.Text("catalog_presets", strings.Join(view.Presets, ", ")))
}

func (r *repl) set(ctx context.Context, args []string) {
	if len(args) != 2 {
		r.println(r.text.Text("usage", "set <id> <n>"))
		return
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		r.println(r.text.Text("usage", "set <id> <n>"))
		return
	}
	view, err := r.svc.SetCount(ctx, r.sessionID, args[0], n)
	if err != nil {
		r.fail(err)
		return
	}
	if len(view.Ignored) > 0 {
		r.println(r.text.Text("count_ignored", strings.Join(view.Ignored, ", ")))
		return
	}
	for _, row := range view.Composition {
		if row.CategoryID == args[0] {
			r.println(r.text.Text("count_set", row.Label, row.Count))
		}
	}
	r.println(r.text.Text("configured", view.ConfiguredSize))
}

func (r *repl) preset(ctx context.Context, args []string) {
	if len(args) != 1 {
		r.println(r.text.Text("usage", "preset <name>"))
		return
	}
	view, err := r.svc.ApplyPreset(ctx, r.sessionID, args[0])
	if err != nil {
		r.fail(err)
		return
	}
	r.println(r.text.Text("preset_applied", args[0]))
	if len(view.Ignored) > 0 {
		r.println(r.text.Text("count_ignored", strings.Join(view.Ignored, ", ")))
	}
	r.println(r.text.Text("configured", view.ConfiguredSize))
}

func (r *repl) start(ctx context.Context) {
	view, err := r.svc.Build(ctx, r.sessionID)
	if err != nil {
		r.fail(err)
		return
	}
	for _, w := range view.Warnings {
		r.println(w.Message)
	}
	r.println(r.text.Text("started", view.Size))
}

// draw takes one token per command.
func (r *repl) draw(ctx context.Context, args []string) {
	if len(args) > 0 {
		r.println(r.text.Text("usage", "draw"))
		return
	}
	view, err := r.svc.Draw(ctx, r.sessionID, 1)
	if err != nil {
		r.fail(err)
		return
	}
	labels := make([]string, 0, len(view.Tokens))
	for _, token := range view.Tokens {
		labels = append(labels, token.Label)
	}
	r.println(r.text.Text("drew", strings.Join(labels, ", ")))
	r.println(r.text.Text("remaining_total", view.Remaining))
}

func (r *repl) remaining(ctx context.Context) {
	view, err := r.svc.Remaining(ctx, r.sessionID)
	if err != nil {
		r.fail(err)
		return
	}
	if view.Total == 0 {
		r.println(r.text.Text("pool_empty"))
		return
	}
	for _, row := range view.Rows {
		if row.Count > 0 {
			r.printf("  %s: %d", row.Label, row.Count)
		}
	}
	r.println(r.text.Text("remaining_total", view.Total))
}

func (r *repl) history(ctx context.Context, filter string) {
	view, err := r.svc.History(ctx, r.sessionID, filter)
	if err != nil {
		r.fail(err)
		return
	}
	if len(view.Entries) == 0 {
		r.println(r.text.Text("no_draws"))
		return
	}
	now := r.now()
	for _, entry := range view.Entries {
		labels := make([]string, 0, len(entry.Tokens))
		for _, token := range entry.Tokens {
			labels = append(labels, token.Label)
		}
		r.printf("  #%d  %s  %s", entry.Seq, humanize.RelTime(entry.Timestamp, now, "ago", "from now"), strings.Join(labels, ", "))
	}
}

func (r *repl) totals(ctx context.Context) {
	view, err := r.svc.History(ctx, r.sessionID, "")
	if err != nil {
		r.fail(err)
		return
	}
	if len(view.Totals) == 0 {
		r.println(r.text.Text("no_totals"))
		return
	}
	keys := make([]string, 0, len(view.Totals))
	for key := range view.Totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		r.printf("  %s: %s", key, humanize.Comma(int64(view.Totals[key])))
	}
}

func (r *repl) fail(err error) {
	r.println(r.svc.Localize(r.sessionID, err))
}

func (r *repl) println(text string) {
	fmt.Fprintln(r.out, text)
}

func (r *repl) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}
