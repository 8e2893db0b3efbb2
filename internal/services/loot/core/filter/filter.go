// Package filter provides AIP-160 filter expressions over draw log entries.
package filter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	apperrors "github.com/louisbranch/lootbag/internal/platform/errors"
	"github.com/louisbranch/lootbag/internal/services/loot/domain/bag"
	"github.com/louisbranch/lootbag/internal/services/loot/domain/catalog"
	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Field names accepted in filter expressions.
const (
	FieldToken     = "token"
	FieldCategory  = "category"
	FieldLabel     = "label"
	FieldSeq       = "seq"
	FieldSize      = "size"
	FieldTimestamp = "ts"
)

// LogDeclarations returns the field declarations for draw log filtering.
func LogDeclarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent(FieldToken, filtering.TypeString),
		filtering.DeclareIdent(FieldCategory, filtering.TypeString),
		filtering.DeclareIdent(FieldLabel, filtering.TypeString),
		filtering.DeclareIdent(FieldSeq, filtering.TypeInt),
		filtering.DeclareIdent(FieldSize, filtering.TypeInt),
		filtering.DeclareIdent(FieldTimestamp, filtering.TypeTimestamp),
	)
}

// Subject is the view of one draw log entry a filter evaluates.
type Subject struct {
	Seq        int64
	Size       int64
	Timestamp  time.Time
	Tokens     []string
	Categories []string
	Labels     []string
}

// SubjectFor resolves an entry's tokens to categories and labels. Tokens no
// category accounts for contribute only their template ID.
func SubjectFor(cat *catalog.Catalog, entry bag.LogEntry) Subject {
	s := Subject{
		Seq:       int64(entry.Seq),
		Size:      int64(len(entry.Draws)),
		Timestamp: entry.Timestamp,
		Tokens:    slices.Clone(entry.Draws),
	}
	for _, id := range entry.Draws {
		owner, ok := cat.OwnerOf(id)
		if !ok {
			continue
		}
		if !slices.Contains(s.Categories, owner.ID) {
			s.Categories = append(s.Categories, owner.ID)
		}
		if !slices.Contains(s.Labels, owner.Label) {
			s.Labels = append(s.Labels, owner.Label)
		}
	}
	return s
}

// Predicate reports whether a subject matches.
type Predicate func(Subject) bool

// MatchAll matches every subject.
func MatchAll(Subject) bool { return true }

// Parse compiles an AIP-160 filter expression. An empty expression matches
// everything. String fields match when any drawn token satisfies the
// comparison; != matches when none equals the value.
func Parse(filterStr string) (Predicate, error) {
	if strings.TrimSpace(filterStr) == "" {
		return MatchAll, nil
	}

	decls, err := LogDeclarations()
	if err != nil {
		return nil, fmt.Errorf("create declarations: %w", err)
	}

	filter, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return nil, invalid(err)
	}

	pred, err := translateExpr(filter.CheckedExpr.Expr)
	if err != nil {
		return nil, invalid(err)
	}
	return pred, nil
}

// Apply returns the entries whose subject matches pred, keeping order.
func Apply(cat *catalog.Catalog, entries []bag.LogEntry, pred Predicate) []bag.LogEntry {
	if pred == nil {
		pred = MatchAll
	}
	var out []bag.LogEntry
	for _, e := range entries {
		if pred(SubjectFor(cat, e)) {
			out = append(out, e)
		}
	}
	return out
}

func invalid(err error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeFilterInvalid, "parse filter: "+err.Error(), map[string]string{
		"Reason": err.Error(),
	}, err)
}

// translateExpr turns a checked expression into a predicate.
func translateExpr(e *expr.Expr) (Predicate, error) {
	if e == nil {
		return MatchAll, nil
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return translateCall(kind.CallExpr)
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

func translateCall(call *expr.Expr_Call) (Predicate, error) {
	switch call.Function {
	case "_&&_", "AND":
		return translateAnd(call.Args)
	case "_||_", "OR":
		return translateOr(call.Args)
	case "NOT":
		return translateNot(call.Args)
	case "_==_", "=":
		return translateComparison(call.Args, "=")
	case "_!=_", "!=":
		return translateComparison(call.Args, "!=")
	case "_<_", "<":
		return translateComparison(call.Args, "<")
	case "_<=_", "<=":
		return translateComparison(call.Args, "<=")
	case "_>_", ">":
		return translateComparison(call.Args, ">")
	case "_>=_", ">=":
		return translateComparison(call.Args, ">=")
	default:
		return nil, fmt.Errorf("unsupported function: %s", call.Function)
	}
}

func translateArgs(args []*expr.Expr, name string) ([]Predicate, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%s requires at least 2 arguments", name)
	}
	preds := make([]Predicate, 0, len(args))
	for _, arg := range args {
		p, err := translateExpr(arg)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

func translateAnd(args []*expr.Expr) (Predicate, error) {
	preds, err := translateArgs(args, "AND")
	if err != nil {
		return nil, err
	}
	return func(s Subject) bool {
		for _, p := range preds {
			if !p(s) {
				return false
			}
		}
		return true
	}, nil
}

func translateOr(args []*expr.Expr) (Predicate, error) {
	preds, err := translateArgs(args, "OR")
	if err != nil {
		return nil, err
	}
	return func(s Subject) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}, nil
}

func translateNot(args []*expr.Expr) (Predicate, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("NOT requires 1 argument")
	}
	inner, err := translateExpr(args[0])
	if err != nil {
		return nil, err
	}
	return func(s Subject) bool { return !inner(s) }, nil
}

func translateComparison(args []*expr.Expr, op string) (Predicate, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("comparison requires 2 arguments")
	}

	field, err := extractFieldName(args[0])
	if err != nil {
		return nil, err
	}

	value, err := extractValue(args[1])
	if err != nil {
		return nil, err
	}

	switch field {
	case FieldToken, FieldCategory, FieldLabel:
		want, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("field %s expects a string, got %T", field, value)
		}
		values := stringField(field)
		if op == "!=" {
			return func(s Subject) bool { return !slices.Contains(values(s), want) }, nil
		}
		return func(s Subject) bool {
			for _, got := range values(s) {
				if compare(strings.Compare(got, want), op) {
					return true
				}
			}
			return false
		}, nil
	case FieldSeq, FieldSize:
		want, ok := value.(int64)
		if !ok {
			return nil, fmt.Errorf("field %s expects an integer, got %T", field, value)
		}
		return func(s Subject) bool {
			got := s.Seq
			if field == FieldSize {
				got = s.Size
			}
			return compare(cmpInt(got, want), op)
		}, nil
	case FieldTimestamp:
		want, ok := value.(time.Time)
		if !ok {
			return nil, fmt.Errorf("field %s expects a timestamp, got %T", field, value)
		}
		return func(s Subject) bool {
			return compare(s.Timestamp.Compare(want), op)
		}, nil
	default:
		return nil, fmt.Errorf("unknown field: %s", field)
	}
}

func stringField(field string) func(Subject) []string {
	switch field {
	case FieldCategory:
		return func(s Subject) []string { return s.Categories }
	case FieldLabel:
		return func(s Subject) []string { return s.Labels }
	default:
		return func(s Subject) []string { return s.Tokens }
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compare applies op to the sign of a three-way comparison.
func compare(c int, op string) bool {
	switch op {
	case "=":
		return c == 0
	case "!=":
		return c != 0
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	default:
		return false
	}
}

func extractFieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		return kind.IdentExpr.Name, nil
	default:
		return "", fmt.Errorf("expected identifier, got %T", kind)
	}
}

func extractValue(e *expr.Expr) (any, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		return extractConstValue(kind.ConstExpr)
	case *expr.Expr_CallExpr:
		if kind.CallExpr.Function == "timestamp" && len(kind.CallExpr.Args) == 1 {
			return extractTimestampValue(kind.CallExpr.Args[0])
		}
		return nil, fmt.Errorf("unsupported function in value position: %s", kind.CallExpr.Function)
	default:
		return nil, fmt.Errorf("expected constant or timestamp, got %T", kind)
	}
}

func extractConstValue(c *expr.Constant) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("nil constant")
	}

	switch kind := c.ConstantKind.(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}

func extractTimestampValue(e *expr.Expr) (time.Time, error) {
	if e == nil {
		return time.Time{}, fmt.Errorf("nil timestamp argument")
	}

	kind, ok := e.ExprKind.(*expr.Expr_ConstExpr)
	if !ok {
		return time.Time{}, fmt.Errorf("timestamp argument must be a constant string")
	}
	strVal, ok := kind.ConstExpr.ConstantKind.(*expr.Constant_StringValue)
	if !ok {
		return time.Time{}, fmt.Errorf("timestamp argument must be a string")
	}
	t, err := time.Parse(time.RFC3339Nano, strVal.StringValue)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp format: %s", strVal.StringValue)
	}
	return t, nil
}
