package app

import (
	"context"

	"github.com/louisbranch/lootbag/internal/services/loot/core/filter"
	"go.opentelemetry.io/otel/attribute"
)

// History returns draw log entries matching an AIP-160 filter, most recent
// first. Totals cover the whole log regardless of the filter.
func (s *Service) History(ctx context.Context, sessionID, filterStr string) (view HistoryView, err error) {
	_, span := s.start(ctx, "loot.history", sessionAttr(sessionID), attribute.String("loot.filter", filterStr))
	defer func() { end(span, err) }()

	pred, err := filter.Parse(filterStr)
	if err != nil {
		return HistoryView{}, err
	}

	err = s.with(sessionID, func(sess *session) error {
		entries := filter.Apply(s.catalog, sess.bag.Log(), pred)
		view = HistoryView{
			SessionID: sess.id,
			Entries:   make([]EntryView, 0, len(entries)),
			Totals:    sess.bag.DrawnTotals(),
		}
		for _, e := range entries {
			view.Entries = append(view.Entries, EntryView{
				Seq:       e.Seq,
				Timestamp: e.Timestamp,
				Tokens:    s.tokenViews(sess, e.Draws),
			})
		}
		span.SetAttributes(attribute.Int("loot.entries", len(entries)))
		return nil
	})
	return view, err
}
