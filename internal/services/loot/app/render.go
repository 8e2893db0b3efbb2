package app

import (
	apperrors "github.com/louisbranch/lootbag/internal/platform/errors"
	"github.com/louisbranch/lootbag/internal/services/loot/domain/bag"
)

func (s *Service) sessionView(sess *session) SessionView {
	view := SessionView{
		ID:             sess.id,
		Seed:           sess.seed,
		SeedSource:     string(sess.seedSource),
		Locale:         sess.localizer.Locale(),
		ConfiguredSize: sess.bag.ConfiguredSize(),
		PoolSize:       sess.bag.PoolSize(),
	}
	for _, c := range s.catalog.Categories() {
		view.Composition = append(view.Composition, CountView{
			CategoryID: c.ID,
			Label:      sess.localizer.CategoryLabel(c),
			Kind:       string(c.Kind),
			Count:      sess.bag.Count(c.ID),
			Max:        c.Max,
		})
	}
	return view
}

func (s *Service) warningView(sess *session, w bag.Shortfall) WarningView {
	if c, ok := s.catalog.Category(w.CategoryID); ok {
		w.Label = sess.localizer.CategoryLabel(c)
	}
	return WarningView{
		CategoryID: w.CategoryID,
		Requested:  w.Requested,
		Available:  w.Available,
		Message:    apperrors.Localize(w.Err(), sess.localizer.Locale()),
	}
}

func (s *Service) tokenViews(sess *session, ids []string) []TokenView {
	labels := sess.localizer.TokenLabels(s.catalog, ids)
	out := make([]TokenView, len(ids))
	for i, id := range ids {
		out[i] = TokenView{ID: id, Label: labels[i]}
	}
	return out
}

func (s *Service) remainingView(sess *session) RemainingView {
	tally := sess.bag.RemainingCounts()
	view := RemainingView{SessionID: sess.id, Total: tally.Total()}
	for _, row := range tally {
		label := row.Label
		if c, ok := s.catalog.Category(row.CategoryID); ok {
			label = sess.localizer.CategoryLabel(c)
		}
		view.Rows = append(view.Rows, RemainingRow{
			CategoryID: row.CategoryID,
			Label:      label,
			Count:      row.Count,
			Fallback:   row.Fallback,
		})
	}
	return view
}
