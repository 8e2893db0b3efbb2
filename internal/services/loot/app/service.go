package app

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/lootbag/internal/core/random"
	apperrors "github.com/louisbranch/lootbag/internal/platform/errors"
	"github.com/louisbranch/lootbag/internal/platform/id"
	"github.com/louisbranch/lootbag/internal/services/loot/domain/bag"
	"github.com/louisbranch/lootbag/internal/services/loot/domain/catalog"
	looti18n "github.com/louisbranch/lootbag/internal/services/loot/i18n"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/lootbag/internal/services/loot/app"

// SessionOptions configures a new session.
type SessionOptions struct {
	// Seed replays a previous run when set.
	Seed *uint64
	// Preset is applied right after creation when set.
	Preset string
	// Locale overrides the service locale for this session.
	Locale string
}

// Service manages loot bag sessions.
type Service struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	locale   string
	sessions map[string]*session
	newID    func() (string, error)
	newSeed  func() (int64, error)
	now      func() time.Time
	tracer   trace.Tracer
}

type session struct {
	id         string
	seed       int64
	seedSource random.SeedSource
	localizer  *looti18n.Localizer
	bag        *bag.Bag
}

// Option configures a Service.
type Option func(*Service)

// WithCatalog replaces the built-in catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(s *Service) {
		if cat != nil {
			s.catalog = cat
		}
	}
}

// WithLocale sets the default locale for new sessions.
func WithLocale(locale string) Option {
	return func(s *Service) {
		s.locale = strings.TrimSpace(locale)
	}
}

// WithIDGenerator overrides session ID generation.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithSeedGenerator overrides server seed generation.
func WithSeedGenerator(fn func() (int64, error)) Option {
	return func(s *Service) {
		if fn != nil {
			s.newSeed = fn
		}
	}
}

// WithClock sets the clock used for draw timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTracerProvider sets the tracer provider. The global provider is used
// otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewService creates a Service.
func NewService(opts ...Option) *Service {
	s := &Service{
		catalog:  catalog.Default(),
		locale:   apperrors.DefaultLocale,
		sessions: make(map[string]*session),
		newID:    id.NewID,
		newSeed:  random.NewSeed,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// NewSession creates a session with a resolved seed and optional preset.
func (s *Service) NewSession(ctx context.Context, opts SessionOptions) (view SessionView, err error) {
	_, span := s.start(ctx, "loot.session_create")
	defer func() { end(span, err) }()

	seed, source, err := random.ResolveSeed(opts.Seed, s.newSeed)
	if err != nil {
		if opts.Seed != nil {
			return SessionView{}, apperrors.WrapWithMetadata(apperrors.CodeSeedOutOfRange, err.Error(), map[string]string{
				"Seed": strconv.FormatUint(*opts.Seed, 10),
			}, err)
		}
		return SessionView{}, apperrors.Wrap(apperrors.CodeUnknown, "generate seed", err)
	}

	var preset catalog.Preset
	if name := strings.TrimSpace(opts.Preset); name != "" {
		p, ok := s.catalog.Preset(name)
		if !ok {
			return SessionView{}, presetNotFound(name)
		}
		preset = p
	}

	sessionID, err := s.newID()
	if err != nil {
		return SessionView{}, apperrors.Wrap(apperrors.CodeUnknown, "generate session id", err)
	}

	locale := strings.TrimSpace(opts.Locale)
	if locale == "" {
		locale = s.locale
	}
	sess := &session{
		id:         sessionID,
		seed:       seed,
		seedSource: source,
		localizer:  looti18n.New(locale),
		bag:        bag.New(s.catalog, bag.WithSeed(seed), bag.WithClock(s.now)),
	}
	var ignored []string
	if preset.Name != "" {
		ignored = sess.bag.ApplyPreset(preset.Counts)
	}

	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()

	span.SetAttributes(
		attribute.String("loot.session_id", sessionID),
		attribute.Int64("loot.seed", seed),
		attribute.String("loot.seed_source", string(source)),
	)
	view = s.sessionView(sess)
	view.Ignored = ignored
	return view, nil
}

// Session returns the current view of a session.
func (s *Service) Session(ctx context.Context, sessionID string) (view SessionView, err error) {
	_, span := s.start(ctx, "loot.session_get", sessionAttr(sessionID))
	defer func() { end(span, err) }()

	err = s.with(sessionID, func(sess *session) error {
		view = s.sessionView(sess)
		return nil
	})
	return view, err
}

// CloseSession forgets a session.
func (s *Service) CloseSession(ctx context.Context, sessionID string) (err error) {
	_, span := s.start(ctx, "loot.session_close", sessionAttr(sessionID))
	defer func() { end(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return notFound(sessionID)
	}
	delete(s.sessions, sessionID)
	return nil
}

// SetCount sets a category count. Unknown categories are errors; negative
// counts are skipped and reported in Ignored.
func (s *Service) SetCount(ctx context.Context, sessionID, categoryID string, n int) (view SessionView, err error) {
	_, span := s.start(ctx, "loot.set_count",
		sessionAttr(sessionID),
		attribute.String("loot.category_id", categoryID),
		attribute.Int("loot.count", n),
	)
	defer func() { end(span, err) }()

	if _, ok := s.catalog.Category(categoryID); !ok {
		return SessionView{}, apperrors.WithMetadata(apperrors.CodeCategoryNotFound, "category not found: "+categoryID, map[string]string{
			"Category": categoryID,
		})
	}
	err = s.with(sessionID, func(sess *session) error {
		applied := sess.bag.SetCount(categoryID, n)
		view = s.sessionView(sess)
		if !applied {
			view.Ignored = []string{categoryID}
		}
		return nil
	})
	return view, err
}

// ApplyPreset replaces the composition with a named preset.
func (s *Service) ApplyPreset(ctx context.Context, sessionID, name string) (view SessionView, err error) {
	_, span := s.start(ctx, "loot.apply_preset", sessionAttr(sessionID), attribute.String("loot.preset", name))
	defer func() { end(span, err) }()

	preset, ok := s.catalog.Preset(strings.TrimSpace(name))
	if !ok {
		return SessionView{}, presetNotFound(name)
	}
	err = s.with(sessionID, func(sess *session) error {
		ignored := sess.bag.ApplyPreset(preset.Counts)
		view = s.sessionView(sess)
		view.Ignored = ignored
		return nil
	})
	return view, err
}

// ClearCounts zeroes every category count.
func (s *Service) ClearCounts(ctx context.Context, sessionID string) (view SessionView, err error) {
	_, span := s.start(ctx, "loot.clear", sessionAttr(sessionID))
	defer func() { end(span, err) }()

	err = s.with(sessionID, func(sess *session) error {
		sess.bag.ClearCounts()
		view = s.sessionView(sess)
		return nil
	})
	return view, err
}

// Build materializes the pool. An empty composition is refused.
func (s *Service) Build(ctx context.Context, sessionID string) (view BuildView, err error) {
	_, span := s.start(ctx, "loot.build", sessionAttr(sessionID))
	defer func() { end(span, err) }()

	err = s.with(sessionID, func(sess *session) error {
		if sess.bag.ConfiguredSize() == 0 {
			return apperrors.New(apperrors.CodeCompositionEmpty, "composition is empty")
		}
		result := sess.bag.Build()
		view = BuildView{SessionID: sess.id, Size: result.Size}
		for _, w := range result.Warnings {
			view.Warnings = append(view.Warnings, s.warningView(sess, w))
		}
		span.SetAttributes(
			attribute.Int("loot.pool_size", result.Size),
			attribute.Int("loot.warnings", len(result.Warnings)),
		)
		return nil
	})
	return view, err
}

// Draw removes n tokens from the pool.
func (s *Service) Draw(ctx context.Context, sessionID string, n int) (view DrawView, err error) {
	_, span := s.start(ctx, "loot.draw", sessionAttr(sessionID), attribute.Int("loot.requested", n))
	defer func() { end(span, err) }()

	err = s.with(sessionID, func(sess *session) error {
		drawn, err := sess.bag.Draw(n)
		if err != nil {
			return err
		}
		view = DrawView{
			SessionID: sess.id,
			Tokens:    s.tokenViews(sess, drawn),
			Remaining: sess.bag.PoolSize(),
		}
		span.SetAttributes(attribute.StringSlice("loot.drawn", drawn))
		return nil
	})
	return view, err
}

// Remaining reports the pool grouped by localized category label.
func (s *Service) Remaining(ctx context.Context, sessionID string) (view RemainingView, err error) {
	_, span := s.start(ctx, "loot.remaining", sessionAttr(sessionID))
	defer func() { end(span, err) }()

	err = s.with(sessionID, func(sess *session) error {
		view = s.remainingView(sess)
		return nil
	})
	return view, err
}

// Reset empties the pool and log and keeps the composition.
func (s *Service) Reset(ctx context.Context, sessionID string) (view SessionView, err error) {
	_, span := s.start(ctx, "loot.reset", sessionAttr(sessionID))
	defer func() { end(span, err) }()

	err = s.with(sessionID, func(sess *session) error {
		sess.bag.Reset()
		view = s.sessionView(sess)
		return nil
	})
	return view, err
}

// Catalog lists categories and presets for locale, or the service locale
// when blank.
func (s *Service) Catalog(locale string) CatalogView {
	if strings.TrimSpace(locale) == "" {
		locale = s.locale
	}
	l := looti18n.New(locale)
	view := CatalogView{Locale: l.Locale(), Presets: s.catalog.Presets()}
	for _, c := range s.catalog.Categories() {
		view.Categories = append(view.Categories, CountView{
			CategoryID: c.ID,
			Label:      l.CategoryLabel(c),
			Kind:       string(c.Kind),
			Max:        c.Max,
		})
	}
	return view
}

// Localize renders err for a session's locale, or the service locale when
// the session is unknown.
func (s *Service) Localize(sessionID string, err error) string {
	locale := s.locale
	s.mu.Lock()
	if sess, ok := s.sessions[sessionID]; ok {
		locale = sess.localizer.Locale()
	}
	s.mu.Unlock()
	return apperrors.Localize(err, locale)
}

// with runs fn on a session while holding the service lock.
func (s *Service) with(sessionID string, fn func(*session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return notFound(sessionID)
	}
	return fn(sess)
}

func (s *Service) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.GetCode(err)))
	}
	span.End()
}

func sessionAttr(sessionID string) attribute.KeyValue {
	return attribute.String("loot.session_id", sessionID)
}

func notFound(sessionID string) error {
	return apperrors.WithMetadata(apperrors.CodeNotFound, "session not found: "+sessionID, map[string]string{
		"Session": sessionID,
	})
}

func presetNotFound(name string) error {
	return apperrors.WithMetadata(apperrors.CodePresetNotFound, "preset not found: "+name, map[string]string{
		"Preset": name,
	})
}
