// Package analysis runs the scoring loop, builds the per-dimension narrative
// and composes the executive summary for one assessment session.
package analysis

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/scorecard/internal/cache"
	"github.com/sells-group/scorecard/internal/model"
	"github.com/sells-group/scorecard/internal/narrative"
	"github.com/sells-group/scorecard/internal/registry"
	"github.com/sells-group/scorecard/internal/render"
	"github.com/sells-group/scorecard/internal/scoring"
	"github.com/sells-group/scorecard/internal/store"
)

var (
	// ErrInvalidRequest marks requests that cannot be analyzed.
	ErrInvalidRequest = eris.New("analysis: invalid request")
	// ErrNotFound marks an unknown session.
	ErrNotFound = eris.New("analysis: not found")
)

const (
	recommendationLimit = 5
	focusThreshold      = 70
)

// Service is safe for concurrent use. All per-request detail lives on the
// stack of Analyze.
type Service struct {
	registry      registry.Provider
	store         store.Store
	cache         cache.ReportCache
	renderTimeout time.Duration
	now           func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithStore enables history persistence.
func WithStore(st store.Store) Option {
	return func(s *Service) { s.store = st }
}

// WithCache enables the report cache.
func WithCache(c cache.ReportCache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithRenderTimeout bounds document rendering.
func WithRenderTimeout(d time.Duration) Option {
	return func(s *Service) { s.renderTimeout = d }
}

// WithClock overrides the result timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service over the given content provider.
func NewService(reg registry.Provider, opts ...Option) *Service {
	s := &Service{
		registry:      reg,
		cache:         cache.Nop{},
		renderTimeout: render.DefaultTimeout,
		now:           time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Subcomponent returns the content for id. When the registry has no
// dimensions for it, the agent defaults for its block are filled in and
// defaulted is true. An id outside the "<block>-<index>" form gets the
// generic defaults; only an empty id is rejected.
func (s *Service) Subcomponent(id string) (sub model.Subcomponent, defaulted bool, err error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Subcomponent{}, false, eris.Wrap(ErrInvalidRequest, "subcomponent_id is required")
	}
	block, _, ok := registry.ParseID(id)
	if !ok {
		zap.L().Warn("analysis: unrecognized subcomponent id, using generic defaults", zap.String("subcomponent", id))
	}

	sub, found := s.registry.Lookup(id)
	if !found {
		sub = model.Subcomponent{ID: id, Block: block}
	}
	if sub.Block == 0 {
		sub.Block = block
	}
	if len(sub.Dimensions) == 0 {
		sub.Dimensions = scoring.DefaultDimensions(block)
		defaulted = true
	}
	return sub, defaulted, nil
}

// Analyze scores req and returns the full result. Persistence and caching
// are best-effort; their failures are logged and never returned.
func (s *Service) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	if strings.TrimSpace(req.SubcomponentID) == "" {
		return nil, eris.Wrap(ErrInvalidRequest, "subcomponent_id is required")
	}
	log := zap.L().With(zap.String("subcomponent", req.SubcomponentID))

	sub, defaulted, err := s.Subcomponent(req.SubcomponentID)
	if err != nil {
		return nil, err
	}
	if defaulted {
		log.Warn("analysis: no dimensions configured, using agent defaults", zap.Int("block", sub.Block))
	}
	if len(sub.UseCases) == 0 {
		log.Warn("analysis: no use cases configured")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	scored := scoring.Score(uniqueDimensions(sub.Dimensions), req.Responses)

	dims := make([]model.DimensionScore, 0, len(scored.Dimensions))
	for _, d := range scored.Dimensions {
		n := narrative.BuildDimension(d.Input)
		signals := d.Input.Signals
		dims = append(dims, model.DimensionScore{
			Name:         d.Dimension.Name,
			Score:        d.Score,
			Weight:       d.Dimension.EffectiveWeight(),
			Band:         n.Band,
			Feedback:     n.Feedback,
			Strengths:    n.Strengths,
			Improvements: n.Improvements,
			Category:     n.Category,
			Evidence:     d.Input.Facts.Snippet,
			Signals:      &signals,
		})
	}

	result := &model.AnalysisResult{
		SubcomponentID:  sub.ID,
		SessionID:       sessionID,
		OverallScore:    scored.Overall,
		OverallBand:     narrative.OverallBand(scored.Overall),
		Dimensions:      dims,
		Strengths:       flattenStrengths(dims),
		Weaknesses:      flattenWeaknesses(dims),
		Recommendations: recommendations(dims),
		ExecutiveSummary: narrative.ComposeSummary(narrative.SummaryInput{
			Block:        sub.Block,
			OverallScore: scored.Overall,
			Dimensions:   dims,
			UseCases:     sub.UseCases,
		}),
		Timestamp: s.now().UTC(),
	}

	log.Info("analysis: scored",
		zap.String("session", sessionID),
		zap.Float64("overall", result.OverallScore),
		zap.String("band", result.OverallBand),
		zap.Int("dimensions", len(dims)),
	)

	s.persist(ctx, req.Responses, result)
	return result, nil
}

func (s *Service) persist(ctx context.Context, responses model.SurveyResponses, result *model.AnalysisResult) {
	fields := []zap.Field{
		zap.String("subcomponent", result.SubcomponentID),
		zap.String("session", result.SessionID),
	}
	if s.store != nil {
		rec := &model.HistoryRecord{
			SubcomponentID: result.SubcomponentID,
			SessionID:      result.SessionID,
			OverallScore:   result.OverallScore,
			Responses:      responses,
			Result:         result,
		}
		if err := s.store.SaveHistory(ctx, rec); err != nil {
			zap.L().Warn("analysis: save history failed", append(fields, zap.Error(err))...)
		}
	}
	if err := s.cache.Set(ctx, result); err != nil {
		zap.L().Warn("analysis: cache result failed", append(fields, zap.Error(err))...)
	}
}

// Get returns a previously computed result, trying the cache before the
// history store.
func (s *Service) Get(ctx context.Context, subcomponentID, sessionID string) (*model.AnalysisResult, error) {
	res, err := s.cache.Get(ctx, subcomponentID, sessionID)
	if err != nil {
		zap.L().Warn("analysis: cache read failed", zap.Error(err))
	}
	if res != nil {
		return res, nil
	}

	if s.store == nil {
		return nil, eris.Wrapf(ErrNotFound, "session %s/%s", subcomponentID, sessionID)
	}
	rec, err := s.store.GetHistory(ctx, subcomponentID, sessionID)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: load history")
	}
	if rec == nil || rec.Result == nil {
		return nil, eris.Wrapf(ErrNotFound, "session %s/%s", subcomponentID, sessionID)
	}

	if err := s.cache.Set(ctx, rec.Result); err != nil {
		zap.L().Warn("analysis: cache result failed", zap.Error(err))
	}
	return rec.Result, nil
}

// History lists stored records, newest first.
func (s *Service) History(ctx context.Context, filter store.HistoryFilter) ([]model.HistoryRecord, error) {
	if s.store == nil {
		return nil, nil
	}
	recs, err := s.store.ListHistory(ctx, filter)
	return recs, eris.Wrap(err, "analysis: list history")
}

// Document is a rendered report.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Report renders a stored session in format. Rendering is bounded by the
// service's render timeout and yields render.ErrTimeout when it runs over.
func (s *Service) Report(ctx context.Context, subcomponentID, sessionID, format string) (*Document, error) {
	r, err := render.New(format)
	if err != nil {
		return nil, eris.Wrap(ErrInvalidRequest, err.Error())
	}
	res, err := s.Get(ctx, subcomponentID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.RenderResult(ctx, r, res)
}

// RenderResult renders an in-memory result.
func (s *Service) RenderResult(ctx context.Context, r render.Renderer, res *model.AnalysisResult) (*Document, error) {
	var buf bytes.Buffer
	if err := render.Render(ctx, r, res, &buf, s.renderTimeout); err != nil {
		return nil, err
	}
	return &Document{
		Filename:    "scorecard-" + res.SubcomponentID + "-" + res.SessionID + r.Extension(),
		ContentType: r.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// uniqueDimensions drops repeated names, keeping the first.
func uniqueDimensions(dims []model.Dimension) []model.Dimension {
	seen := make(map[string]bool, len(dims))
	out := make([]model.Dimension, 0, len(dims))
	for _, d := range dims {
		key := strings.ToLower(strings.TrimSpace(d.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}

func flattenStrengths(dims []model.DimensionScore) []string {
	var out []string
	for _, d := range dims {
		for _, s := range d.Strengths {
			out = append(out, d.Name+": "+s)
		}
	}
	return out
}

// flattenWeaknesses states the main gap of every dimension below the focus
// threshold.
func flattenWeaknesses(dims []model.DimensionScore) []string {
	var out []string
	for _, d := range dims {
		if d.Score >= focusThreshold || len(d.Improvements) == 0 {
			continue
		}
		out = append(out, d.Name+": "+narrative.Symptom(d.Improvements[0], d.Name))
	}
	return out
}

// recommendations takes the first improvement of each dimension, weakest
// first, then fills with the rest.
func recommendations(dims []model.DimensionScore) []string {
	ordered := make([]model.DimensionScore, len(dims))
	copy(ordered, dims)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Score < ordered[j].Score })

	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		k := strings.ToLower(s)
		if s == "" || seen[k] || len(out) >= recommendationLimit {
			return
		}
		seen[k] = true
		out = append(out, s)
	}
	for round := 0; len(out) < recommendationLimit; round++ {
		more := false
		for _, d := range ordered {
			if round < len(d.Improvements) {
				add(d.Improvements[round])
				more = true
			}
		}
		if !more {
			break
		}
	}
	return out
}
