package synthesis

import (
	"context"
	"log/slog"
	"time"

	"FeedbackInsights/internal/analytics"
	"FeedbackInsights/internal/domain"
	"FeedbackInsights/internal/ports"
)

// Options tune the synthesizer.
type Options struct {
	MaxTokens int
	Timeout   time.Duration
	Source    string
	// Required turns a missing summarizer into a hard failure instead of
	// the silent local fallback. Strict deployments only.
	Required bool
}

const (
	defaultMaxTokens = 800
	defaultTimeout   = 45 * time.Second
	defaultSource    = "summarizer"
)

// Synthesizer produces the summary, trends and recommendations for a
// report. With no summarizer configured it runs purely on the local rule
// table; with one configured it asks the external collaborator and falls
// back to the local results whenever the call or the parse fails.
type Synthesizer struct {
	summarizer ports.Summarizer
	logger     *slog.Logger
	opts       Options
}

// New builds a synthesizer. The summarizer may be nil (local mode); the
// logger may be nil.
func New(summarizer ports.Summarizer, logger *slog.Logger, opts Options) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Source == "" {
		opts.Source = defaultSource
	}
	return &Synthesizer{summarizer: summarizer, logger: logger, opts: opts}
}

// Input is the already-computed analysis a synthesis run starts from.
type Input struct {
	Items      []domain.FeedbackItem
	Keywords   []string
	Stats      domain.Stats
	Categories domain.CategoryBreakdown
}

// Result is one synthesis outcome. GeneratedBy truthfully records which
// path produced the content.
type Result struct {
	Summary         string
	Trends          []domain.Trend
	Recommendations []domain.Recommendation
	Categories      domain.CategoryBreakdown
	AIInsights      *domain.AIInsights
	GeneratedBy     domain.GeneratedBy
}

type aiResponse struct {
	Summary         string `json:"summary"`
	Recommendations []struct {
		Advice  string   `json:"advice"`
		Topics  []string `json:"topics"`
		Actions []string `json:"actions"`
	} `json:"recommendations"`
	Trends []struct {
		Label          string `json:"label"`
		Recommendation string `json:"recommendation"`
	} `json:"trends"`
	Categories struct {
		Scores       map[string]map[string]float64 `json:"scores"`
		Distribution map[string]int                `json:"distribution"`
	} `json:"categories"`
}

// Synthesize runs the local path and, when a summarizer is configured,
// layers the AI-provided content on top. AI failure never aborts the run:
// the local results survive and the outcome is marked degraded.
func (s *Synthesizer) Synthesize(ctx context.Context, in Input) (Result, error) {
	summary, trends, recs := Localize(in.Keywords, in.Stats)
	result := Result{
		Summary:         summary,
		Trends:          trends,
		Recommendations: recs,
		Categories:      in.Categories,
		GeneratedBy:     domain.GeneratedLocal,
	}

	if s.summarizer == nil {
		if s.opts.Required {
			return Result{}, domain.ErrSummarizerRequired
		}
		return result, nil
	}

	parsed, ok := s.invoke(ctx, in)
	if !ok {
		result.GeneratedBy = domain.GeneratedAIDegraded
		return result, nil
	}

	s.apply(&result, parsed)
	result.GeneratedBy = domain.GeneratedAI
	return result, nil
}

// invoke calls the external summarizer under its timeout and runs the parse
// cascade. Timeouts and transport errors are treated the same as unparsable
// output.
func (s *Synthesizer) invoke(ctx context.Context, in Input) (*aiResponse, bool) {
	callCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	prompt := BuildPrompt(in.Items, in.Keywords, in.Stats)
	raw, err := s.summarizer.Summarize(callCtx, prompt, ports.SummarizeOptions{MaxTokens: s.opts.MaxTokens})
	if err != nil {
		s.logger.Warn("summarizer call failed, keeping local synthesis", "error", err)
		return nil, false
	}

	var parsed aiResponse
	if err := recoverJSON(raw, &parsed); err != nil {
		s.logger.Warn("summarizer output unparsable, keeping local synthesis", "error", err)
		s.logger.Debug("raw summarizer output", "raw", raw)
		return nil, false
	}
	return &parsed, true
}

// apply overlays parsed AI content onto the local result. AI values take
// precedence; anything missing or invalid keeps the local value.
func (s *Synthesizer) apply(result *Result, parsed *aiResponse) {
	if parsed.Summary != "" {
		result.Summary = parsed.Summary
	}

	if len(parsed.Trends) > 0 {
		trends := make([]domain.Trend, 0, len(parsed.Trends))
		for _, t := range parsed.Trends {
			if t.Label == "" {
				continue
			}
			trends = append(trends, domain.Trend{Label: t.Label, Recommendation: t.Recommendation})
		}
		if len(trends) > 0 {
			result.Trends = trends
		}
	}

	if len(parsed.Recommendations) > 0 {
		var recs []domain.Recommendation
		for _, r := range parsed.Recommendations {
			if r.Advice == "" {
				continue
			}
			recs = MergeRecommendations(recs, domain.Recommendation{
				Advice:  r.Advice,
				Topics:  r.Topics,
				Actions: r.Actions,
			})
		}
		if len(recs) > 0 {
			result.Recommendations = recs
		}
	}

	s.applyScores(result, parsed.Categories.Scores)

	result.AIInsights = &domain.AIInsights{
		Source:          s.opts.Source,
		Recommendations: result.Recommendations,
	}
}

// applyScores accepts AI-provided category scores only for known keys and
// only after clamping to [0,10] and rounding to one decimal.
func (s *Synthesizer) applyScores(result *Result, scores map[string]map[string]float64) {
	if len(scores) == 0 {
		return
	}
	for _, cat := range domain.Categories {
		params, ok := scores[string(cat)]
		if !ok {
			continue
		}
		for _, param := range domain.Parameters {
			v, ok := params[string(param)]
			if !ok {
				continue
			}
			if v < 0 {
				v = 0
			}
			if v > 10 {
				v = 10
			}
			result.Categories.Scores[cat][param] = analytics.Round1(v)
		}
	}
}
