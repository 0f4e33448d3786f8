package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"FeedbackInsights/internal/domain"
	"FeedbackInsights/internal/usecase"
)

// Server is the thin trigger surface over the report use case: analyze now,
// explore topics, read the latest report, read raw stats. Authorization and
// the rest of the platform API live in the gateway service, not here.
type Server struct {
	reports *usecase.ReportService
	logger  *slog.Logger
}

// NewServer wires the HTTP handlers; the logger may be nil.
func NewServer(reports *usecase.ReportService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{reports: reports, logger: logger}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/ai/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/ai/topics", s.handleTopics)
	mux.HandleFunc("GET /api/ai/reports/latest", s.handleLatestReport)
	mux.HandleFunc("GET /api/ai/stats", s.handleStats)
	return mux
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type analyzeRequest struct {
	BusinessID string `json:"businessId"`
	Timeframe  string `json:"timeframe"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, envelope{Message: "invalid request body"})
		return
	}
	if req.BusinessID == "" {
		writeJSON(w, http.StatusBadRequest, envelope{Message: "businessId required"})
		return
	}
	timeframe := domain.Timeframe(req.Timeframe)
	switch timeframe {
	case domain.TimeframeAll, domain.TimeframeDaily, domain.TimeframeWeekly, domain.TimeframeMonthly:
	default:
		writeJSON(w, http.StatusBadRequest, envelope{Message: "unknown timeframe"})
		return
	}

	report, err := s.reports.Analyze(r.Context(), req.BusinessID, timeframe)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: reportPayload(report)})
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	businessID := r.URL.Query().Get("businessId")
	if businessID == "" {
		writeJSON(w, http.StatusBadRequest, envelope{Message: "businessId required"})
		return
	}

	topics, err := s.reports.ExploreTopics(r.Context(), businessID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: topicsPayload(topics)})
}

func (s *Server) handleLatestReport(w http.ResponseWriter, r *http.Request) {
	businessID := r.URL.Query().Get("businessId")
	if businessID == "" {
		writeJSON(w, http.StatusBadRequest, envelope{Message: "businessId required"})
		return
	}

	report, err := s.reports.LatestReport(r.Context(), businessID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if report == nil {
		writeJSON(w, http.StatusOK, envelope{Success: true, Message: "no reports yet"})
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: reportPayload(report)})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	businessID := r.URL.Query().Get("businessId")
	if businessID == "" {
		writeJSON(w, http.StatusBadRequest, envelope{Message: "businessId required"})
		return
	}

	stats, err := s.reports.FeedbackStats(r.Context(), businessID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: statsPayload(stats)})
}

// writeError maps the error taxonomy to responses: unknown business is a
// 404, an empty window is a success with null data, everything else a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBusinessNotFound):
		writeJSON(w, http.StatusNotFound, envelope{Message: "business not found"})
	case errors.Is(err, domain.ErrNoFeedback):
		writeJSON(w, http.StatusOK, envelope{Success: true, Message: "no feedback"})
	default:
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, envelope{Message: "analysis failed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Wire DTOs. Domain entities stay free of serialization concerns; the
// field naming below matches what the platform's dashboard consumes.

type reportDTO struct {
	ID          string                        `json:"id"`
	BusinessID  string                        `json:"businessId"`
	GeneratedAt time.Time                     `json:"generatedAt"`
	PeriodStart time.Time                     `json:"periodStart"`
	PeriodEnd   time.Time                     `json:"periodEnd"`
	Summary     string                        `json:"summary"`
	Trends      []trendDTO                    `json:"trends"`
	AIInsights  *aiInsightsDTO                `json:"aiInsights,omitempty"`
	Stats       statsDTO                      `json:"stats"`
	Categories  categoriesDTO                 `json:"categories"`
	Meta        metaDTO                       `json:"meta"`
}

type trendDTO struct {
	Label          string `json:"label"`
	Recommendation string `json:"recommendation"`
}

type recommendationDTO struct {
	Advice  string   `json:"advice"`
	Topics  []string `json:"topics,omitempty"`
	Actions []string `json:"actions,omitempty"`
}

type aiInsightsDTO struct {
	Source          string              `json:"source"`
	Recommendations []recommendationDTO `json:"recommendations"`
}

type statsDTO struct {
	TotalFeedback int     `json:"totalFeedback"`
	AvgSentiment  float64 `json:"avgSentiment"`
}

type categoriesDTO struct {
	Counts       map[string]int                `json:"counts"`
	AvgSentiment map[string]float64            `json:"avgSentiment"`
	Scores       map[string]map[string]float64 `json:"scores"`
}

type metaDTO struct {
	GeneratedBy   string `json:"generatedBy"`
	Timeframe     string `json:"timeframe"`
	SchemaVersion string `json:"schemaVersion"`
}

func reportPayload(report *domain.Report) reportDTO {
	dto := reportDTO{
		ID:          report.ID,
		BusinessID:  report.BusinessID,
		GeneratedAt: report.GeneratedAt,
		PeriodStart: report.PeriodStart,
		PeriodEnd:   report.PeriodEnd,
		Summary:     report.Summary,
		Stats:       statsDTO(report.Stats),
		Categories: categoriesDTO{
			Counts:       make(map[string]int),
			AvgSentiment: make(map[string]float64),
			Scores:       make(map[string]map[string]float64),
		},
		Meta: metaDTO{
			GeneratedBy:   string(report.Meta.GeneratedBy),
			Timeframe:     string(report.Meta.Timeframe),
			SchemaVersion: report.Meta.SchemaVersion,
		},
	}
	for _, t := range report.Trends {
		dto.Trends = append(dto.Trends, trendDTO(t))
	}
	if report.AIInsights != nil {
		insights := aiInsightsDTO{Source: report.AIInsights.Source}
		for _, rec := range report.AIInsights.Recommendations {
			insights.Recommendations = append(insights.Recommendations, recommendationDTO{
				Advice:  rec.Advice,
				Topics:  rec.Topics,
				Actions: rec.Actions,
			})
		}
		dto.AIInsights = &insights
	}
	for cat, n := range report.Categories.Counts {
		dto.Categories.Counts[string(cat)] = n
	}
	for cat, v := range report.Categories.AvgSentiment {
		dto.Categories.AvgSentiment[string(cat)] = v
	}
	for cat, params := range report.Categories.Scores {
		scores := make(map[string]float64, len(params))
		for param, v := range params {
			scores[string(param)] = v
		}
		dto.Categories.Scores[string(cat)] = scores
	}
	return dto
}

type topicDTO struct {
	ID           int               `json:"id"`
	Size         int               `json:"size"`
	Label        string            `json:"label"`
	TopTerms     []string          `json:"topTerms"`
	AvgSentiment float64           `json:"avgSentiment"`
	Examples     []topicExampleDTO `json:"examples"`
	Timeseries   []int             `json:"timeseries"`
	Advice       string            `json:"advice"`
}

type topicExampleDTO struct {
	Text      string    `json:"text"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

func topicsPayload(topics []domain.Topic) []topicDTO {
	out := make([]topicDTO, 0, len(topics))
	for _, t := range topics {
		dto := topicDTO{
			ID:           t.ID,
			Size:         t.Size,
			Label:        t.Label,
			TopTerms:     t.TopTerms,
			AvgSentiment: t.AvgSentiment,
			Timeseries:   t.Timeseries,
			Advice:       t.Advice,
		}
		for _, ex := range t.Examples {
			dto.Examples = append(dto.Examples, topicExampleDTO(ex))
		}
		out = append(out, dto)
	}
	return out
}

type feedbackStatsDTO struct {
	Total         int         `json:"total"`
	Rated         int         `json:"rated"`
	AverageRating float64     `json:"averageRating"`
	ByRating      map[int]int `json:"byRating"`
}

func statsPayload(stats domain.FeedbackStats) feedbackStatsDTO {
	return feedbackStatsDTO(stats)
}
