package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MickeyTee/BankOfCanada/internal/model"
	"github.com/MickeyTee/BankOfCanada/internal/recorder"
	"github.com/MickeyTee/BankOfCanada/internal/report"
)

const dayFormat = "2006-01-02"

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boc_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"endpoint", "method"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "boc_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"endpoint"},
	)
)

// Handler serves the comparison API.
type Handler struct {
	svc *report.Service
	rec recorder.Recorder
}

// NewHandler creates a Handler over the comparison service and recorder.
func NewHandler(svc *report.Service, rec recorder.Recorder) *Handler {
	return &Handler{svc: svc, rec: rec}
}

// Router builds the gin engine with all routes registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/comparison", h.GetComparison)
	}
	return r
}

func (h *Handler) Health(c *gin.Context) {
	requestsTotal.WithLabelValues("/health", c.Request.Method).Inc()
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Service: "boc-comparison"})
}

// GetComparison handles GET /api/v1/comparison?start_date=&end_date=.
func (h *Handler) GetComparison(c *gin.Context) {
	start := time.Now()
	defer func() {
		requestsTotal.WithLabelValues("/api/v1/comparison", c.Request.Method).Inc()
		requestDuration.WithLabelValues("/api/v1/comparison").Observe(time.Since(start).Seconds())
	}()

	startDate, err := time.Parse(dayFormat, c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid start_date: expected YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse(dayFormat, c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid end_date: expected YYYY-MM-DD"})
		return
	}

	cmp, err := h.svc.Compare(c.Request.Context(), startDate, endDate)
	if err != nil {
		if errors.Is(err, report.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		log.Printf("[ERROR] compare: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
		return
	}

	// Partial results are fine; only a total provider failure is a gateway error.
	if cmp.A.FetchFailed && cmp.B.FetchFailed {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: cmp.Message})
		return
	}

	if err := h.rec.Record(recorder.FromComparison(cmp)); err != nil {
		log.Printf("[WARN] record comparison: %v", err)
	}

	c.JSON(http.StatusOK, toResponse(cmp))
}

func toResponse(cmp *model.Comparison) ComparisonResponse {
	resp := ComparisonResponse{
		StartDate: cmp.StartDate.Format(dayFormat),
		EndDate:   cmp.EndDate.Format(dayFormat),
		Series: map[string]SeriesReport{
			cmp.A.Series.Code: seriesReport(cmp.A),
			cmp.B.Series.Code: seriesReport(cmp.B),
		},
		SampleSize: cmp.Correlation.SampleSize,
		Message:    cmp.Message,
	}
	if cmp.Correlation.Defined {
		rho := cmp.Correlation.Rho
		resp.Rho = &rho
	}
	return resp
}

func seriesReport(res model.SeriesResult) SeriesReport {
	rep := SeriesReport{
		Label:        res.Series.Label,
		Observations: len(res.Series.Observations),
		Note:         res.Note,
	}
	if res.Summary == nil {
		return rep
	}
	low, high, mean := res.Summary.Min, res.Summary.Max, res.Summary.Mean
	minDate := res.Summary.FirstDate.Format(dayFormat)
	maxDate := res.Summary.LastDate.Format(dayFormat)
	rep.Low = &low
	rep.High = &high
	rep.Mean = &mean
	rep.MinDate = &minDate
	rep.MaxDate = &maxDate
	return rep
}
