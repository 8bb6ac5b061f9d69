package api

import (
	"context"
	"net/http"
	"time"

	"RevCycle/internal/domain/models"
	drepo "RevCycle/internal/domain/repository"
	"RevCycle/internal/service/ratelimit"
	"RevCycle/internal/usecase"
	xhttp "RevCycle/pkg/http"
	xlogger "RevCycle/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CyclesHandler exposes the revenue cycle pipeline over HTTP.
type CyclesHandler struct {
	logger   *xlogger.Logger
	engine   *usecase.RevenueEngine
	proc     *usecase.CycleProcessor
	store    drepo.CycleStore
	news     drepo.NewsCache
	limiter  *ratelimit.Limiter
	capacity float64
	refill   float64
}

func NewCyclesHandler(
	logger *xlogger.Logger,
	engine *usecase.RevenueEngine,
	proc *usecase.CycleProcessor,
	store drepo.CycleStore,
	news drepo.NewsCache,
	limiter *ratelimit.Limiter,
	capacity, refill float64,
) *CyclesHandler {
	return &CyclesHandler{
		logger:   logger,
		engine:   engine,
		proc:     proc,
		store:    store,
		news:     news,
		limiter:  limiter,
		capacity: capacity,
		refill:   refill,
	}
}

func (h *CyclesHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/cycle", h.RunCycle)
	g.GET("/cycles", h.RecentCycles)
	g.GET("/pricing/constraints", h.GetConstraints)
	g.PUT("/pricing/constraints", h.UpdateConstraints)
	g.GET("/news/latest", h.LatestNews)
	e.GET("/healthz", h.Health)
}

// RunCycle executes one revenue cycle and routes the result to the backend.
func (h *CyclesHandler) RunCycle(c echo.Context) error {
	req := &models.RunCycleRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if h.limiter != nil && !h.limiter.Allow(req.Market, h.capacity, h.refill) {
		return xhttp.TooManyRequestsResponse(c, "rate limit exceeded for market")
	}

	res, err := h.engine.RunRevenueCycle(c.Request().Context(), req.Market, req.Timeframe)
	if err != nil {
		h.logger.Error("revenue cycle failed",
			xlogger.String("market", req.Market),
			xlogger.Error(err),
		)
		return xhttp.AppErrorResponse(c, err)
	}

	if h.proc != nil {
		if err := h.proc.Process(c.Request().Context(), res); err != nil {
			// the cycle itself succeeded; routing failure is reported but the
			// result is still returned
			h.logger.Error("cycle result processing failed", xlogger.Error(err))
		}
	}

	return xhttp.SuccessResponse(c, res)
}

// RecentCycles returns persisted cycle results for a market.
func (h *CyclesHandler) RecentCycles(c echo.Context) error {
	req := &models.CyclesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if h.store == nil {
		return xhttp.NotFoundResponse(c, "cycle storage not configured")
	}

	results, err := h.store.Query(c.Request().Context(), req.Market, req.Limit)
	if err != nil {
		h.logger.Error("cycle query failed", xlogger.String("market", req.Market), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, results, int64(len(results)))
}

// GetConstraints returns the current price bounds.
func (h *CyclesHandler) GetConstraints(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.engine.Constraints())
}

// UpdateConstraints applies a partial price bounds update.
func (h *CyclesHandler) UpdateConstraints(c echo.Context) error {
	req := &models.ConstraintsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	updated := h.engine.UpdateConstraints(req.Min, req.Max)
	h.logger.Info("price constraints updated",
		xlogger.Float64("min", updated.MinPrice),
		xlogger.Float64("max", updated.MaxPrice),
	)
	return xhttp.SuccessResponse(c, updated)
}

// LatestNews returns the most recent collected headlines for a market.
func (h *CyclesHandler) LatestNews(c echo.Context) error {
	req := &models.NewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.news == nil {
		return xhttp.NotFoundResponse(c, "news feed not configured")
	}
	return xhttp.SuccessResponse(c, h.news.Latest(req.Market))
}

// Health checks storage reachability.
func (h *CyclesHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.store.Health(ctx); err != nil {
			status["status"] = "degraded"
			status["storage"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, status)
		}
	}
	return c.JSON(http.StatusOK, status)
}
