package server

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/DrSkyle/linkpath/pkg/batch"
	"github.com/DrSkyle/linkpath/pkg/engine"
	"github.com/DrSkyle/linkpath/pkg/graph"
	"github.com/DrSkyle/linkpath/pkg/search"
	"github.com/DrSkyle/linkpath/pkg/version"
)

// Handlers answers HTTP queries against one engine.
type Handlers struct {
	eng *engine.Engine

	statsOnce sync.Once
	stats     StatsResponse
}

// NewHandlers returns handlers bound to eng.
func NewHandlers(eng *engine.Engine) *Handlers {
	return &Handlers{eng: eng}
}

// HandleHealth reports liveness and whether a graph is loaded.
func (h *Handlers) HandleHealth(c *gin.Context) {
	_, err := h.eng.Finder()
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: version.Current,
		Ready:   err == nil,
	})
}

// HandlePath runs one query. No path is a 200 with found false.
func (h *Handlers) HandlePath(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	res, err := h.eng.Run(c.Request.Context(), batch.Query{
		Label:   "http",
		From:    req.From,
		Through: req.Through,
		To:      req.To,
	})
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleLength returns the path length or -1.
func (h *Handlers) HandleLength(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	n, err := h.eng.Length(c.Request.Context(), req.From, req.To)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, LengthResponse{From: req.From, To: req.To, Length: n})
}

// HandleReach sweeps from every root parameter.
func (h *Handlers) HandleReach(c *gin.Context) {
	var req ReachRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	res, err := h.eng.Reach(c.Request.Context(), req.Roots)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, ReachResponse{
		Roots:     res.Roots,
		Reached:   res.Reached,
		Unreached: res.Unreached,
		Depth:     res.Depth,
		Farthest:  res.Farthest,
	})
}

// HandleBatch runs a list of queries. Per-query failures are reported in
// each result's error field.
func (h *Handlers) HandleBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	queries := make([]batch.Query, len(req.Queries))
	for i, q := range req.Queries {
		queries[i] = batch.Query{Label: q.Label, From: q.From, Through: q.Through, To: q.To}
	}
	results, err := h.eng.Batch(c.Request.Context(), queries)
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// HandleStats summarises the loaded graph. The summary is computed once.
func (h *Handlers) HandleStats(c *gin.Context) {
	g := h.eng.Graph()
	if g == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: engine.ErrNotLoaded.Error()})
		return
	}
	h.statsOnce.Do(func() {
		st := h.eng.Stats()
		h.stats = StatsResponse{
			Vertices:   st.Vertices,
			Edges:      st.Edges,
			Skipped:    st.Skipped,
			Components: graph.Components(g),
		}
		for id := range g.Len() {
			h.stats.MaxOutDegree = max(h.stats.MaxOutDegree, g.OutDegree(graph.ID(id)))
		}
	})
	c.JSON(http.StatusOK, h.stats)
}

// statusFor maps query errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, graph.ErrUnknownName):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, search.ErrOptionViolation):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
