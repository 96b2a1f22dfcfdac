package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/inkrelay/inkrelay-server/internal/core"
	"github.com/inkrelay/inkrelay-server/internal/store"
)

// Handlers provides the operational HTTP endpoints.
type Handlers struct {
	hub     *core.Hub
	archive store.Archiver
	log     *zerolog.Logger
}

// NewHandlers creates the handler set. archive may be nil.
func NewHandlers(hub *core.Hub, archive store.Archiver, logger *zerolog.Logger) *Handlers {
	return &Handlers{hub: hub, archive: archive, log: logger}
}

// HealthResponse is the health endpoint body.
type HealthResponse struct {
	Status        string `json:"status"`
	ActiveUsers   int    `json:"activeUsers"`
	DrawingEvents int    `json:"drawingEvents"`
}

// StatsResponse is the stats endpoint body.
type StatsResponse struct {
	TotalParticipants int      `json:"totalParticipants"`
	TotalEvents       int      `json:"totalEvents"`
	RoomIDs           []string `json:"roomIds"`
	ArchivedClears    *int64   `json:"archivedClears,omitempty"`
}

// ClearRecord is one archived clear-board snapshot.
type ClearRecord struct {
	RoomID    string          `json:"roomId"`
	ClearedBy string          `json:"clearedBy"`
	Events    json.RawMessage `json:"events"`
	ClearedAt int64           `json:"clearedAt"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health reports liveness and aggregate counters.
// GET /health
func (h *Handlers) Health(c *gin.Context) {
	stats, err := h.hub.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "hub unavailable"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:        "OK",
		ActiveUsers:   stats.TotalParticipants,
		DrawingEvents: stats.TotalEvents,
	})
}

// Stats reports per-registry counters for operational visibility.
// GET /api/stats
func (h *Handlers) Stats(c *gin.Context) {
	stats, err := h.hub.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "hub unavailable"})
		return
	}

	resp := StatsResponse{
		TotalParticipants: stats.TotalParticipants,
		TotalEvents:       stats.TotalEvents,
		RoomIDs:           stats.RoomIDs,
	}
	if h.archive != nil {
		if n, err := h.archive.ClearCount(c.Request.Context()); err == nil {
			resp.ArchivedClears = &n
		} else {
			h.log.Warn().Err(err).Msg("count archived clears")
		}
	}
	c.JSON(http.StatusOK, resp)
}

// RoomClears lists recent archived clear snapshots for a room.
// GET /api/rooms/:room/clears?limit=N
func (h *Handlers) RoomClears(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "archive disabled"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	snaps, err := h.archive.RecentClears(c.Request.Context(), c.Param("room"), limit)
	if err != nil {
		h.log.Error().Err(err).Str("room", c.Param("room")).Msg("list archived clears")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	records := make([]ClearRecord, 0, len(snaps))
	for _, snap := range snaps {
		records = append(records, ClearRecord{
			RoomID:    snap.RoomID,
			ClearedBy: snap.ClearedBy,
			Events:    json.RawMessage(snap.Events),
			ClearedAt: snap.ClearedAt.UnixMilli(),
		})
	}
	c.JSON(http.StatusOK, records)
}
