package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"field_station/internal/service"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK       = "ok"
	statusRelayOn  = "relay_on"
	statusRelayOff = "relay_off"

	errRelayOn      = "failed to switch relay on"
	errRelayOff     = "failed to switch relay off"
	errGetState     = "failed to load state"
	errGetRecords   = "failed to load records"
	errInvalidLimit = "invalid 'limit'; must be a non-negative integer"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status and include the latest record if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	rec, err := h.services.Monitoring.Latest(ctx)
	if err == nil {
		resp["state"] = rec
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Latest collected record
// @Tags         station
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/station/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	ctx := c.Request.Context()
	rec, err := h.services.Monitoring.Latest(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "station_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// @Summary      Recent records
// @Description  Returns the newest archived records, oldest first. Default and maximum limits apply.
// @Tags         station
// @Produce      json
// @Param        limit  query  int  false  "Maximum number of records"  example(50)
// @Success      200  {object}  map[string]interface{}  "count, records"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/station/records [get]
// @Security     BearerAuth
func (h *Handler) getRecords(c *gin.Context) {
	ctx := c.Request.Context()

	limit := 0
	if qs := c.Query("limit"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidLimit})
			return
		}
		limit = v
	}

	records, err := h.services.Monitoring.Recent(ctx, service.RecordQuery{Limit: limit})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetRecords, "station_get_records_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(records),
		"records": records,
	})
}

// @Summary      Switch relay on
// @Tags         station
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/station/relay/on [post]
// @Security     BearerAuth
func (h *Handler) relayOn(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Relay.TurnOn(ctx); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errRelayOn, "station_relay_on_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusRelayOn, gin.H{})
}

// @Summary      Switch relay off
// @Tags         station
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/station/relay/off [post]
// @Security     BearerAuth
func (h *Handler) relayOff(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Relay.TurnOff(ctx); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errRelayOff, "station_relay_off_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusRelayOff, gin.H{})
}
