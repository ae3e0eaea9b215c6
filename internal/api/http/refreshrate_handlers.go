package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/griffincancode/refreshrated/internal/infrastructure/monitoring"
	"github.com/griffincancode/refreshrated/internal/refreshrate"
	"github.com/griffincancode/refreshrated/internal/shared/utils"
)

// Handlers adapts internal/refreshrate.Engine to the HTTP control surface.
// It holds no decision logic of its own: every handler decodes JSON, calls
// the engine, and encodes the result.
type Handlers struct {
	engine  *refreshrate.Engine
	metrics *monitoring.Metrics
	log     *zap.Logger
}

// NewHandlers constructs the HTTP adapter over an already-configured engine.
func NewHandlers(engine *refreshrate.Engine, metrics *monitoring.Metrics, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{engine: engine, metrics: metrics, log: log}
}

// Health reports process liveness and the catalog size.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"catalogSize": len(h.engine.Catalog()),
		"canSwitch":   h.engine.CanSwitch(),
	})
}

// CurrentRefreshRate returns the display's current RefreshRate.
func (h *Handlers) CurrentRefreshRate(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.CurrentRefreshRate())
}

// SetDisplayManagerPolicy validates and installs the display-manager policy.
func (h *Handlers) SetDisplayManagerPolicy(c *gin.Context) {
	var p refreshrate.Policy
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.engine.SetDisplayManagerPolicy(p); err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "installed"})
}

// setOverridePolicyRequest lets the caller clear the override policy by
// omitting the policy field entirely.
type setOverridePolicyRequest struct {
	Policy *refreshrate.Policy `json:"policy"`
}

// SetOverridePolicy installs or clears the temporary override policy.
func (h *Handlers) SetOverridePolicy(c *gin.Context) {
	var req setOverridePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.engine.SetOverridePolicy(req.Policy); err != nil {
		h.respondPolicyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated", "cleared": req.Policy == nil})
}

// setCurrentModeRequest is the body of POST /refresh-rate/mode.
type setCurrentModeRequest struct {
	ModeID int64 `json:"modeId"`
}

// SetCurrentModeID records the mode the display is actually running.
func (h *Handlers) SetCurrentModeID(c *gin.Context) {
	var req setCurrentModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.engine.SetCurrentModeID(refreshrate.ModeID(req.ModeID)); err != nil {
		if errors.Is(err, refreshrate.ErrUnknownModeID) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// bestRefreshRateRequest is the body of POST /refresh-rate/best.
type bestRefreshRateRequest struct {
	Layers        []refreshrate.LayerRequirement `json:"layers"`
	GlobalSignals refreshrate.GlobalSignals      `json:"globalSignals"`
}

// bestRefreshRateResponse pairs the chosen rate with the signals the
// arbiter actually used, so a caller can distinguish "touch was set" from
// "touch drove the decision".
type bestRefreshRateResponse struct {
	RefreshRate       refreshrate.RefreshRate       `json:"refreshRate"`
	SignalsConsidered refreshrate.SignalsConsidered `json:"signalsConsidered"`
}

// BestRefreshRate runs arbitration over the given layers and signals.
func (h *Handlers) BestRefreshRate(c *gin.Context) {
	var req bestRefreshRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateLayerCount(len(req.Layers)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, l := range req.Layers {
		if err := utils.ValidateLayerName(l.Name); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	start := time.Now()
	rr, considered, memoHit := h.engine.BestRefreshRate(req.Layers, req.GlobalSignals)
	if h.metrics != nil {
		h.metrics.RecordDecision(rr.Mode.Rate.String(), time.Since(start), considered.Touch, considered.Idle)
		h.metrics.RecordMemoHit(memoHit)
		h.metrics.SetCurrentRefreshFps(float64(rr.Mode.Rate))
	}
	c.JSON(http.StatusOK, bestRefreshRateResponse{RefreshRate: rr, SignalsConsidered: considered})
}

// overridesRequest is the body of POST /refresh-rate/overrides.
type overridesRequest struct {
	Layers        []refreshrate.LayerRequirement `json:"layers"`
	DisplayFps    refreshrate.Fps                `json:"displayFps"`
	GlobalSignals refreshrate.GlobalSignals      `json:"globalSignals"`
}

// FrameRateOverrides resolves per-owner frame-rate overrides.
func (h *Handlers) FrameRateOverrides(c *gin.Context) {
	var req overridesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateLayerCount(len(req.Layers)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	overrides := h.engine.FrameRateOverrides(req.Layers, req.DisplayFps, req.GlobalSignals)
	if h.metrics != nil {
		h.metrics.SetFrameRateOwners(len(overrides))
	}
	c.JSON(http.StatusOK, gin.H{"overrides": overrides})
}

// IdleTimerAction reports whether the kernel idle timer should be enabled.
func (h *Handlers) IdleTimerAction(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"action": h.engine.IdleTimerAction().String()})
}

// respondPolicyError translates a policy validation failure into an HTTP
// response and records it for metrics.
func (h *Handlers) respondPolicyError(c *gin.Context, err error) {
	if h.metrics != nil {
		h.metrics.RecordPolicyRejection("invalid")
	}
	h.log.Warn("rejected policy over HTTP", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
