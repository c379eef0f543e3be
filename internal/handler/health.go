package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DriftingBoats/wework-ark-bot/internal/bot"
	"github.com/DriftingBoats/wework-ark-bot/internal/db"
)

type HealthHandler struct {
	Bot     *bot.Bot
	DB      *db.DB
	Started time.Time
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)
	r.GET("/api/health", h.status)
	r.GET("/api/health/status", h.status)
}

func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ready pings the database when one is configured. Without a database the
// bot runs on the in-memory delivery log and is always ready.
func (h *HealthHandler) ready(c *gin.Context) {
	if h.DB == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "db": "disabled"})
		return
	}
	if err := db.Ping(h.DB); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db_unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "db": "ok"})
}

func (h *HealthHandler) status(c *gin.Context) {
	data := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   Version,
	}
	if !h.Started.IsZero() {
		data["uptime"] = time.Since(h.Started).Round(time.Second).String()
	}
	if h.Bot != nil {
		s := h.Bot.Status()
		data["services"] = gin.H{
			"webhook":     configuredLabel(s.Webhook),
			"weather_api": configuredLabel(s.Weather),
			"tianapi":     configuredLabel(s.TianAPI),
			"llm":         configuredLabel(s.LLM != ""),
		}
		data["llm_provider"] = s.LLM
		data["city"] = s.City
		data["timezone"] = s.Timezone
	}
	Ok(c, data, nil)
}

func configuredLabel(ok bool) string {
	if ok {
		return "configured"
	}
	return "not_configured"
}
