package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DriftingBoats/wework-ark-bot/internal/bot"
)

type FortuneHandler struct {
	Bot *bot.Bot
}

func (h *FortuneHandler) Register(r *gin.Engine) {
	g := r.Group("/api/fortune")
	g.GET("", h.get)
	g.GET("/today", h.today)
	g.GET("/almanac", h.almanac)
	g.GET("/simple", h.simple)
}

func (h *FortuneHandler) get(c *gin.Context) {
	switch c.DefaultQuery("format", "structured") {
	case "structured":
		Ok(c, h.Bot.Almanac(c.Request.Context()), map[string]any{"format": "structured"})
	case "text":
		Ok(c, gin.H{"fortune_text": h.Bot.AlmanacText(c.Request.Context())}, map[string]any{"format": "text"})
	default:
		Error(c, http.StatusBadRequest, "format must be structured or text", nil)
	}
}

func (h *FortuneHandler) today(c *gin.Context) {
	rec := h.Bot.Almanac(c.Request.Context())
	Ok(c, rec, map[string]any{"date": rec.Date.GregorianDate})
}

func (h *FortuneHandler) almanac(c *gin.Context) {
	rec := h.Bot.Almanac(c.Request.Context())
	Ok(c, gin.H{
		"date_info":     rec.Date,
		"fortune_info":  rec.Fortune,
		"wuxing_info":   rec.Wuxing,
		"festival_info": rec.Festival,
	}, nil)
}

func (h *FortuneHandler) simple(c *gin.Context) {
	rec := h.Bot.Almanac(c.Request.Context())
	Ok(c, gin.H{
		"lunar_date": rec.Date.LunarFormatted,
		"fitness":    rec.Fortune.Fitness,
		"taboo":      rec.Fortune.Taboo,
		"festival":   rec.Festival.Festival,
	}, map[string]any{"date": rec.Date.GregorianDate})
}
