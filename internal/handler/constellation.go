package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DriftingBoats/wework-ark-bot/internal/bot"
)

const maxBatchSigns = 12

type ConstellationHandler struct {
	Bot *bot.Bot
}

func (h *ConstellationHandler) Register(r *gin.Engine) {
	g := r.Group("/api/constellation")
	g.GET("", h.get)
	g.GET("/list", h.list)
	g.GET("/today", h.today)
	g.POST("/batch", h.batch)
}

func signsMeta() map[string]any {
	signs := bot.Signs()
	names := make([]string, 0, len(signs))
	astros := make([]string, 0, len(signs))
	for _, s := range signs {
		names = append(names, s.Name)
		astros = append(astros, s.Astro)
	}
	return map[string]any{"available_signs": names, "supported_english": astros}
}

func (h *ConstellationHandler) sign(c *gin.Context) (bot.Sign, bool) {
	raw := strings.TrimSpace(c.Query("sign"))
	if raw == "" {
		Error(c, http.StatusBadRequest, "请提供星座参数", signsMeta())
		return bot.Sign{}, false
	}
	s, ok := bot.NormalizeSign(raw)
	if !ok {
		Error(c, http.StatusBadRequest, "不支持的星座: "+raw, signsMeta())
		return bot.Sign{}, false
	}
	return s, true
}

func (h *ConstellationHandler) get(c *gin.Context) {
	s, ok := h.sign(c)
	if !ok {
		return
	}
	meta := map[string]any{"sign": s.Name, "original_input": c.Query("sign")}
	if c.Query("format") == "text" {
		Ok(c, gin.H{"constellation_text": h.Bot.ConstellationText(c.Request.Context(), s)}, meta)
		return
	}
	Ok(c, h.Bot.Constellation(c.Request.Context(), s), meta)
}

func (h *ConstellationHandler) list(c *gin.Context) {
	signs := bot.Signs()
	Ok(c, gin.H{"constellations": signs}, map[string]any{"total": len(signs)})
}

func (h *ConstellationHandler) today(c *gin.Context) {
	s, ok := h.sign(c)
	if !ok {
		return
	}
	hs := h.Bot.Constellation(c.Request.Context(), s)
	Ok(c, gin.H{
		"sign":         hs.Sign,
		"date":         hs.Date,
		"summary":      hs.Summary,
		"indices":      hs.Indices,
		"lucky_color":  hs.Lucky.Color,
		"lucky_number": hs.Lucky.Number,
	}, nil)
}

type batchRequest struct {
	Signs []string `json:"signs"`
}

func (h *ConstellationHandler) batch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Signs) == 0 {
		Error(c, http.StatusBadRequest, "请提供星座列表", map[string]any{"example": gin.H{"signs": []string{"白羊座", "金牛座"}}})
		return
	}
	if len(req.Signs) > maxBatchSigns {
		Error(c, http.StatusBadRequest, "too many signs", nil)
		return
	}
	var (
		signs   []bot.Sign
		invalid []string
	)
	for _, raw := range req.Signs {
		s, ok := bot.NormalizeSign(raw)
		if !ok {
			invalid = append(invalid, raw)
			continue
		}
		signs = append(signs, s)
	}
	if len(invalid) > 0 {
		meta := signsMeta()
		meta["invalid_signs"] = invalid
		Error(c, http.StatusBadRequest, "不支持的星座: "+strings.Join(invalid, ","), meta)
		return
	}
	out := make(map[string]bot.Horoscope, len(signs))
	for _, s := range signs {
		out[s.Name] = h.Bot.Constellation(c.Request.Context(), s)
	}
	Ok(c, out, map[string]any{"total": len(out)})
}
