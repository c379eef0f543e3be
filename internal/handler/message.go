package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DriftingBoats/wework-ark-bot/internal/auth"
	"github.com/DriftingBoats/wework-ark-bot/internal/bot"
	"github.com/DriftingBoats/wework-ark-bot/internal/notify"
	"github.com/DriftingBoats/wework-ark-bot/internal/repository"
)

type MessageHandler struct {
	Bot *bot.Bot
	JWT auth.JWT
}

func (h *MessageHandler) Register(r *gin.Engine) {
	g := r.Group("/api/message")
	g.GET("/preview-daily", h.previewDaily)
	g.GET("/templates", h.templates)
	g.GET("/history", h.history)

	w := g.Group("", auth.Middleware(h.JWT))
	w.POST("/send", h.send)
	w.POST("/send-daily", h.sendDaily)
	w.POST("/send-weather", h.sendWeather)
	w.POST("/send-fortune", h.sendFortune)
	w.POST("/send-lunch", h.sendLunch)
}

type sendRequest struct {
	Message string `json:"message"`
}

func (h *MessageHandler) send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "请提供消息内容", nil)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		Error(c, http.StatusBadRequest, "消息内容不能为空", nil)
		return
	}
	res := h.Bot.Deliver(c.Request.Context(), bot.KindManual, req.Message)
	respondDelivery(c, res, "消息发送失败", gin.H{"sent_message": res.Content})
}

func (h *MessageHandler) sendDaily(c *gin.Context) {
	out := h.Bot.RunDaily(c.Request.Context())
	if out.Skipped {
		Ok(c, gin.H{"skipped": true, "reason": "weekend"}, nil)
		return
	}
	respondDelivery(c, out.Result, "每日消息发送失败", gin.H{"message_content": out.Result.Content})
}

func (h *MessageHandler) sendWeather(c *gin.Context) {
	w, res := h.Bot.SendWeather(c.Request.Context())
	respondDelivery(c, res, "天气消息发送失败", gin.H{"weather_info": w})
}

func (h *MessageHandler) sendFortune(c *gin.Context) {
	f, res := h.Bot.SendFortune(c.Request.Context())
	respondDelivery(c, res, "老黄历消息发送失败", gin.H{"fortune_info": f})
}

func (h *MessageHandler) sendLunch(c *gin.Context) {
	l, res := h.Bot.SendLunch(c.Request.Context())
	respondDelivery(c, res, "午餐推荐消息发送失败", gin.H{"lunch_recommendation": l})
}

func respondDelivery(c *gin.Context, res notify.Result, failure string, data gin.H) {
	if !res.Sent {
		msg := failure
		if res.Err != nil {
			msg += ": " + res.Err.Error()
		}
		Error(c, http.StatusInternalServerError, msg, nil)
		return
	}
	var meta map[string]any
	if len(res.Mirrors) > 0 {
		meta = map[string]any{"mirrors": res.Mirrors}
	}
	Ok(c, data, meta)
}

func (h *MessageHandler) previewDaily(c *gin.Context) {
	msg, ok := h.Bot.DailyMessage(c.Request.Context())
	if !ok {
		Ok(c, gin.H{"preview_mode": true, "skipped": true, "reason": "weekend"}, nil)
		return
	}
	Ok(c, gin.H{"message_content": msg, "preview_mode": true}, nil)
}

type messageTemplate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Endpoint    string `json:"endpoint"`
	Method      string `json:"method"`
}

var templates = map[string]messageTemplate{
	bot.KindDaily:   {"每日消息", "包含鼓励语、老黄历、天气和午餐推荐的完整每日消息", "/api/message/send-daily", "POST"},
	bot.KindWeather: {"天气播报", "仅发送天气信息", "/api/message/send-weather", "POST"},
	bot.KindFortune: {"今日运势", "仅发送老黄历信息", "/api/message/send-fortune", "POST"},
	bot.KindLunch:   {"午餐推荐", "仅发送午餐推荐", "/api/message/send-lunch", "POST"},
	"custom":        {"自定义消息", `发送自定义文本消息，body: {"message": "..."}`, "/api/message/send", "POST"},
}

func (h *MessageHandler) templates(c *gin.Context) {
	Ok(c, gin.H{"templates": templates}, map[string]any{"total": len(templates)})
}

func (h *MessageHandler) history(c *gin.Context) {
	params := repository.ListDeliveriesParams{
		Limit:  intQuery(c, "limit", 50),
		Offset: intQuery(c, "offset", 0),
	}
	if v := strings.TrimSpace(c.Query("kind")); v != "" {
		params.Kind = &v
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		params.Status = &v
	}
	if v := strings.TrimSpace(c.Query("since")); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			Error(c, http.StatusBadRequest, "since must be RFC3339", nil)
			return
		}
		t := ts.UTC()
		params.Since = &t
	}
	items, err := h.Bot.History(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{
		"limit":  repository.NormalizeLimit(params.Limit, 50),
		"offset": repository.NormalizeOffset(params.Offset),
		"count":  len(items),
	})
}
