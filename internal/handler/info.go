package handler

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Version is overridden at build time via -ldflags.
var Version = "2.1.0"

type endpoint struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Description string            `json:"description"`
	Params      map[string]string `json:"parameters,omitempty"`
	Auth        bool              `json:"auth,omitempty"`
}

var endpoints = []endpoint{
	{Method: "GET", Path: "/api/health", Description: "健康检查"},
	{Method: "GET", Path: "/api/health/status", Description: "状态检查"},
	{Method: "GET", Path: "/api/info", Description: "项目信息和API文档"},
	{Method: "GET", Path: "/api/version", Description: "版本信息"},
	{Method: "GET", Path: "/api/endpoints", Description: "API端点列表"},
	{Method: "GET", Path: "/api/weather", Description: "获取天气信息", Params: map[string]string{"city": "城市名称（可选）"}},
	{Method: "GET", Path: "/api/weather/current", Description: "获取当前天气（实况）", Params: map[string]string{"city": "城市名称（可选）"}},
	{Method: "GET", Path: "/api/weather/forecast", Description: "获取天气预报", Params: map[string]string{"city": "城市名称（可选）"}},
	{Method: "GET", Path: "/api/fortune", Description: "获取老黄历信息", Params: map[string]string{"format": "structured 或 text（可选）"}},
	{Method: "GET", Path: "/api/fortune/today", Description: "获取今日老黄历"},
	{Method: "GET", Path: "/api/fortune/almanac", Description: "获取详细的黄历信息"},
	{Method: "GET", Path: "/api/fortune/simple", Description: "获取简化的老黄历信息"},
	{Method: "GET", Path: "/api/constellation", Description: "获取星座运势", Params: map[string]string{"sign": "星座名称（必需，中英文均可）", "format": "structured 或 text（可选）"}},
	{Method: "GET", Path: "/api/constellation/list", Description: "获取支持的星座列表"},
	{Method: "GET", Path: "/api/constellation/today", Description: "获取今日星座运势", Params: map[string]string{"sign": "星座名称（必需）"}},
	{Method: "POST", Path: "/api/constellation/batch", Description: "批量获取多个星座运势"},
	{Method: "POST", Path: "/api/message/send", Description: "发送自定义消息", Auth: true},
	{Method: "POST", Path: "/api/message/send-daily", Description: "发送每日消息", Auth: true},
	{Method: "POST", Path: "/api/message/send-weather", Description: "发送天气消息", Auth: true},
	{Method: "POST", Path: "/api/message/send-fortune", Description: "发送老黄历消息", Auth: true},
	{Method: "POST", Path: "/api/message/send-lunch", Description: "发送午餐推荐消息", Auth: true},
	{Method: "GET", Path: "/api/message/preview-daily", Description: "预览每日消息内容"},
	{Method: "GET", Path: "/api/message/templates", Description: "获取消息模板列表"},
	{Method: "GET", Path: "/api/message/history", Description: "发送记录", Params: map[string]string{"kind": "消息类型", "status": "sent/failed/skipped", "limit": "条数", "offset": "偏移"}},
}

type InfoHandler struct{}

func (h *InfoHandler) Register(r *gin.Engine) {
	r.GET("/api", h.info)
	r.GET("/api/info", h.info)
	r.GET("/api/version", h.version)
	r.GET("/api/endpoints", h.endpoints)
}

func (h *InfoHandler) info(c *gin.Context) {
	Ok(c, gin.H{
		"name":        "企业微信群机器人 API",
		"version":     Version,
		"description": "企业微信群机器人，工作日定时发送天气、老黄历和午餐推荐",
		"features": []string{
			"🌤️ 天气播报 - 获取实时天气信息",
			"📅 今日运势 - 老黄历信息，包含宜忌、冲煞等",
			"⭐ 星座运势 - 十二星座每日运势",
			"🍽️ 午餐推荐 - 根据天气推荐外卖",
			"⏰ 定时发送 - 工作日自动推送",
			"🤖 AI生成 - 动态开场白和智能内容",
		},
		"endpoints": endpoints,
		"timestamp": time.Now().Format(time.RFC3339),
	}, nil)
}

func (h *InfoHandler) version(c *gin.Context) {
	Ok(c, gin.H{
		"version":     Version,
		"api_version": "v1",
		"go_version":  runtime.Version(),
		"framework":   "gin",
	}, nil)
}

func (h *InfoHandler) endpoints(c *gin.Context) {
	Ok(c, endpoints, map[string]any{"total": len(endpoints), "base_url": "/api"})
}
