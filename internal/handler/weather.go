package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DriftingBoats/wework-ark-bot/internal/bot"
)

type WeatherHandler struct {
	Bot *bot.Bot
}

func (h *WeatherHandler) Register(r *gin.Engine) {
	g := r.Group("/api/weather")
	g.GET("", h.get)
	g.GET("/current", h.current)
	g.GET("/forecast", h.forecast)
}

func (h *WeatherHandler) city(c *gin.Context) string {
	if v := c.Query("city"); v != "" {
		return v
	}
	return h.Bot.City()
}

func (h *WeatherHandler) get(c *gin.Context) {
	city := h.city(c)
	Ok(c, gin.H{"weather": h.Bot.Weather(c.Request.Context(), city), "city": city}, nil)
}

func (h *WeatherHandler) current(c *gin.Context) {
	city := h.city(c)
	text, live := h.Bot.CurrentWeather(c.Request.Context(), city)
	source := "fallback"
	if live {
		source = "amap_api"
	}
	Ok(c, gin.H{"current_weather": text, "city": city, "source": source}, nil)
}

func (h *WeatherHandler) forecast(c *gin.Context) {
	city := h.city(c)
	text, err := h.Bot.ForecastWeather(c.Request.Context(), city)
	if err != nil {
		Error(c, http.StatusBadRequest, "天气预报不可用: "+err.Error(), nil)
		return
	}
	Ok(c, gin.H{"forecast": text, "city": city, "source": "amap_api"}, nil)
}
