package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DriftingBoats/wework-ark-bot/internal/auth"
	"github.com/DriftingBoats/wework-ark-bot/internal/bot"
	"github.com/DriftingBoats/wework-ark-bot/internal/db"
)

type RouterDeps struct {
	Bot     *bot.Bot
	DB      *db.DB
	JWT     auth.JWT
	Logger  *zap.Logger
	Started time.Time
}

// NewRouter builds the engine with every handler registered.
func NewRouter(d RouterDeps) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(CORSMiddleware())
	engine.Use(RequestIDMiddleware(d.Logger))

	(&HealthHandler{Bot: d.Bot, DB: d.DB, Started: d.Started}).Register(engine)
	(&InfoHandler{}).Register(engine)
	(&WeatherHandler{Bot: d.Bot}).Register(engine)
	(&FortuneHandler{Bot: d.Bot}).Register(engine)
	(&ConstellationHandler{Bot: d.Bot}).Register(engine)
	(&MessageHandler{Bot: d.Bot, JWT: d.JWT}).Register(engine)
	return engine
}
