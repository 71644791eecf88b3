package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// Module provides the storefront API router and logs its route table.
var Module = fx.Options(
	fx.Provide(Setup),
	fx.Invoke(logRoutes),
)

func logRoutes(engine *gin.Engine, logger *slog.Logger) {
	for _, r := range engine.Routes() {
		logger.Debug("route registered", slog.String("method", r.Method), slog.String("path", r.Path))
	}
}
