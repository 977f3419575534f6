package httpserver

import (
	"context"

	"task-reminder-bot/internal/model"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (srv HTTPServer) mapHandlers() error {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares() {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(srv.mw.RequestLog())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "HTTP server mode: production")
	} else {
		srv.l.Infof(ctx, "HTTP server mode: %s", srv.environment)
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes.
func (srv HTTPServer) registerDomainRoutes() error {
	ctx := context.Background()

	if srv.telegramHandler == nil {
		srv.l.Infof(ctx, "Telegram handler not configured, skipping webhook route")
		srv.registerTestRoutes(ctx)
		return nil
	}

	handlers := []gin.HandlerFunc{}
	if srv.webhookGuard != nil {
		handlers = append(handlers, srv.webhookGuard)
	}
	handlers = append(handlers, srv.telegramHandler.HandleWebhook)

	srv.gin.POST("/webhook/telegram", handlers...)
	srv.l.Infof(ctx, "Telegram webhook route registered at POST /webhook/telegram")

	srv.registerTestRoutes(ctx)

	return nil
}

func (srv HTTPServer) registerTestRoutes(ctx context.Context) {
	if srv.testHandler == nil {
		return
	}
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Test routes disabled in production")
		return
	}

	rg := srv.gin.Group("/test")
	rg.POST("/extract", srv.testHandler.HandleExtract)
	rg.POST("/sweep", srv.testHandler.HandleSweep)
	srv.l.Infof(ctx, "Test routes registered under /test")
}
