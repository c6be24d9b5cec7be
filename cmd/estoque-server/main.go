package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jiorblanc/estoque"
	"github.com/jiorblanc/estoque/config"
	"github.com/jiorblanc/estoque/handlers"
	"github.com/jiorblanc/estoque/models"
	"github.com/jiorblanc/estoque/routes"
)

func main() {
	log := config.GetLogger()

	config.ConnectDatabaseWithRetry()
	models.MigrateTable()

	store := models.NewStore(config.GetDB())
	parser := estoque.NewParser()
	if os.Getenv("PARSER_DEBUG") == "true" {
		parser.SetDebug(true)
	}

	documents := handlers.NewDocumentController(store, parser, log)
	catalog := handlers.NewCatalogController(store, log)
	stock := handlers.NewStockController(store, log)
	movements := handlers.NewMovementController(store, log)
	mappings := handlers.NewMappingController(store, log)
	export := handlers.NewExportController(store, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(requestTimeout(30 * time.Second))

	routes.RegisterRoutes(r, documents, catalog, stock, movements, mappings, export)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		log.WithField("port", port).Info("estoque server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down estoque server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}
	log.Info("estoque server stopped")
}

func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":    method,
			"path":      path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("http_request")
		case c.Writer.Status() >= 400:
			entry.Warn("http_request")
		default:
			entry.Info("http_request")
		}
	}
}

func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
