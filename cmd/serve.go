package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rasperon/portfolio/controller"
	"github.com/rasperon/portfolio/format"
	"github.com/rasperon/portfolio/model"
	"github.com/rasperon/portfolio/panel"
	"github.com/rasperon/portfolio/service"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio pages and the repositories API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, githubClient, rateLimiter, err := setup(cmd.Context())
	if err != nil {
		return err
	}

	githubService := service.NewGithubService(*cfg, githubClient, rateLimiter)

	// the home page panel lives as long as the server
	livePanel := panel.New(githubService, format.LookupLocale(cfg.Panel.Locale), cfg.Panel.Limit)
	defer livePanel.Close()
	livePanel.Activate(context.Background(), model.PanelQuery{Account: cfg.Panel.Account, Limit: cfg.Panel.Limit})

	gin.SetMode(gin.ReleaseMode)

	server := &http.Server{
		Addr:              ":" + cfg.API.ListenPort,
		Handler:           controller.NewRouter(*cfg, githubService, livePanel),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// start with configuration
	go func() {
		log.Info("server listening on port " + cfg.API.ListenPort)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("error while starting server")
		}
	}()

	// wait for interrupt signal to gracefully shut down the server
	// kill default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("SIGINT, SIGTERM received, will shut down server ...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
		return err
	}

	log.Info("Application stopped gracefully !")
	return nil
}
