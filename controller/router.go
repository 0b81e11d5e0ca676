package controller

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rasperon/portfolio/config"
	"github.com/rasperon/portfolio/logger"
	"github.com/rasperon/portfolio/panel"
	"github.com/rasperon/portfolio/service"
	"github.com/rasperon/portfolio/view"
)

// NewRouter setup handlers and define all routes
func NewRouter(cfg config.Config, githubService service.GithubService, livePanel *panel.Panel) *gin.Engine {
	apiController := NewAPIController(cfg, githubService, livePanel)
	pageController := NewPageController(cfg, githubService, livePanel)

	router := gin.New()
	router.SetHTMLTemplate(view.Templates())

	router.Use(
		gin.Recovery(),
		logger.Middleware(),
		cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET", "PUT", "POST"},
			AllowHeaders:  []string{"Content-Type, Content-Length, Accept-Encoding, Accept-Language, Host, accept, Origin, Cache-Control, X-Requested-With, X-Request-ID"},
			ExposeHeaders: []string{logger.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)

	router.GET("/", pageController.Index)
	router.GET("/panel", pageController.Panel)
	router.GET("/health", apiController.Health)

	api := router.Group("/api")
	{
		api.GET("/repos/:account", apiController.GetRepositories)
		api.GET("/panel", apiController.GetPanel)
		api.PUT("/panel", apiController.ActivatePanel)
		api.POST("/panels", apiController.LoadPanels)
	}

	return router
}
