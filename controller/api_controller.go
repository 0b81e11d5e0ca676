package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rasperon/portfolio/config"
	"github.com/rasperon/portfolio/format"
	"github.com/rasperon/portfolio/logger"
	"github.com/rasperon/portfolio/model"
	"github.com/rasperon/portfolio/panel"
	"github.com/rasperon/portfolio/service"
)

const (
	maxBatchQueries = 20
	version         = "1.0.0"
)

type APIController interface {
	GetRepositories(ctx *gin.Context)
	GetPanel(ctx *gin.Context)
	ActivatePanel(ctx *gin.Context)
	LoadPanels(ctx *gin.Context)
	Health(ctx *gin.Context)
}

type apiController struct {
	githubService service.GithubService
	livePanel     *panel.Panel
	config        config.Config
}

type BatchRequest struct {
	Queries []model.PanelQuery `json:"queries" binding:"required"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

func NewAPIController(config config.Config, service service.GithubService, livePanel *panel.Panel) APIController {
	return apiController{
		githubService: service,
		livePanel:     livePanel,
		config:        config,
	}
}

// GetRepositories lists the most starred repositories of the account in the path
func (s apiController) GetRepositories(c *gin.Context) {
	var query model.PanelQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortWithError(c, fmt.Errorf("%v: %w", err, model.ErrInvalidQuery))
		return
	}

	query.Account = c.Param("account")
	query = query.WithDefaults(s.config.Panel.Limit)

	// execute the request
	repos, err := s.githubService.ListTopRepositories(c.Request.Context(), query)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, repos)
}

// GetPanel returns what the live panel of the home page currently displays
func (s apiController) GetPanel(c *gin.Context) {
	c.JSON(http.StatusOK, s.livePanel.State())
}

// ActivatePanel switches the live panel to another account or limit, the listing runs in background
func (s apiController) ActivatePanel(c *gin.Context) {
	var query model.PanelQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortWithError(c, fmt.Errorf("%v: %w", err, model.ErrInvalidQuery))
		return
	}

	query = query.WithDefaults(s.config.Panel.Limit)
	if err := query.Validate(); err != nil {
		abortWithError(c, err)
		return
	}

	s.livePanel.Activate(c.Request.Context(), query)
	c.JSON(http.StatusAccepted, s.livePanel.State())
}

// LoadPanels loads several panels at once, one state per query in request order
func (s apiController) LoadPanels(c *gin.Context) {
	var request BatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		abortWithError(c, fmt.Errorf("%v: %w", err, model.ErrInvalidQuery))
		return
	}

	if len(request.Queries) > maxBatchQueries {
		abortWithError(c, fmt.Errorf("at most %d queries are allowed: %w", maxBatchQueries, model.ErrInvalidQuery))
		return
	}

	queries := make([]model.PanelQuery, 0, len(request.Queries))
	for _, q := range request.Queries {
		queries = append(queries, q.WithDefaults(s.config.Panel.Limit))
	}

	locale := localeFor(c, s.config.Panel.Locale)
	results := s.githubService.ListTopRepositoriesBatch(c.Request.Context(), queries)

	states := make([]model.PanelState, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			logger.FromContext(c).WithField("account", r.Query.Account).WithError(r.Err).Warn("batch panel failed")
		}

		states = append(states, panel.StateFromResult(r.Query, r.Repositories, r.Err, locale))
	}

	c.JSON(http.StatusOK, states)
}

func (s apiController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   version,
	})
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(model.StatusCode(err), model.NewAPIError(err))
}

// localeFor picks the locale from the lang query parameter, then the Accept-Language header
func localeFor(c *gin.Context, fallback string) format.Locale {
	if lang := c.Query("lang"); lang != "" {
		return format.LookupLocale(lang)
	}

	return format.MatchLocale(c.GetHeader("Accept-Language"), fallback)
}
