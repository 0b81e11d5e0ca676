package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rasperon/portfolio/config"
	"github.com/rasperon/portfolio/model"
	"github.com/rasperon/portfolio/panel"
	"github.com/rasperon/portfolio/view"
)

type PageController interface {
	Index(ctx *gin.Context)
	Panel(ctx *gin.Context)
}

type pageController struct {
	fetcher   panel.Fetcher
	livePanel *panel.Panel
	config    config.Config
}

func NewPageController(config config.Config, fetcher panel.Fetcher, livePanel *panel.Panel) PageController {
	return pageController{
		fetcher:   fetcher,
		livePanel: livePanel,
		config:    config,
	}
}

// Index renders the home page with the current state of the live panel
func (s pageController) Index(c *gin.Context) {
	locale := localeFor(c, s.config.Panel.Locale)

	c.HTML(http.StatusOK, view.IndexTemplate, view.NewPageView(s.config, s.livePanel.State(), locale, time.Now()))
}

// Panel renders a standalone panel fragment, waiting for the listing to be over
func (s pageController) Panel(c *gin.Context) {
	var query model.PanelQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortWithError(c, fmt.Errorf("%v: %w", err, model.ErrInvalidQuery))
		return
	}

	if query.Account == "" {
		query.Account = s.config.Panel.Account
	}

	locale := localeFor(c, s.config.Panel.Locale)

	p := panel.New(s.fetcher, locale, s.config.Panel.Limit)
	defer p.Close()

	state, err := p.Load(c.Request.Context(), query)
	if err != nil {
		// client went away, nothing left to render
		_ = c.Error(err)
		c.Status(http.StatusRequestTimeout)
		return
	}

	c.HTML(http.StatusOK, view.PanelTemplate, view.NewPanelView(state, locale, time.Now()))
}
