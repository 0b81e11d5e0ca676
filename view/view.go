// Package view renders the portfolio: html pages through gin's renderer and a terminal rendition of the panel.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"github.com/rasperon/portfolio/config"
	"github.com/rasperon/portfolio/format"
	"github.com/rasperon/portfolio/model"
)

const (
	IndexTemplate = "index.tmpl"
	PanelTemplate = "panel.tmpl"

	githubURL = "https://github.com/"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Templates parses the embedded templates, meant for gin's SetHTMLTemplate
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.tmpl"))
}

type CardView struct {
	Name        string
	Description string
	URL         string
	Updated     string
	Language    string
	ColorClass  string
	ColorHex    string
	Stars       int
	Forks       int
}

type PanelView struct {
	Account      string
	Limit        int
	Loading      bool
	Failed       bool
	ErrorMessage string
	Heading      string
	ViewAll      string
	AllReposURL  string
	Cards        []CardView
}

type ProfileView struct {
	Name      string
	Title     string
	AvatarURL string
	XURL      string
	GithubURL string
}

type HeroView struct {
	Heading     string
	Description string
	Email       string
	ButtonText  string
	ButtonURL   string
	CopyLabel   string
	CopiedLabel string
	Reviews     string
	Avatars     []string
	Stars       []int
}

type PageView struct {
	Lang    string
	Hero    HeroView
	Profile ProfileView
	Panel   PanelView
}

// NewPanelView prepares a panel state for display, dates are formatted relatively to now
func NewPanelView(state model.PanelState, locale format.Locale, now time.Time) PanelView {
	v := PanelView{
		Account:     state.Account,
		Limit:       state.Limit,
		Loading:     state.Status == model.PanelLoading,
		Failed:      state.Status == model.PanelError,
		Heading:     locale.Repositories,
		ViewAll:     locale.ViewAll,
		AllReposURL: githubURL + url.PathEscape(state.Account) + "?tab=repositories",
	}

	if v.Failed {
		v.ErrorMessage = locale.LoadError
		return v
	}

	if v.Loading {
		return v
	}

	v.Cards = make([]CardView, 0, len(state.Repositories))

	for _, r := range state.Repositories {
		description := r.Description
		if r.DescriptionMissing || description == "" {
			description = locale.NoDescription
		}

		color := format.LanguageColor(r.LanguageName())

		v.Cards = append(v.Cards, CardView{
			Name:        r.Name,
			Description: description,
			URL:         githubURL + url.PathEscape(state.Account) + "/" + url.PathEscape(r.Name),
			Updated:     format.RelativeTime(r.UpdatedAt, now, locale),
			Language:    r.LanguageName(),
			ColorClass:  color.Class,
			ColorHex:    color.Hex,
			Stars:       r.StarCount,
			Forks:       r.ForkCount,
		})
	}

	return v
}

// NewPageView assembles the home page: hero, profile card and repository panel
func NewPageView(cfg config.Config, state model.PanelState, locale format.Locale, now time.Time) PageView {
	// github serves the account avatar at https://github.com/{account}.png
	avatar := cfg.Profile.AvatarURL
	if avatar == "" {
		avatar = githubURL + url.PathEscape(cfg.Panel.Account) + ".png"
	}

	return PageView{
		Lang: locale.Code,
		Hero: HeroView{
			Heading:     cfg.Hero.Heading,
			Description: cfg.Hero.Description,
			Email:       cfg.Profile.Email,
			ButtonText:  cfg.Hero.ButtonText,
			ButtonURL:   cfg.Hero.ButtonURL,
			CopyLabel:   locale.CopyLabel,
			CopiedLabel: locale.CopiedLabel,
			Reviews:     fmt.Sprintf(locale.Reviews, cfg.Hero.ReviewCount),
			Avatars:     cfg.Hero.ReviewAvatars,
			Stars:       []int{1, 2, 3, 4, 5},
		},
		Profile: ProfileView{
			Name:      cfg.Profile.Name,
			Title:     cfg.Profile.Title,
			AvatarURL: avatar,
			XURL:      cfg.Profile.XURL,
			GithubURL: cfg.Profile.GithubURL,
		},
		Panel: NewPanelView(state, locale, now),
	}
}
