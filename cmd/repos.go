package cmd

import (
	"context"
	"time"

	"github.com/rasperon/portfolio/format"
	"github.com/rasperon/portfolio/model"
	"github.com/rasperon/portfolio/panel"
	"github.com/rasperon/portfolio/service"
	"github.com/rasperon/portfolio/view"
	"github.com/spf13/cobra"
)

var (
	reposLimit   int
	reposLang    string
	reposTimeout time.Duration
)

var reposCmd = &cobra.Command{
	Use:   "repos [account]",
	Short: "Print the most starred repositories of an account",
	Long: `Lists the repositories of a github account sorted by stars and prints them as cards.

Example:
  portfolio repos rasperon
  portfolio repos rasperon --limit 2 --lang tr`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRepos,
}

func init() {
	reposCmd.Flags().IntVarP(&reposLimit, "limit", "l", 0, "number of repositories to display (default from config)")
	reposCmd.Flags().StringVar(&reposLang, "lang", "", "display language, en or tr (default from config)")
	reposCmd.Flags().DurationVar(&reposTimeout, "timeout", 30*time.Second, "maximum time to wait for github")
}

func runRepos(cmd *cobra.Command, args []string) error {
	baseCtx := cmd.Context()
	if baseCtx == nil {
		baseCtx = context.Background()
	}

	ctx, cancel := context.WithTimeout(baseCtx, reposTimeout)
	defer cancel()

	cfg, githubClient, rateLimiter, err := setup(ctx)
	if err != nil {
		return err
	}

	query := model.PanelQuery{Account: cfg.Panel.Account, Limit: reposLimit}
	if len(args) == 1 {
		query.Account = args[0]
	}

	lang := reposLang
	if lang == "" {
		lang = cfg.Panel.Locale
	}

	locale := format.LookupLocale(lang)

	p := panel.New(service.NewGithubService(*cfg, githubClient, rateLimiter), locale, cfg.Panel.Limit)
	defer p.Close()

	state, err := p.Load(ctx, query)
	if err != nil {
		return err
	}

	return view.RenderTerminal(cmd.OutOrStdout(), view.NewPanelView(state, locale, time.Now()))
}
