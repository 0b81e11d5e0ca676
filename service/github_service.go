package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v66/github"
	"github.com/rasperon/portfolio/config"
	"github.com/rasperon/portfolio/format"
	"github.com/rasperon/portfolio/model"
	"github.com/remeh/sizedwaitgroup"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultListPageSize = 10
	githubClientTimeout = 30 * time.Second

	// unauthenticated github quota, used when the real one cannot be loaded
	fallbackRateLimit = 60
)

type GithubService interface {
	ListTopRepositories(ctx context.Context, query model.PanelQuery) ([]model.RepositorySummary, error)
	ListTopRepositoriesBatch(ctx context.Context, queries []model.PanelQuery) []BatchResult

	HandleRequestErrors(err error) error
}

// BatchResult is the outcome of one query of a batch, Err is nil on success
type BatchResult struct {
	Query        model.PanelQuery
	Repositories []model.RepositorySummary
	Err          error
}

type githubService struct {
	githubClient      *github.Client
	githubRateLimiter *rate.Limiter
	config            config.Config
	placeholder       string
}

// every listing costs one request on the core github quota
// unauthenticated = 60 calls per hour, authenticated = 5000 calls per hour
func NewGithubService(config config.Config, githubClient *github.Client, rateLimiter *rate.Limiter) GithubService {
	return githubService{
		githubClient:      githubClient,
		githubRateLimiter: rateLimiter,
		config:            config,
		placeholder:       format.LookupLocale(config.Panel.Locale).NoDescription,
	}
}

// NewGithubClient builds the github client, authenticated with an oauth2 static token when one is configured
func NewGithubClient(ctx context.Context, cfg config.Config) (*github.Client, error) {
	httpClient := &http.Client{Timeout: githubClientTimeout}

	if cfg.Github.Token != "" {
		log.Debug("will setup github client with authorization token")
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Github.Token}))
		httpClient.Timeout = githubClientTimeout
	}

	githubClient := github.NewClient(httpClient)

	if cfg.Github.BaseURL != "" {
		return githubClient.WithEnterpriseURLs(cfg.Github.BaseURL, cfg.Github.BaseURL)
	}

	return githubClient, nil
}

// NewRateLimiter seeds a local rate limiter with the current github quota
// tokens already consumed (by other clients sharing the token) are removed from the bucket
func NewRateLimiter(ctx context.Context, githubClient *github.Client) *rate.Limiter {
	log.Debug("loading current rate limit from github")

	rateLimits, _, err := githubClient.RateLimit.Get(ctx)
	if err != nil || rateLimits.GetCore() == nil || rateLimits.GetCore().Limit <= 0 {
		log.WithError(err).Warning("unable to load current github rate limits, using the unauthenticated quota")
		return rate.NewLimiter(rate.Every(time.Hour/fallbackRateLimit), fallbackRateLimit)
	}

	core := rateLimits.GetCore()

	log.WithFields(log.Fields{
		"totalAvailable":    core.Limit,
		"remainingRequests": core.Remaining,
	}).Debug("will setup local rate limiter with rate limits infos from github")

	rateLimiter := rate.NewLimiter(rate.Every(time.Hour/time.Duration(core.Limit)), core.Limit)

	if used := core.Limit - core.Remaining; used > 0 {
		rateLimiter.AllowN(time.Now(), used)
	}

	return rateLimiter
}

// ListTopRepositories lists the repositories of an account, most starred first, truncated to the query limit.
// The result is all or nothing: on any error the returned list is empty.
func (s githubService) ListTopRepositories(ctx context.Context, query model.PanelQuery) ([]model.RepositorySummary, error) {
	if err := query.Validate(); err != nil {
		return []model.RepositorySummary{}, err
	}

	if !s.githubRateLimiter.Allow() {
		log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return []model.RepositorySummary{}, model.ErrRateLimitReached
	}

	pageSize := s.config.Github.ListPageSize
	if pageSize <= 0 {
		pageSize = defaultListPageSize
	}

	log.WithFields(log.Fields{
		"account":  query.Account,
		"limit":    query.Limit,
		"pageSize": pageSize,
	}).Info("fetch most starred repositories from github")

	// github pre-sorts by stars, the final order is still computed locally
	repos, _, err := s.githubClient.Repositories.ListByUser(
		ctx,
		query.Account,
		&github.RepositoryListByUserOptions{
			Sort: "stars",
			ListOptions: github.ListOptions{
				Page:    1,
				PerPage: pageSize,
			},
		},
	)

	if err != nil {
		return []model.RepositorySummary{}, s.HandleRequestErrors(err)
	}

	summaries := make([]model.RepositorySummary, 0, len(repos))

	for i, r := range repos {
		summary, err := model.NewRepositorySummary(r, s.placeholder)

		if err != nil {
			log.WithFields(log.Fields{
				"account":  query.Account,
				"position": i,
			}).WithError(err).Debug("repository found with invalid information")

			return []model.RepositorySummary{}, err
		}

		summaries = append(summaries, summary)
	}

	return model.SortByStars(summaries, query.Limit), nil
}

// ListTopRepositoriesBatch runs several listings in parallel, bounded by MaxParallelTasksAllowed.
// Results keep the order of the queries.
func (s githubService) ListTopRepositoriesBatch(ctx context.Context, queries []model.PanelQuery) []BatchResult {
	parallel := s.config.Tasks.MaxParallelTasksAllowed
	if parallel < 1 {
		parallel = 1
	}

	swg := sizedwaitgroup.New(parallel)
	results := make([]BatchResult, len(queries))

	for i, q := range queries {
		swg.Add()

		go func(i int, q model.PanelQuery) {
			defer swg.Done()

			repos, err := s.ListTopRepositories(ctx, q)
			results[i] = BatchResult{Query: q, Repositories: repos, Err: err}
		}(i, q)
	}

	log.WithField("queries", len(queries)).Debug("waiting for all batch listings to be finished")
	swg.Wait()

	return results
}

// HandleRequestErrors manage errors including github rate limit errors at the same location
// If error is a rate limit error, this function will drain the local rate limiter
// this can help us to keep the local rate limiter up to date
func (s githubService) HandleRequestErrors(err error) error {
	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if r := s.githubRateLimiter.ReserveN(time.Now(), s.githubRateLimiter.Burst()); !r.OK() {
			return model.ErrRateLimiter
		}

		log.Warning("the Github rate limit has been reached. Use a token or wait until the limit reset")
		return model.ErrRateLimitReached
	}

	if errors.Is(err, context.Canceled) {
		log.Debug("github request cancelled")
		return fmt.Errorf("%w: %w", model.ErrFetch, err)
	}

	log.WithError(err).Error("error catched when fetching data from github")
	return fmt.Errorf("%w: %v", model.ErrFetch, err)
}
