package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-github/v66/github"
	githubMock "github.com/migueleliasweb/go-github-mock/src/mock"
	"github.com/rasperon/portfolio/config"
	"github.com/rasperon/portfolio/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func repositoriesWithStars(stars ...int) []*github.Repository {
	repos := make([]*github.Repository, 0, len(stars))

	for i, s := range stars {
		repos = append(repos, &github.Repository{
			Name:            github.String("repo" + strconv.Itoa(i)),
			Description:     github.String("description " + strconv.Itoa(i)),
			StargazersCount: github.Int(s),
			ForksCount:      github.Int(i),
		})
	}

	return repos
}

func starsOf(repos []model.RepositorySummary) []int {
	stars := make([]int, 0, len(repos))
	for _, r := range repos {
		stars = append(stars, r.StarCount)
	}

	return stars
}

func namesOf(repos []model.RepositorySummary) []string {
	names := make([]string, 0, len(repos))
	for _, r := range repos {
		names = append(names, r.Name)
	}

	return names
}

func newMockedService(t *testing.T, rateLimit int, handler http.HandlerFunc) GithubService {
	t.Helper()

	mockedHTTPClient := githubMock.NewMockedHTTPClient(
		githubMock.WithRequestMatchHandler(
			githubMock.GetUsersReposByUsername,
			handler,
		),
	)

	mockedRateLimiter := rate.NewLimiter(rate.Every(time.Hour), rateLimit)
	mockedGithubClient := github.NewClient(mockedHTTPClient)
	conf := config.GetDefault()

	return NewGithubService(*conf, mockedGithubClient, mockedRateLimiter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, payload any) {
	_, err := w.Write(githubMock.MustMarshal(payload))

	if err != nil {
		t.Error("unable to configure mock http client")
	}
}

// TestListTopRepositories will test function ListTopRepositories
func TestListTopRepositories(t *testing.T) {
	tests := []struct {
		name           string
		query          model.PanelQuery
		mockResponse   []*github.Repository
		expectedStars  []int
		expectedNames  []string
		expectError    bool
		expectedErr    error
	}{
		{
			name:          "Sorted by stars and truncated to the default limit",
			query:         model.PanelQuery{Account: "rasperon", Limit: 4},
			mockResponse:  repositoriesWithStars(3, 1, 4, 1, 5),
			expectedStars: []int{5, 4, 3, 1},
			// the first of the two repositories with one star arrived first
			expectedNames: []string{"repo4", "repo2", "repo0", "repo1"},
		},
		{
			name:          "Limit of two keeps the two most starred",
			query:         model.PanelQuery{Account: "rasperon", Limit: 2},
			mockResponse:  repositoriesWithStars(3, 1, 4, 1, 5),
			expectedStars: []int{5, 4},
			expectedNames: []string{"repo4", "repo2"},
		},
		{
			name:          "Fewer repositories than the limit",
			query:         model.PanelQuery{Account: "rasperon", Limit: 4},
			mockResponse:  repositoriesWithStars(7),
			expectedStars: []int{7},
			expectedNames: []string{"repo0"},
		},
		{
			name:          "Account without repositories",
			query:         model.PanelQuery{Account: "rasperon", Limit: 4},
			mockResponse:  []*github.Repository{},
			expectedStars: []int{},
			expectedNames: []string{},
		},
		{
			name:  "Repository without name invalidates the whole list",
			query: model.PanelQuery{Account: "rasperon", Limit: 4},
			mockResponse: []*github.Repository{
				{Name: github.String("ok"), StargazersCount: github.Int(1)},
				{StargazersCount: github.Int(2)},
			},
			expectError: true,
			expectedErr: model.ErrInvalidData,
		},
		{
			name:        "Invalid query is rejected before any request",
			query:       model.PanelQuery{Account: "", Limit: 4},
			expectError: true,
			expectedErr: model.ErrInvalidQuery,
		},
	}

	// execute tests
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMockedService(t, 60, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "stars", r.URL.Query().Get("sort"))
				assert.Equal(t, "10", r.URL.Query().Get("per_page"))
				writeJSON(t, w, tt.mockResponse)
			})

			repos, err := svc.ListTopRepositories(context.Background(), tt.query)

			if tt.expectError {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, repos)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStars, starsOf(repos))
			assert.Equal(t, tt.expectedNames, namesOf(repos))
		})
	}
}

func TestListTopRepositoriesPlaceholder(t *testing.T) {
	svc := newMockedService(t, 60, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, []*github.Repository{{Name: github.String("dotfiles"), StargazersCount: github.Int(1)}})
	})

	repos, err := svc.ListTopRepositories(context.Background(), model.PanelQuery{Account: "rasperon", Limit: 4})

	require.NoError(t, err)
	require.Len(t, repos, 1)
	assert.Equal(t, "No description", repos[0].Description)
	assert.True(t, repos[0].DescriptionMissing)
}

func TestListTopRepositoriesFailures(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		expectedErr error
	}{
		{
			name: "Not found account",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			},
			expectedErr: model.ErrFetch,
		},
		{
			name: "Server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectedErr: model.ErrFetch,
		},
		{
			name: "Malformed payload",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"not": "a list"`))
			},
			expectedErr: model.ErrFetch,
		},
		{
			name: "Github rate limit",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("X-RateLimit-Limit", "60")
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"message":"API rate limit exceeded"}`))
			},
			expectedErr: model.ErrRateLimitReached,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMockedService(t, 60, tt.handler)

			repos, err := svc.ListTopRepositories(context.Background(), model.PanelQuery{Account: "rasperon", Limit: 4})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Empty(t, repos)
		})
	}
}

func TestListTopRepositoriesLocalRateLimit(t *testing.T) {
	calls := 0
	svc := newMockedService(t, 1, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		writeJSON(t, w, repositoriesWithStars(1))
	})

	query := model.PanelQuery{Account: "rasperon", Limit: 4}

	_, err := svc.ListTopRepositories(context.Background(), query)
	require.NoError(t, err)

	_, err = svc.ListTopRepositories(context.Background(), query)
	assert.ErrorIs(t, err, model.ErrRateLimitReached)
	assert.Equal(t, 1, calls)
}

func TestListTopRepositoriesBatch(t *testing.T) {
	svc := newMockedService(t, 60, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, repositoriesWithStars(1, 9, 5))
	})

	queries := []model.PanelQuery{
		{Account: "first", Limit: 1},
		{Account: "", Limit: 2},
		{Account: "third", Limit: 2},
	}

	results := svc.ListTopRepositoriesBatch(context.Background(), queries)

	require.Len(t, results, 3)

	assert.Equal(t, queries[0], results[0].Query)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, []int{9}, starsOf(results[0].Repositories))

	assert.ErrorIs(t, results[1].Err, model.ErrInvalidQuery)
	assert.Empty(t, results[1].Repositories)

	assert.NoError(t, results[2].Err)
	assert.Equal(t, []int{9, 5}, starsOf(results[2].Repositories))
}

func TestNewGithubClientWithToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ghp_test", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/v3/users/rasperon/repos", r.URL.Path)
		writeJSON(t, w, repositoriesWithStars(2))
	}))
	defer server.Close()

	conf := config.GetDefault()
	conf.Github.Token = "ghp_test"
	conf.Github.BaseURL = server.URL + "/api/v3/"

	githubClient, err := NewGithubClient(context.Background(), *conf)
	require.NoError(t, err)

	svc := NewGithubService(*conf, githubClient, rate.NewLimiter(rate.Every(time.Hour), 10))
	repos, err := svc.ListTopRepositories(context.Background(), model.PanelQuery{Account: "rasperon", Limit: 4})

	require.NoError(t, err)
	assert.Equal(t, []int{2}, starsOf(repos))
}

func TestNewRateLimiter(t *testing.T) {
	t.Run("Seeded from github quota", func(t *testing.T) {
		mockedHTTPClient := githubMock.NewMockedHTTPClient(
			githubMock.WithRequestMatchHandler(
				githubMock.GetRateLimit,
				http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					writeJSON(t, w, map[string]any{
						"resources": github.RateLimits{Core: &github.Rate{Limit: 60, Remaining: 58}},
					})
				}),
			),
		)

		limiter := NewRateLimiter(context.Background(), github.NewClient(mockedHTTPClient))

		assert.Equal(t, 60, limiter.Burst())
		assert.True(t, limiter.AllowN(time.Now(), 58))
		assert.False(t, limiter.Allow())
	})

	t.Run("Fallback when github is unreachable", func(t *testing.T) {
		mockedHTTPClient := githubMock.NewMockedHTTPClient(
			githubMock.WithRequestMatchHandler(
				githubMock.GetRateLimit,
				http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusServiceUnavailable)
				}),
			),
		)

		limiter := NewRateLimiter(context.Background(), github.NewClient(mockedHTTPClient))

		assert.Equal(t, fallbackRateLimit, limiter.Burst())
	})
}
