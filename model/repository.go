package model

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
)

// RepositorySummary is the display-ready form of a repository listed on the panel
type RepositorySummary struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Language    *string `json:"language,omitempty"` // language can be nil for repositories without code
	StarCount   int     `json:"stars"`
	ForkCount   int     `json:"forks"`
	HTMLURL     string  `json:"url"`

	// UpdatedAt is formatted relatively at render time only
	UpdatedAt time.Time `json:"updatedAt"`

	// DescriptionMissing is set when Description holds the placeholder
	DescriptionMissing bool `json:"descriptionMissing,omitempty"`
}

// NewRepositorySummary maps a repository returned by github
// the placeholder is used when the repository has no description
func NewRepositorySummary(r *github.Repository, placeholder string) (RepositorySummary, error) {
	if r == nil || strings.TrimSpace(r.GetName()) == "" {
		return RepositorySummary{}, fmt.Errorf("repository without name: %w", ErrInvalidData)
	}

	summary := RepositorySummary{
		Name:        r.GetName(),
		Description: r.GetDescription(),
		Language:    r.Language,
		StarCount:   r.GetStargazersCount(),
		ForkCount:   r.GetForksCount(),
		HTMLURL:     r.GetHTMLURL(),
		UpdatedAt:   r.GetUpdatedAt().Time,
	}

	if summary.Language != nil && *summary.Language == "" {
		summary.Language = nil
	}

	if strings.TrimSpace(summary.Description) == "" {
		summary.Description = placeholder
		summary.DescriptionMissing = true
	}

	return summary, nil
}

// LanguageName returns the language or an empty string
func (r RepositorySummary) LanguageName() string {
	if r.Language == nil {
		return ""
	}

	return *r.Language
}

// SortByStars orders repositories by star count, most starred first, and keeps at most limit of them.
// The sort is stable: repositories with the same star count keep their arrival order.
func SortByStars(repos []RepositorySummary, limit int) []RepositorySummary {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].StarCount > repos[j].StarCount
	})

	if limit >= 0 && len(repos) > limit {
		repos = repos[:limit]
	}

	return repos
}
