// Package panel keeps the display state of a repository panel.
//
// A panel is activated with an account and a limit: it switches to the loading
// state, lists the repositories in the background and ends either populated or
// in error. Only the most recent activation may change the state, so a slow
// response for a previous account never overwrites a newer one.
package panel

import (
	"context"
	"fmt"
	"sync"

	"github.com/rasperon/portfolio/format"
	"github.com/rasperon/portfolio/model"
	log "github.com/sirupsen/logrus"
)

// Fetcher lists the repositories displayed by a panel
type Fetcher interface {
	ListTopRepositories(ctx context.Context, query model.PanelQuery) ([]model.RepositorySummary, error)
}

type Panel struct {
	fetcher      Fetcher
	locale       format.Locale
	defaultLimit int

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	state      model.PanelState
}

func New(fetcher Fetcher, locale format.Locale, defaultLimit int) *Panel {
	return &Panel{
		fetcher:      fetcher,
		locale:       locale,
		defaultLimit: defaultLimit,
		state:        model.PanelState{Status: model.PanelLoading},
	}
}

// Activate switches the panel to the loading state for the query and starts listing its repositories.
// The previous activation, if still running, is cancelled and its result will be discarded.
// The returned channel is closed once this activation's listing is over, applied or not.
//
// ctx only carries values: the listing outlives it and is cancelled by the next activation or Close.
func (p *Panel) Activate(ctx context.Context, query model.PanelQuery) <-chan struct{} {
	query = query.WithDefaults(p.defaultLimit)
	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}

	p.generation++
	generation := p.generation
	p.cancel = cancel
	p.state = model.PanelState{
		Status:  model.PanelLoading,
		Account: query.Account,
		Limit:   query.Limit,
	}
	p.mu.Unlock()

	log.WithFields(log.Fields{
		"account":    query.Account,
		"limit":      query.Limit,
		"generation": generation,
	}).Debug("repository panel activated")

	done := make(chan struct{})

	go func() {
		defer close(done)
		defer cancel()

		repos, err := p.fetch(fetchCtx, query)
		p.apply(generation, query, repos, err)
	}()

	return done
}

// Load activates the panel and waits for the listing to be over or for ctx to be done.
// When ctx ends first the loading state is returned with the context error.
func (p *Panel) Load(ctx context.Context, query model.PanelQuery) (model.PanelState, error) {
	done := p.Activate(ctx, query)

	select {
	case <-done:
		return p.State(), nil
	case <-ctx.Done():
		return p.State(), ctx.Err()
	}
}

// State returns a copy of what the panel currently displays
func (p *Panel) State() model.PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()

	state := p.state
	if p.state.Repositories != nil {
		state.Repositories = append(make([]model.RepositorySummary, 0, len(p.state.Repositories)), p.state.Repositories...)
	}

	return state
}

// Close cancels the running listing, its result will not be applied
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}

	p.generation++
}

func (p *Panel) fetch(ctx context.Context, query model.PanelQuery) (repos []model.RepositorySummary, err error) {
	defer func() {
		if r := recover(); r != nil {
			repos = nil
			err = fmt.Errorf("%w: panic while listing repositories: %v", model.ErrFetch, r)
		}
	}()

	if err := query.Validate(); err != nil {
		return nil, err
	}

	return p.fetcher.ListTopRepositories(ctx, query)
}

func (p *Panel) apply(generation uint64, query model.PanelQuery, repos []model.RepositorySummary, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fields := log.Fields{
		"account":    query.Account,
		"generation": generation,
	}

	if generation != p.generation {
		log.WithFields(fields).Debug("discarding stale repository listing")
		return
	}

	p.cancel = nil
	p.state = StateFromResult(query, repos, err, p.locale)

	if err != nil {
		log.WithFields(fields).WithError(err).Error("unable to load repositories")
	}
}

// StateFromResult builds the terminal state of a listing: error with the localized message,
// or populated with the repositories sorted by stars and truncated to the limit
func StateFromResult(query model.PanelQuery, repos []model.RepositorySummary, err error, locale format.Locale) model.PanelState {
	if err != nil {
		return model.PanelState{
			Status:       model.PanelError,
			Account:      query.Account,
			Limit:        query.Limit,
			ErrorMessage: locale.LoadError,
		}
	}

	sorted := append(make([]model.RepositorySummary, 0, len(repos)), repos...)

	return model.PanelState{
		Status:       model.PanelPopulated,
		Account:      query.Account,
		Limit:        query.Limit,
		Repositories: model.SortByStars(sorted, query.Limit),
	}
}
