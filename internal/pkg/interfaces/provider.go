package interfaces

import (
	"context"
	"time"

	"github.com/dmarkin/scorestream/internal/pkg/models"
)

// Provider is one external data source. A provider owns its authentication,
// endpoint paths and status-vocabulary mapping; Poll returns the full
// normalized snapshot for one cycle.
type Provider interface {
	// Name returns the provider name for logging.
	Name() string

	// Source identifies the provider in canonical records.
	Source() models.Source

	// Interval is the polling interval the scheduler drives this provider at.
	Interval() time.Duration

	// Poll fetches the provider's current fixtures and normalizes them. It
	// must not panic on malformed payloads; bad records are skipped and an
	// error is returned only when no snapshot could be produced at all.
	Poll(ctx context.Context) ([]models.Match, error)
}

// Enricher is implemented by providers that support background cache warming
// for sparse search results. Enrich must be cheap to skip: it only primes the
// cache for a subsequent query and its result is never awaited.
type Enricher interface {
	Enrich(ctx context.Context, query string) error
}

// FirstPartyStore is the read-only collaborator owning user-authored records.
type FirstPartyStore interface {
	FindMatches(ctx context.Context, query string) ([]models.Match, error)
	FindTeams(ctx context.Context, query string) ([]models.Team, error)
	FindPlayers(ctx context.Context, query string) ([]models.Player, error)
	FindSeries(ctx context.Context, query string) ([]models.Series, error)

	// ListCurrent returns first-party matches that are live or upcoming.
	ListCurrent(ctx context.Context) ([]models.Match, error)
}
