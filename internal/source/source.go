package source

//go:generate mockgen -source=source.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"amendement_fetcher/internal/domain"
)

// MaxDefault404 bounds the exploration of amendement numbers beyond the known
// discussion list: we stop after this many consecutive not-founds.
const MaxDefault404 = 30

// RemoteSource is the common two-phase contract over both chambres.
//
// CollectChanges is network-bound and pure with respect to the database: it
// only reads the in-memory lecture snapshot. ApplyChanges is the only phase
// allowed to mutate storage, so the caller can keep lock windows short.
type RemoteSource interface {
	Chambre() domain.Chambre

	// Prepare optionally warms caches before the real fetch. Failures are
	// logged, never fatal.
	Prepare(ctx context.Context, lecture *domain.Lecture)

	CollectChanges(ctx context.Context, lecture *domain.Lecture, max404 int) (*CollectedChanges, error)

	ApplyChanges(ctx context.Context, repo Repository, lecture *domain.Lecture, changes *CollectedChanges) (FetchResult, error)
}

// Repository is the persistence collaborator used during the apply phase.
// Implementations must enforce the (num, lecture) and (position, lecture)
// uniqueness invariants at the storage layer.
type Repository interface {
	FindOrCreateArticle(ctx context.Context, lecturePK int64, subdiv domain.SubDiv) (*domain.Article, error)
	CreateAmendement(ctx context.Context, a *domain.Amendement) error
	SaveAmendement(ctx context.Context, a *domain.Amendement) error

	// ClearPositions nulls the positions of the given amendements and flushes
	// immediately, so that reassigning positions afterwards can never produce
	// two amendements with the same position in a committed state.
	ClearPositions(ctx context.Context, lecturePK int64, nums []int) error
	SetPosition(ctx context.Context, lecturePK int64, num int, position *int) error

	ClearBatch(ctx context.Context, a *domain.Amendement) error
	ClearUserTable(ctx context.Context, a *domain.Amendement) error
}

// EventSink records structured domain events, fire-and-forget.
type EventSink interface {
	Record(ctx context.Context, event domain.Event) error
}

// ProgressReporter exposes fetch progress for UI polling.
type ProgressReporter interface {
	SetFetchProgress(ctx context.Context, lecturePK int64, position, total int)
	ResetFetchProgress(ctx context.Context, lecturePK int64)
}

// RefData resolves reference data scraped separately from the open-data
// dumps: AN organes (parliamentary groups) and Sénat senator records.
type RefData interface {
	OrganeLabel(ctx context.Context, uid string) (string, bool)
	SenateurGroupe(ctx context.Context, matricule string) (string, bool)
}
