package source

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"amendement_fetcher/internal/domain"
)

// Sorts that pull an amendement out of its batch when reached, checked in
// this order.
var unbatchingSorts = []struct{ key, status string }{
	{"irrecevable", "Irrecevable"},
	{"retiré", "Retiré"},
	{"tombé", "Tombé"},
}

// Applier executes collected changes against a lecture. It holds the change
// detection primitives shared by both chambres: every update goes through a
// compare-then-set so re-applying the same data is a no-op.
type Applier struct {
	events   EventSink
	progress ProgressReporter
	logger   *slog.Logger
}

func NewApplier(events EventSink, progress ProgressReporter, logger *slog.Logger) *Applier {
	return &Applier{events: events, progress: progress, logger: logger}
}

// ApplyChanges applies the collected actions, then reconciles positions under
// the two-pass protocol: all moved amendements are cleared first (and flushed)
// so that no committed state ever holds two amendements on one position.
func (ap *Applier) ApplyChanges(ctx context.Context, repo Repository, lecture *domain.Lecture, changes *CollectedChanges) (FetchResult, error) {
	result := FetchResult{Errored: changes.Errored}

	for _, num := range changes.Unchanged {
		if amendement := lecture.FindAmendement(num); amendement != nil {
			result.Amendements = append(result.Amendements, amendement)
		}
	}

	for _, action := range changes.Actions {
		applied, err := action.Apply(ctx, ap, repo, lecture)
		if err != nil {
			return result, err
		}
		result = result.Merge(applied)
	}

	if err := ap.applyPositionChanges(ctx, repo, lecture, changes.PositionChanges); err != nil {
		return result, err
	}

	if ap.progress != nil {
		ap.progress.ResetFetchProgress(ctx, lecture.PK)
	}

	return result, nil
}

func (ap *Applier) applyPositionChanges(ctx context.Context, repo Repository, lecture *domain.Lecture, positionChanges map[int]*int) error {
	var moved []*domain.Amendement
	for _, amendement := range lecture.Amendements {
		if _, ok := positionChanges[amendement.Num]; ok {
			moved = append(moved, amendement)
		}
	}
	if len(moved) == 0 {
		return nil
	}

	// Pass 1: remember old positions, then clear them all in one flush.
	oldPositions := make(map[int]*int, len(moved))
	nums := make([]int, 0, len(moved))
	for _, amendement := range moved {
		oldPositions[amendement.Num] = amendement.Position
		amendement.Position = nil
		nums = append(nums, amendement.Num)
	}
	if err := repo.ClearPositions(ctx, lecture.PK, nums); err != nil {
		return err
	}

	// Pass 2: assign the new positions.
	positionChanged := 0
	for _, amendement := range moved {
		position := positionChanges[amendement.Num]
		if !eqIntPtr(amendement.Position, position) || !eqIntPtr(oldPositions[amendement.Num], position) {
			amendement.Position = position
			positionChanged++
		}
		if err := repo.SetPosition(ctx, lecture.PK, amendement.Num, amendement.Position); err != nil {
			return err
		}
	}

	if positionChanged > 0 {
		return ap.events.Record(ctx, domain.NewEvent(domain.EventOrdreDiscussionModifie, lecture.PK))
	}
	return nil
}

func (ap *Applier) updateRectif(ctx context.Context, amendement *domain.Amendement, rectif int) error {
	if rectif == amendement.Rectif {
		return nil
	}
	event := domain.NewAmendementEvent(domain.EventAmendementRectifie, amendement).
		With("rectif", strconv.Itoa(rectif))
	if err := ap.events.Record(ctx, event); err != nil {
		return err
	}
	amendement.Rectif = rectif
	return nil
}

func (ap *Applier) updateSort(ctx context.Context, repo Repository, amendement *domain.Amendement, sort string) error {
	if sort == amendement.Sort {
		return nil
	}
	lowerSort := strings.ToLower(sort)

	if amendement.BatchPK != nil {
		for _, unbatching := range unbatchingSorts {
			if !strings.Contains(lowerSort, unbatching.key) {
				continue
			}
			event := domain.NewAmendementEvent(domain.EventSortUpdateUnbatched, amendement).
				With("status", unbatching.status)
			if err := ap.events.Record(ctx, event); err != nil {
				return err
			}
			if err := ap.unbatch(ctx, repo, amendement); err != nil {
				return err
			}
			break
		}
	}

	if strings.Contains(lowerSort, "irrecevable") {
		event := domain.NewAmendementEvent(domain.EventAmendementIrrecevable, amendement).
			With("sort", sort)
		if err := ap.events.Record(ctx, event); err != nil {
			return err
		}
		// An irrecevable amendement goes back to the unattributed index.
		if amendement.UserTable != nil {
			transfer := domain.NewAmendementEvent(domain.EventAmendementTransfere, amendement).
				With("old_value", *amendement.UserTable).
				With("new_value", "")
			if err := ap.events.Record(ctx, transfer); err != nil {
				return err
			}
			amendement.UserTable = nil
			if err := repo.ClearUserTable(ctx, amendement); err != nil {
				return err
			}
		}
	}

	amendement.Sort = sort
	return nil
}

func (ap *Applier) updateCorps(ctx context.Context, amendement *domain.Amendement, corps string) error {
	if corps == amendement.Corps {
		return nil
	}
	if err := ap.events.Record(ctx, domain.NewAmendementEvent(domain.EventCorpsAmendementModifie, amendement)); err != nil {
		return err
	}
	amendement.Corps = corps
	return nil
}

func (ap *Applier) updateExpose(ctx context.Context, amendement *domain.Amendement, expose string) error {
	if expose == amendement.Expose {
		return nil
	}
	if err := ap.events.Record(ctx, domain.NewAmendementEvent(domain.EventExposeAmendementModifie, amendement)); err != nil {
		return err
	}
	amendement.Expose = expose
	return nil
}

func (ap *Applier) unbatchOnArticleChange(ctx context.Context, repo Repository, amendement *domain.Amendement, article *domain.Article) error {
	event := domain.NewAmendementEvent(domain.EventArticleUpdateUnbatched, amendement).
		With("article", article.SubDiv.String())
	if err := ap.events.Record(ctx, event); err != nil {
		return err
	}
	return ap.unbatch(ctx, repo, amendement)
}

func (ap *Applier) unbatch(ctx context.Context, repo Repository, amendement *domain.Amendement) error {
	if err := ap.events.Record(ctx, domain.NewAmendementEvent(domain.EventBatchUnset, amendement)); err != nil {
		return err
	}
	amendement.BatchPK = nil
	return repo.ClearBatch(ctx, amendement)
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
