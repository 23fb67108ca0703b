package source_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"amendement_fetcher/internal/domain"
	"amendement_fetcher/internal/source"
	"amendement_fetcher/internal/source/mocks"
)

func newApplier(events source.EventSink) *source.Applier {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return source.NewApplier(events, nil, logger)
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestApplyChanges_IrrecevableDetachesAmendement(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	repo := mocks.NewMockRepository(ctrl)
	events := mocks.NewMockEventSink(ctrl)

	subdiv := domain.SubDiv{Type: "article", Num: "3"}
	article := &domain.Article{PK: 10, LecturePK: 1, SubDiv: subdiv}
	batchPK := int64(5)
	amendement := &domain.Amendement{
		PK:        100,
		LecturePK: 1,
		Num:       42,
		Article:   article,
		Corps:     "<p>corps</p>",
		BatchPK:   &batchPK,
		UserTable: strPtr("claire"),
	}
	lecture := &domain.Lecture{PK: 1, Amendements: []*domain.Amendement{amendement}}

	changes := source.NewCollectedChanges()
	changes.Actions = []source.Action{
		&source.UpdateAmendement{
			Num: 42,
			AmendementFields: source.AmendementFields{
				SubDiv: subdiv,
				Corps:  "<p>corps</p>",
				Sort:   "Irrecevable",
			},
		},
	}

	repo.EXPECT().FindOrCreateArticle(ctx, int64(1), subdiv).Return(article, nil)
	events.EXPECT().Record(ctx,
		domain.NewAmendementEvent(domain.EventSortUpdateUnbatched, amendement).With("status", "Irrecevable"),
	).Return(nil)
	events.EXPECT().Record(ctx,
		domain.NewAmendementEvent(domain.EventBatchUnset, amendement),
	).Return(nil)
	repo.EXPECT().ClearBatch(ctx, amendement).Return(nil)
	events.EXPECT().Record(ctx,
		domain.NewAmendementEvent(domain.EventAmendementIrrecevable, amendement).With("sort", "Irrecevable"),
	).Return(nil)
	events.EXPECT().Record(ctx,
		domain.NewAmendementEvent(domain.EventAmendementTransfere, amendement).
			With("old_value", "claire").
			With("new_value", ""),
	).Return(nil)
	repo.EXPECT().ClearUserTable(ctx, amendement).Return(nil)
	repo.EXPECT().SaveAmendement(ctx, amendement).Return(nil)

	result, err := newApplier(events).ApplyChanges(ctx, repo, lecture, changes)
	require.NoError(t, err)

	assert.Equal(t, "Irrecevable", amendement.Sort)
	assert.Nil(t, amendement.BatchPK)
	assert.Nil(t, amendement.UserTable)
	assert.Len(t, result.Amendements, 1)
	assert.Zero(t, result.Created)
}

func TestApplyChanges_RectifRecordedWithEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	repo := mocks.NewMockRepository(ctrl)
	events := mocks.NewMockEventSink(ctrl)

	subdiv := domain.SubDiv{Type: "article", Num: "7"}
	article := &domain.Article{PK: 20, LecturePK: 1, SubDiv: subdiv}
	amendement := &domain.Amendement{
		PK:        200,
		LecturePK: 1,
		Num:       177,
		Rectif:    1,
		Article:   article,
		Corps:     "<p>corps</p>",
	}
	lecture := &domain.Lecture{PK: 1, Amendements: []*domain.Amendement{amendement}}

	changes := source.NewCollectedChanges()
	changes.Actions = []source.Action{
		&source.UpdateAmendement{
			Num: 177,
			AmendementFields: source.AmendementFields{
				SubDiv: subdiv,
				Rectif: 2,
				Corps:  "<p>corps</p>",
			},
		},
	}

	repo.EXPECT().FindOrCreateArticle(ctx, int64(1), subdiv).Return(article, nil)
	events.EXPECT().Record(ctx,
		domain.NewAmendementEvent(domain.EventAmendementRectifie, amendement).With("rectif", "2"),
	).Return(nil)
	repo.EXPECT().SaveAmendement(ctx, amendement).Return(nil)

	result, err := newApplier(events).ApplyChanges(ctx, repo, lecture, changes)
	require.NoError(t, err)

	assert.Equal(t, 2, amendement.Rectif)
	assert.Len(t, result.Amendements, 1)
	assert.Zero(t, result.Created)
}

func TestApplyChanges_PositionsClearedBeforeAssign(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	repo := mocks.NewMockRepository(ctrl)
	events := mocks.NewMockEventSink(ctrl)

	a42 := &domain.Amendement{LecturePK: 1, Num: 42, Position: intPtr(1)}
	a57 := &domain.Amendement{LecturePK: 1, Num: 57, Position: intPtr(2)}
	lecture := &domain.Lecture{PK: 1, Amendements: []*domain.Amendement{a42, a57}}

	changes := source.NewCollectedChanges()
	changes.Unchanged = []int{42, 57}
	changes.PositionChanges = map[int]*int{42: intPtr(2), 57: intPtr(1)}

	gomock.InOrder(
		repo.EXPECT().ClearPositions(ctx, int64(1), []int{42, 57}).Return(nil),
		repo.EXPECT().SetPosition(ctx, int64(1), 42, intPtr(2)).Return(nil),
		repo.EXPECT().SetPosition(ctx, int64(1), 57, intPtr(1)).Return(nil),
	)
	events.EXPECT().Record(ctx, domain.NewEvent(domain.EventOrdreDiscussionModifie, 1)).Return(nil)

	result, err := newApplier(events).ApplyChanges(ctx, repo, lecture, changes)
	require.NoError(t, err)

	assert.Equal(t, 2, *a42.Position)
	assert.Equal(t, 1, *a57.Position)
	assert.Len(t, result.Amendements, 2)
}

func TestApplyChanges_LeavingDiscussionClearsPosition(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	repo := mocks.NewMockRepository(ctrl)
	events := mocks.NewMockEventSink(ctrl)

	a42 := &domain.Amendement{LecturePK: 1, Num: 42, Position: intPtr(1)}
	lecture := &domain.Lecture{PK: 1, Amendements: []*domain.Amendement{a42}}

	changes := source.NewCollectedChanges()
	changes.Unchanged = []int{42}
	changes.PositionChanges = map[int]*int{42: nil}

	repo.EXPECT().ClearPositions(ctx, int64(1), []int{42}).Return(nil)
	repo.EXPECT().SetPosition(ctx, int64(1), 42, nil).Return(nil)
	events.EXPECT().Record(ctx, domain.NewEvent(domain.EventOrdreDiscussionModifie, 1)).Return(nil)

	_, err := newApplier(events).ApplyChanges(ctx, repo, lecture, changes)
	require.NoError(t, err)

	assert.Nil(t, a42.Position)
}

func TestApplyChanges_NoPositionChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	repo := mocks.NewMockRepository(ctrl)
	events := mocks.NewMockEventSink(ctrl)

	a42 := &domain.Amendement{LecturePK: 1, Num: 42, Position: intPtr(1)}
	lecture := &domain.Lecture{PK: 1, Amendements: []*domain.Amendement{a42}}

	changes := source.NewCollectedChanges()
	changes.Unchanged = []int{42}

	result, err := newApplier(events).ApplyChanges(ctx, repo, lecture, changes)
	require.NoError(t, err)

	assert.Equal(t, 1, *a42.Position)
	assert.Len(t, result.Amendements, 1)
}

func TestApplyChanges_UpdateForUnknownNumIsErrored(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	repo := mocks.NewMockRepository(ctrl)
	events := mocks.NewMockEventSink(ctrl)

	lecture := &domain.Lecture{PK: 1}
	changes := source.NewCollectedChanges()
	changes.Actions = []source.Action{
		&source.UpdateAmendement{Num: 99},
	}

	result, err := newApplier(events).ApplyChanges(ctx, repo, lecture, changes)
	require.NoError(t, err)

	assert.Equal(t, []string{"99"}, result.Errored)
}
