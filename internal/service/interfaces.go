package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"amendement_fetcher/internal/domain"
	"amendement_fetcher/internal/publisher"
	"amendement_fetcher/internal/source"
)

type LectureStore interface {
	RefreshablePKs(ctx context.Context) ([]int64, error)
	Load(ctx context.Context, pk int64) (*domain.Lecture, error)
	LoadForUpdate(ctx context.Context, pk int64) (*domain.Lecture, error)
	SetAlertFlag(ctx context.Context, pk int64, flag bool) error
	DisableUpdate(ctx context.Context, pk int64) error
}

type AmendementRepository interface {
	source.Repository
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Record(ctx context.Context, event domain.Event) error
	PublishAlert(ctx context.Context, alert publisher.Alert) error
	Close() error
}
