package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"amendement_fetcher/internal/config"
	"amendement_fetcher/internal/domain"
	"amendement_fetcher/internal/publisher"
	"amendement_fetcher/internal/source"
)

// FetchService runs the fetch cycle for lectures: prepare, collect, then
// apply inside a transaction so database locks stay short while the slow
// network work happens unlocked.
type FetchService struct {
	lectures  LectureStore
	repo      AmendementRepository
	txManager TransactionManager
	sources   map[domain.Chambre]source.RemoteSource
	publisher Publisher
	logger    *slog.Logger
	config    config.FetchConfig

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewFetchService(
	lectures LectureStore,
	repo AmendementRepository,
	txManager TransactionManager,
	sources []source.RemoteSource,
	pub Publisher,
	logger *slog.Logger,
	cfg config.FetchConfig,
) *FetchService {
	byChambre := make(map[domain.Chambre]source.RemoteSource, len(sources))
	for _, src := range sources {
		byChambre[src.Chambre()] = src
	}
	return &FetchService{
		lectures:  lectures,
		repo:      repo,
		txManager: txManager,
		sources:   byChambre,
		publisher: pub,
		logger:    logger,
		config:    cfg,
		locks:     map[int64]*sync.Mutex{},
	}
}

// lectureLock serializes fetch cycles per lecture within this process.
// Cross-process serialization happens through the advisory lock taken by
// LoadForUpdate.
func (s *FetchService) lectureLock(pk int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[pk]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[pk] = lock
	}
	return lock
}

// FetchAmendements runs one full fetch cycle for a lecture. It reports
// whether the lecture was up to date with everything retrieved cleanly.
func (s *FetchService) FetchAmendements(ctx context.Context, lecturePK int64) (bool, error) {
	lock := s.lectureLock(lecturePK)
	lock.Lock()
	defer lock.Unlock()

	lecture, err := s.lectures.Load(ctx, lecturePK)
	if err != nil {
		return false, fmt.Errorf("load lecture %d: %w", lecturePK, err)
	}

	src, ok := s.sources[lecture.Chambre]
	if !ok {
		return false, fmt.Errorf("no source for chambre %q", lecture.Chambre)
	}

	logger := s.logger.With("lecture", lecture.String(), "chambre", string(lecture.Chambre))

	prepareStart := time.Now()
	src.Prepare(ctx, lecture)
	logger.Info("prepare done", "duration", time.Since(prepareStart))

	collectStart := time.Now()
	changes, err := src.CollectChanges(ctx, lecture, s.config.Max404)
	if err != nil {
		return false, fmt.Errorf("collect changes for lecture %d: %w", lecturePK, err)
	}
	logger.Info("collect done",
		"duration", time.Since(collectStart),
		"actions", len(changes.Actions),
		"unchanged", len(changes.Unchanged),
	)

	for _, alert := range changes.Alerts {
		s.alert(ctx, lecture, alert)
	}

	// Apply against a fresh snapshot: collect ran unlocked and the webapp may
	// have touched the lecture meanwhile.
	var changed bool
	applyStart := time.Now()
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		fresh, err := s.lectures.LoadForUpdate(txCtx, lecturePK)
		if err != nil {
			return err
		}
		result, err := src.ApplyChanges(txCtx, s.repo, fresh, changes)
		if err != nil {
			return err
		}
		changed = s.recordOutcome(txCtx, fresh, result)
		return s.autoDisableWhenSorted(txCtx, fresh)
	})
	if err != nil {
		return false, fmt.Errorf("apply changes for lecture %d: %w", lecturePK, err)
	}
	logger.Info("apply done", "duration", time.Since(applyStart), "changed", changed)

	return changed, nil
}

func (s *FetchService) recordOutcome(ctx context.Context, lecture *domain.Lecture, result source.FetchResult) bool {
	if len(result.Amendements) == 0 {
		s.record(ctx, domain.NewEvent(domain.EventAmendementsNonTrouves, lecture.PK))
	}
	if result.Created > 0 {
		s.record(ctx, domain.NewEvent(domain.EventAmendementsRecuperes, lecture.PK).
			With("count", strconv.Itoa(result.Created)))
	}
	if len(result.Errored) > 0 {
		s.record(ctx, domain.NewEvent(domain.EventAmendementsNonRecuperes, lecture.PK).
			With("missings", strings.Join(result.Errored, ", ")))
	}

	changed := len(result.Amendements) > 0 && result.Created == 0 && len(result.Errored) == 0
	if changed {
		s.record(ctx, domain.NewEvent(domain.EventAmendementsAJour, lecture.PK))
	}
	return changed
}

// autoDisableWhenSorted turns off automatic refresh once every amendement of
// an un-partitioned lecture carries a sort: the discussion is over.
func (s *FetchService) autoDisableWhenSorted(ctx context.Context, lecture *domain.Lecture) error {
	if lecture.Partie != nil || !lecture.Update || len(lecture.Amendements) == 0 {
		return nil
	}
	for _, amendement := range lecture.Amendements {
		if amendement.Sort == "" {
			return nil
		}
	}
	if err := s.lectures.DisableUpdate(ctx, lecture.PK); err != nil {
		return err
	}
	lecture.Update = false
	s.record(ctx, domain.NewEvent(domain.EventSyncAutoDisabled, lecture.PK))
	return nil
}

// alert forwards a data problem to operators, at most once per lecture until
// its alert flag is reset. Codes listed in the exclusion config are dropped.
func (s *FetchService) alert(ctx context.Context, lecture *domain.Lecture, fetchErr *source.FetchError) {
	if s.config.DisableAlerts {
		s.logger.Info("alert suppressed, alerting disabled",
			"kind", string(fetchErr.Kind), "code", fetchErr.Code)
		return
	}
	if s.excluded(fetchErr) {
		s.logger.Info("alert excluded by configuration",
			"kind", string(fetchErr.Kind), "code", fetchErr.Code)
		return
	}

	if lecture.AlertFlag {
		return
	}
	alert := publisher.Alert{
		Kind:    string(fetchErr.Kind),
		Code:    fetchErr.Code,
		URL:     fetchErr.URL,
		Titre:   fmt.Sprintf("%s : %s", lecture.DossierTitre, lecture.String()),
		Message: fetchErr.Message,
	}
	if err := s.publisher.PublishAlert(ctx, alert); err != nil {
		s.logger.Error("publishing alert failed", "error", err)
		return
	}
	if err := s.lectures.SetAlertFlag(ctx, lecture.PK, true); err != nil {
		s.logger.Error("setting alert flag failed", "error", err)
		return
	}
	lecture.AlertFlag = true
}

func (s *FetchService) excluded(fetchErr *source.FetchError) bool {
	var codes []int
	switch fetchErr.Kind {
	case source.KindHTTP:
		codes = s.config.ExcludeHTTPErrors
	case source.KindData:
		codes = s.config.ExcludeDataErrors
	}
	for _, code := range codes {
		if code == fetchErr.Code {
			return true
		}
	}
	return false
}

func (s *FetchService) record(ctx context.Context, event domain.Event) {
	if err := s.publisher.Record(ctx, event); err != nil {
		s.logger.Error("publishing event failed", "kind", event.Kind, "error", err)
	}
}

// FetchAll runs a fetch cycle for every lecture with automatic refresh
// enabled. A failing lecture does not stop the others.
func (s *FetchService) FetchAll(ctx context.Context) error {
	pks, err := s.lectures.RefreshablePKs(ctx)
	if err != nil {
		return fmt.Errorf("list refreshable lectures: %w", err)
	}
	s.logger.Info("fetch cycle starting", "lectures", len(pks))
	for _, pk := range pks {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := s.FetchAmendementsWithRetry(ctx, pk); err != nil {
			s.logger.Error("lecture fetch failed permanently", "lecture_pk", pk, "error", err)
		}
	}
	return nil
}

// FetchAmendementsWithRetry wraps FetchAmendements with the task-level retry
// used by the scheduler: transient infrastructure failures get a few widely
// spaced attempts.
func (s *FetchService) FetchAmendementsWithRetry(ctx context.Context, lecturePK int64) (bool, error) {
	var lastErr error
	for attempt := 1; attempt <= s.config.RetryAttempts; attempt++ {
		changed, err := s.FetchAmendements(ctx, lecturePK)
		if err == nil {
			return changed, nil
		}
		lastErr = err
		s.logger.Error("fetch cycle failed",
			"lecture_pk", lecturePK, "attempt", attempt, "error", err)
		if attempt == s.config.RetryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(s.config.RetryDelay):
		}
	}
	return false, lastErr
}
