package source

import (
	"context"
	"time"

	"amendement_fetcher/internal/domain"
)

// FetchResult accumulates the outcome of applying collected changes.
type FetchResult struct {
	Amendements []*domain.Amendement
	Created     int
	Errored     []string
}

// Merge combines two results; merging is associative.
func (r FetchResult) Merge(other FetchResult) FetchResult {
	return FetchResult{
		Amendements: append(r.Amendements, other.Amendements...),
		Created:     r.Created + other.Created,
		Errored:     append(r.Errored, other.Errored...),
	}
}

// CollectedChanges is the output of the collect phase, produced once per fetch
// cycle and consumed once by the apply phase.
type CollectedChanges struct {
	// DerouleurFetchSuccess is false when the discussion list itself could not
	// be retrieved (upstream may simply not have published it yet).
	DerouleurFetchSuccess bool

	// PositionChanges maps amendement number to its new position; a nil value
	// clears the position of an amendement that left the discussion order.
	PositionChanges map[int]*int

	Actions   []Action
	Unchanged []int
	Errored   []string

	// Alerts carries data-quality problems for the orchestration loop to
	// forward to the alert channel.
	Alerts []*FetchError
}

func NewCollectedChanges() *CollectedChanges {
	return &CollectedChanges{
		DerouleurFetchSuccess: true,
		PositionChanges:       map[int]*int{},
	}
}

// Action is one idempotent mutation decided during collect and executed
// during apply.
type Action interface {
	Apply(ctx context.Context, ap *Applier, repo Repository, lecture *domain.Lecture) (FetchResult, error)
}

// AmendementFields carries everything needed to construct or refresh one
// amendement from remote data.
type AmendementFields struct {
	SubDiv       domain.SubDiv
	ParentNumRaw string
	Rectif       int
	Position     *int

	IDDiscussionCommune *int64
	IDIdentique         *int64

	Matricule string
	Groupe    string
	Auteur    string

	MissionTitre      *string
	MissionTitreCourt *string

	Corps  string
	Expose string
	Sort   string

	Alinea    string
	DateDepot *time.Time
}

// CreateAmendement records a new amendement first observed upstream.
type CreateAmendement struct {
	Num int
	AmendementFields
}

// UpdateAmendement refreshes an amendement from remote data that differs from
// the stored record.
type UpdateAmendement struct {
	Num int
	AmendementFields
}

func (f *AmendementFields) parentNum() *int {
	num, _, err := domain.ParseNum(f.ParentNumRaw)
	if err != nil || num == 0 {
		return nil
	}
	return &num
}

func (c *CreateAmendement) Apply(ctx context.Context, ap *Applier, repo Repository, lecture *domain.Lecture) (FetchResult, error) {
	article, err := repo.FindOrCreateArticle(ctx, lecture.PK, c.SubDiv)
	if err != nil {
		return FetchResult{}, err
	}

	amendement := &domain.Amendement{
		LecturePK:           lecture.PK,
		Num:                 c.Num,
		Rectif:              c.Rectif,
		Position:            c.Position,
		Article:             article,
		ParentNum:           c.parentNum(),
		IDDiscussionCommune: c.IDDiscussionCommune,
		IDIdentique:         c.IDIdentique,
		Matricule:           c.Matricule,
		Groupe:              c.Groupe,
		Auteur:              c.Auteur,
		MissionTitre:        c.MissionTitre,
		MissionTitreCourt:   c.MissionTitreCourt,
		Corps:               c.Corps,
		Expose:              c.Expose,
		Sort:                c.Sort,
		Alinea:              c.Alinea,
		DateDepot:           c.DateDepot,
	}
	if err := repo.CreateAmendement(ctx, amendement); err != nil {
		return FetchResult{}, err
	}
	lecture.Amendements = append(lecture.Amendements, amendement)

	return FetchResult{Amendements: []*domain.Amendement{amendement}, Created: 1}, nil
}

func (u *UpdateAmendement) Apply(ctx context.Context, ap *Applier, repo Repository, lecture *domain.Lecture) (FetchResult, error) {
	amendement := lecture.FindAmendement(u.Num)
	if amendement == nil {
		return FetchResult{Errored: []string{domain.NumDisp(u.Num, 0)}}, nil
	}

	article, err := repo.FindOrCreateArticle(ctx, lecture.PK, u.SubDiv)
	if err != nil {
		return FetchResult{}, err
	}

	if amendement.BatchPK != nil && (amendement.Article == nil || amendement.Article.PK != article.PK) {
		if err := ap.unbatchOnArticleChange(ctx, repo, amendement, article); err != nil {
			return FetchResult{}, err
		}
	}

	// Positions are reconciled separately through PositionChanges; a nil
	// position on the action means "keep the current one".
	position := u.Position
	if u.Position == nil {
		position = amendement.Position
	}

	if err := ap.updateRectif(ctx, amendement, u.Rectif); err != nil {
		return FetchResult{}, err
	}
	if err := ap.updateSort(ctx, repo, amendement, u.Sort); err != nil {
		return FetchResult{}, err
	}
	if err := ap.updateCorps(ctx, amendement, u.Corps); err != nil {
		return FetchResult{}, err
	}
	if err := ap.updateExpose(ctx, amendement, u.Expose); err != nil {
		return FetchResult{}, err
	}

	amendement.Article = article
	amendement.ParentNum = u.parentNum()
	amendement.Position = position
	amendement.IDDiscussionCommune = u.IDDiscussionCommune
	amendement.IDIdentique = u.IDIdentique
	amendement.Matricule = u.Matricule
	amendement.Groupe = u.Groupe
	amendement.Auteur = u.Auteur
	amendement.MissionTitre = u.MissionTitre
	amendement.MissionTitreCourt = u.MissionTitreCourt
	if u.Alinea != "" {
		amendement.Alinea = u.Alinea
	}
	if u.DateDepot != nil {
		amendement.DateDepot = u.DateDepot
	}

	if err := repo.SaveAmendement(ctx, amendement); err != nil {
		return FetchResult{}, err
	}

	return FetchResult{Amendements: []*domain.Amendement{amendement}}, nil
}
