package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"amendement_fetcher/internal/domain"
)

type LectureStore struct {
	db *sqlx.DB
}

func NewLectureStore(db *sqlx.DB) *LectureStore {
	return &LectureStore{db: db}
}

type lectureRow struct {
	PK           int64  `db:"pk"`
	Chambre      string `db:"chambre"`
	TextePK      int64  `db:"texte_pk"`
	Partie       *int   `db:"partie"`
	OrganeAbrev  string `db:"organe_abrev"`
	IsCommission bool   `db:"is_commission"`
	DossierPK    int64  `db:"dossier_pk"`
	DossierTitre string `db:"dossier_titre"`
	Titre        string `db:"titre"`
	Update       bool   `db:"update_enabled"`
	AlertFlag    bool   `db:"alert_flag"`

	TexteNumero      int    `db:"texte_numero"`
	TexteLegislature int    `db:"texte_legislature"`
	TexteSessionStr  string `db:"texte_session_str"`
}

const lectureColumns = `
	l.pk, l.chambre, l.texte_pk, l.partie, l.organe_abrev, l.is_commission,
	l.dossier_pk, d.titre AS dossier_titre, l.titre, l.update_enabled, l.alert_flag,
	t.numero AS texte_numero, t.legislature AS texte_legislature,
	t.session_str AS texte_session_str`

// RefreshablePKs lists the lectures whose automatic refresh is enabled.
func (s *LectureStore) RefreshablePKs(ctx context.Context) ([]int64, error) {
	var pks []int64
	err := s.db.SelectContext(ctx, &pks,
		`SELECT pk FROM lectures WHERE update_enabled ORDER BY pk`)
	return pks, err
}

// Load builds the full in-memory snapshot of one lecture: missions, articles
// and amendements included.
func (s *LectureStore) Load(ctx context.Context, pk int64) (*domain.Lecture, error) {
	return s.load(ctx, pk, false)
}

// LoadForUpdate is Load under a row lock plus a per-lecture advisory lock, so
// concurrent fetch cycles on the same lecture serialize. Must run inside a
// transaction.
func (s *LectureStore) LoadForUpdate(ctx context.Context, pk int64) (*domain.Lecture, error) {
	if GetTxFromContext(ctx) == nil {
		return nil, fmt.Errorf("LoadForUpdate requires a transaction")
	}
	return s.load(ctx, pk, true)
}

func (s *LectureStore) load(ctx context.Context, pk int64, forUpdate bool) (*domain.Lecture, error) {
	exec := GetExecutor(ctx, s.db)

	if forUpdate {
		if _, err := exec.ExecContext(ctx,
			`SELECT pg_advisory_xact_lock($1)`, pk); err != nil {
			return nil, err
		}
	}

	query := `
		SELECT` + lectureColumns + `
		FROM lectures l
		JOIN textes t ON t.pk = l.texte_pk
		JOIN dossiers d ON d.pk = l.dossier_pk
		WHERE l.pk = $1`
	if forUpdate {
		query += `
		FOR UPDATE OF l`
	}

	var row lectureRow
	if err := sqlx.GetContext(ctx, exec, &row, query, pk); err != nil {
		return nil, err
	}

	lecture := &domain.Lecture{
		PK:           row.PK,
		Chambre:      domain.Chambre(row.Chambre),
		Texte: domain.Texte{
			PK:          row.TextePK,
			Numero:      row.TexteNumero,
			Legislature: row.TexteLegislature,
			SessionStr:  row.TexteSessionStr,
		},
		Partie:       row.Partie,
		OrganeAbrev:  row.OrganeAbrev,
		IsCommission: row.IsCommission,
		DossierPK:    row.DossierPK,
		DossierTitre: row.DossierTitre,
		Titre:        row.Titre,
		Update:       row.Update,
		AlertFlag:    row.AlertFlag,
	}

	if err := s.loadMissions(ctx, exec, lecture); err != nil {
		return nil, err
	}
	if err := s.loadAmendements(ctx, exec, lecture); err != nil {
		return nil, err
	}
	return lecture, nil
}

func (s *LectureStore) loadMissions(ctx context.Context, exec sqlx.ExtContext, lecture *domain.Lecture) error {
	type missionRow struct {
		IDTexte    int    `db:"id_texte"`
		Titre      string `db:"titre"`
		TitreCourt string `db:"titre_court"`
	}
	var rows []missionRow
	err := sqlx.SelectContext(ctx, exec, &rows,
		`SELECT id_texte, titre, titre_court FROM missions_senat
		 WHERE lecture_pk = $1 ORDER BY pk`, lecture.PK)
	if err != nil {
		return err
	}
	for _, row := range rows {
		lecture.MissionsSenat = append(lecture.MissionsSenat, domain.MissionSenat{
			IDTexte:    row.IDTexte,
			Titre:      row.Titre,
			TitreCourt: row.TitreCourt,
		})
	}
	return nil
}

func (s *LectureStore) loadAmendements(ctx context.Context, exec sqlx.ExtContext, lecture *domain.Lecture) error {
	type articleRow struct {
		PK   int64  `db:"pk"`
		Type string `db:"type"`
		Num  string `db:"num"`
		Mult string `db:"mult"`
		Pos  string `db:"pos"`
	}
	var articleRows []articleRow
	err := sqlx.SelectContext(ctx, exec, &articleRows,
		`SELECT pk, type, num, mult, pos FROM articles WHERE lecture_pk = $1`,
		lecture.PK)
	if err != nil {
		return err
	}
	articles := make(map[int64]*domain.Article, len(articleRows))
	for _, row := range articleRows {
		articles[row.PK] = &domain.Article{
			PK:        row.PK,
			LecturePK: lecture.PK,
			SubDiv: domain.SubDiv{
				Type: row.Type, Num: row.Num, Mult: row.Mult, Pos: row.Pos,
			},
		}
	}

	var rows []amendementRow
	err = sqlx.SelectContext(ctx, exec, &rows,
		`SELECT pk, lecture_pk, num, rectif, position, article_pk, parent_num,
		        id_discussion_commune, id_identique, sort, corps, expose,
		        matricule, groupe, auteur, mission_titre, mission_titre_court,
		        alinea, date_depot, batch_pk, user_table
		 FROM amendements WHERE lecture_pk = $1 ORDER BY num`, lecture.PK)
	if err != nil {
		return err
	}
	for _, row := range rows {
		lecture.Amendements = append(lecture.Amendements, row.toDomain(articles))
	}
	return nil
}

func (s *LectureStore) SetAlertFlag(ctx context.Context, pk int64, flag bool) error {
	exec := GetExecutor(ctx, s.db)
	_, err := exec.ExecContext(ctx,
		`UPDATE lectures SET alert_flag = $1 WHERE pk = $2`, flag, pk)
	return err
}

// DisableUpdate turns off automatic refresh for a lecture, used when every
// amendement got a sort on an un-partitioned lecture (discussion is over).
func (s *LectureStore) DisableUpdate(ctx context.Context, pk int64) error {
	exec := GetExecutor(ctx, s.db)
	_, err := exec.ExecContext(ctx,
		`UPDATE lectures SET update_enabled = FALSE WHERE pk = $1`, pk)
	return err
}

// SetFetchProgress records fetch progress for UI polling. Write errors are
// ignored; progress carries no domain state.
func (s *LectureStore) SetFetchProgress(ctx context.Context, lecturePK int64, position, total int) {
	exec := GetExecutor(ctx, s.db)
	_, _ = exec.ExecContext(ctx,
		`UPDATE lectures SET fetch_progress_position = $1, fetch_progress_total = $2
		 WHERE pk = $3`, position, total, lecturePK)
}

func (s *LectureStore) ResetFetchProgress(ctx context.Context, lecturePK int64) {
	exec := GetExecutor(ctx, s.db)
	_, _ = exec.ExecContext(ctx,
		`UPDATE lectures SET fetch_progress_position = NULL, fetch_progress_total = NULL
		 WHERE pk = $1`, lecturePK)
}
