package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"amendement_fetcher/internal/domain"
)

// AmendementStore persists amendements and their articles. All statements go
// through GetExecutor so they join an ambient transaction when one is open.
type AmendementStore struct {
	db *sqlx.DB
}

func NewAmendementStore(db *sqlx.DB) *AmendementStore {
	return &AmendementStore{db: db}
}

func (s *AmendementStore) FindOrCreateArticle(ctx context.Context, lecturePK int64, subdiv domain.SubDiv) (*domain.Article, error) {
	exec := GetExecutor(ctx, s.db)

	query := `
		INSERT INTO articles (lecture_pk, type, num, mult, pos)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (lecture_pk, type, num, mult, pos) DO NOTHING
		RETURNING pk`

	article := &domain.Article{LecturePK: lecturePK, SubDiv: subdiv}
	err := exec.QueryRowxContext(ctx, query,
		lecturePK, subdiv.Type, subdiv.Num, subdiv.Mult, subdiv.Pos,
	).Scan(&article.PK)

	if err == sql.ErrNoRows {
		err = exec.QueryRowxContext(ctx,
			`SELECT pk FROM articles
			 WHERE lecture_pk = $1 AND type = $2 AND num = $3 AND mult = $4 AND pos = $5`,
			lecturePK, subdiv.Type, subdiv.Num, subdiv.Mult, subdiv.Pos,
		).Scan(&article.PK)
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

func (s *AmendementStore) CreateAmendement(ctx context.Context, a *domain.Amendement) error {
	exec := GetExecutor(ctx, s.db)

	query := `
		INSERT INTO amendements (
			lecture_pk, num, rectif, position, article_pk, parent_num,
			id_discussion_commune, id_identique, sort, corps, expose,
			matricule, groupe, auteur, mission_titre, mission_titre_court,
			alinea, date_depot
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18
		)
		RETURNING pk`

	return exec.QueryRowxContext(ctx, query,
		a.LecturePK,
		a.Num,
		a.Rectif,
		a.Position,
		articlePK(a),
		a.ParentNum,
		a.IDDiscussionCommune,
		a.IDIdentique,
		a.Sort,
		a.Corps,
		a.Expose,
		a.Matricule,
		a.Groupe,
		a.Auteur,
		a.MissionTitre,
		a.MissionTitreCourt,
		a.Alinea,
		a.DateDepot,
	).Scan(&a.PK)
}

func (s *AmendementStore) SaveAmendement(ctx context.Context, a *domain.Amendement) error {
	exec := GetExecutor(ctx, s.db)

	query := `
		UPDATE amendements SET
			rectif = $1,
			article_pk = $2,
			parent_num = $3,
			id_discussion_commune = $4,
			id_identique = $5,
			sort = $6,
			corps = $7,
			expose = $8,
			matricule = $9,
			groupe = $10,
			auteur = $11,
			mission_titre = $12,
			mission_titre_court = $13,
			alinea = $14,
			date_depot = $15,
			batch_pk = $16,
			user_table = $17
		WHERE pk = $18`

	_, err := exec.ExecContext(ctx, query,
		a.Rectif,
		articlePK(a),
		a.ParentNum,
		a.IDDiscussionCommune,
		a.IDIdentique,
		a.Sort,
		a.Corps,
		a.Expose,
		a.Matricule,
		a.Groupe,
		a.Auteur,
		a.MissionTitre,
		a.MissionTitreCourt,
		a.Alinea,
		a.DateDepot,
		a.BatchPK,
		a.UserTable,
		a.PK,
	)
	return err
}

func (s *AmendementStore) ClearPositions(ctx context.Context, lecturePK int64, nums []int) error {
	if len(nums) == 0 {
		return nil
	}
	exec := GetExecutor(ctx, s.db)
	_, err := exec.ExecContext(ctx,
		`UPDATE amendements SET position = NULL WHERE lecture_pk = $1 AND num = ANY($2)`,
		lecturePK, pq.Array(nums),
	)
	return err
}

func (s *AmendementStore) SetPosition(ctx context.Context, lecturePK int64, num int, position *int) error {
	exec := GetExecutor(ctx, s.db)
	_, err := exec.ExecContext(ctx,
		`UPDATE amendements SET position = $1 WHERE lecture_pk = $2 AND num = $3`,
		position, lecturePK, num,
	)
	return err
}

func (s *AmendementStore) ClearBatch(ctx context.Context, a *domain.Amendement) error {
	exec := GetExecutor(ctx, s.db)
	a.BatchPK = nil
	_, err := exec.ExecContext(ctx,
		`UPDATE amendements SET batch_pk = NULL WHERE pk = $1`, a.PK)
	return err
}

func (s *AmendementStore) ClearUserTable(ctx context.Context, a *domain.Amendement) error {
	exec := GetExecutor(ctx, s.db)
	a.UserTable = nil
	_, err := exec.ExecContext(ctx,
		`UPDATE amendements SET user_table = NULL WHERE pk = $1`, a.PK)
	return err
}

func articlePK(a *domain.Amendement) *int64 {
	if a.Article == nil {
		return nil
	}
	return &a.Article.PK
}

// amendementRow maps one amendements row for sqlx scanning.
type amendementRow struct {
	PK                  int64      `db:"pk"`
	LecturePK           int64      `db:"lecture_pk"`
	Num                 int        `db:"num"`
	Rectif              int        `db:"rectif"`
	Position            *int       `db:"position"`
	ArticlePK           *int64     `db:"article_pk"`
	ParentNum           *int       `db:"parent_num"`
	IDDiscussionCommune *int64     `db:"id_discussion_commune"`
	IDIdentique         *int64     `db:"id_identique"`
	Sort                string     `db:"sort"`
	Corps               string     `db:"corps"`
	Expose              string     `db:"expose"`
	Matricule           string     `db:"matricule"`
	Groupe              string     `db:"groupe"`
	Auteur              string     `db:"auteur"`
	MissionTitre        *string    `db:"mission_titre"`
	MissionTitreCourt   *string    `db:"mission_titre_court"`
	Alinea              string     `db:"alinea"`
	DateDepot           *time.Time `db:"date_depot"`
	BatchPK             *int64     `db:"batch_pk"`
	UserTable           *string    `db:"user_table"`
}

func (r amendementRow) toDomain(articles map[int64]*domain.Article) *domain.Amendement {
	amendement := &domain.Amendement{
		PK:                  r.PK,
		LecturePK:           r.LecturePK,
		Num:                 r.Num,
		Rectif:              r.Rectif,
		Position:            r.Position,
		ParentNum:           r.ParentNum,
		IDDiscussionCommune: r.IDDiscussionCommune,
		IDIdentique:         r.IDIdentique,
		Sort:                r.Sort,
		Corps:               r.Corps,
		Expose:              r.Expose,
		Matricule:           r.Matricule,
		Groupe:              r.Groupe,
		Auteur:              r.Auteur,
		MissionTitre:        r.MissionTitre,
		MissionTitreCourt:   r.MissionTitreCourt,
		Alinea:              r.Alinea,
		DateDepot:           r.DateDepot,
		BatchPK:             r.BatchPK,
		UserTable:           r.UserTable,
	}
	if r.ArticlePK != nil {
		amendement.Article = articles[*r.ArticlePK]
	}
	return amendement
}
