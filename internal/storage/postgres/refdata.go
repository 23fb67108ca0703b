package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// RefDataStore serves the reference tables loaded from the open-data dumps:
// AN organes and Sénat senator records.
type RefDataStore struct {
	db *sqlx.DB
}

func NewRefDataStore(db *sqlx.DB) *RefDataStore {
	return &RefDataStore{db: db}
}

func (s *RefDataStore) OrganeLabel(ctx context.Context, uid string) (string, bool) {
	var libelle string
	err := s.db.GetContext(ctx, &libelle,
		`SELECT libelle FROM organes WHERE uid = $1`, uid)
	if err != nil {
		return "", false
	}
	return libelle, true
}

func (s *RefDataStore) SenateurGroupe(ctx context.Context, matricule string) (string, bool) {
	var groupe string
	err := s.db.GetContext(ctx, &groupe,
		`SELECT groupe FROM senateurs WHERE matricule = $1`, matricule)
	if err != nil {
		return "", false
	}
	return groupe, true
}

func (s *RefDataStore) UpsertOrgane(ctx context.Context, uid, libelle, libelleAbrev string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO organes (uid, libelle, libelle_abrev)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO UPDATE SET
			libelle = EXCLUDED.libelle,
			libelle_abrev = EXCLUDED.libelle_abrev`,
		uid, libelle, libelleAbrev)
	return err
}

func (s *RefDataStore) UpsertSenateur(ctx context.Context, matricule, nom, groupe string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO senateurs (matricule, nom, groupe)
		VALUES ($1, $2, $3)
		ON CONFLICT (matricule) DO UPDATE SET
			nom = EXCLUDED.nom,
			groupe = EXCLUDED.groupe`,
		matricule, nom, groupe)
	return err
}

// CountSenateurs reports whether the senator table has been loaded at all.
func (s *RefDataStore) CountSenateurs(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT count(*) FROM senateurs`)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return count, err
}
