package source

import (
	"amendement_fetcher/internal/domain"
)

// Inspect compares remote data for one amendement against the stored record
// and decides what, if anything, must change. It returns a CreateAmendement
// for unknown numbers, an UpdateAmendement when any tracked field differs,
// and nil when the stored record is already up to date.
func Inspect(lecture *domain.Lecture, num int, fields AmendementFields) Action {
	amendement := lecture.FindAmendement(num)
	if amendement == nil {
		create := &CreateAmendement{Num: num, AmendementFields: fields}
		create.Position = nil
		return create
	}

	modified := fields.SubDiv != amendement.SubDiv() ||
		fields.ParentNumRaw != amendement.ParentRawNum() ||
		fields.Rectif != amendement.Rectif ||
		fields.Corps != amendement.Corps ||
		fields.Expose != amendement.Expose ||
		fields.Sort != amendement.Sort ||
		!eqInt64Ptr(fields.IDDiscussionCommune, amendement.IDDiscussionCommune) ||
		!eqInt64Ptr(fields.IDIdentique, amendement.IDIdentique) ||
		fields.Matricule != amendement.Matricule ||
		fields.Groupe != amendement.Groupe ||
		fields.Auteur != amendement.Auteur ||
		!eqStrPtr(fields.MissionTitre, amendement.MissionTitre) ||
		!eqStrPtr(fields.MissionTitreCourt, amendement.MissionTitreCourt)

	if !modified {
		return nil
	}
	update := &UpdateAmendement{Num: num, AmendementFields: fields}
	update.Position = nil
	return update
}

func eqInt64Ptr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
