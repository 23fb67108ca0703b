package domain

// Event kinds recorded during a fetch cycle. Rendering and notification are
// handled downstream; the engine only records structured facts.
const (
	EventAmendementIrrecevable   = "amendement_irrecevable"
	EventAmendementRectifie      = "amendement_rectifie"
	EventAmendementTransfere     = "amendement_transfere"
	EventCorpsAmendementModifie  = "corps_amendement_modifie"
	EventExposeAmendementModifie = "expose_amendement_modifie"
	EventBatchUnset              = "batch_unset"
	EventSortUpdateUnbatched     = "amendement_sort_update_unbatched"
	EventArticleUpdateUnbatched  = "amendement_article_update_unbatched"
	EventOrdreDiscussionModifie  = "ordre_discussion_modifie"
	EventAmendementsRecuperes    = "amendements_recuperes"
	EventAmendementsNonRecuperes = "amendements_non_recuperes"
	EventAmendementsNonTrouves   = "amendements_non_trouves"
	EventAmendementsAJour        = "amendements_a_jour"
	EventSyncAutoDisabled        = "automatic_disabling_sort_amendements"
)

// Event is one structured domain event, published fire-and-forget.
type Event struct {
	Kind      string            `json:"kind"`
	LecturePK int64             `json:"lecture_pk"`
	Num       int               `json:"num,omitempty"`
	Payload   map[string]string `json:"payload,omitempty"`
}

func NewEvent(kind string, lecturePK int64) Event {
	return Event{Kind: kind, LecturePK: lecturePK}
}

func NewAmendementEvent(kind string, a *Amendement) Event {
	return Event{Kind: kind, LecturePK: a.LecturePK, Num: a.Num}
}

func (e Event) With(key, value string) Event {
	payload := make(map[string]string, len(e.Payload)+1)
	for k, v := range e.Payload {
		payload[k] = v
	}
	payload[key] = value
	e.Payload = payload
	return e
}
