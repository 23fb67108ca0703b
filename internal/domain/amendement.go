package domain

import (
	"strconv"
	"time"
)

// Chambre identifies which assembly a lecture belongs to.
type Chambre string

const (
	ChambreAN    Chambre = "an"
	ChambreSenat Chambre = "senat"
)

// Amendement is the central unit of work: one proposed change to one article,
// uniquely identified within a lecture by its number.
type Amendement struct {
	PK        int64
	LecturePK int64
	Num       int
	Rectif    int

	// Position in the discussion order. Nil while the amendement is not (or no
	// longer) scheduled for discussion. Unique per lecture when set.
	Position *int

	Article   *Article
	ParentNum *int

	IDDiscussionCommune *int64
	IDIdentique         *int64

	Sort   string
	Corps  string
	Expose string

	Matricule string
	Groupe    string
	Auteur    string

	MissionTitre      *string
	MissionTitreCourt *string

	Alinea    string
	DateDepot *time.Time

	// BatchPK links the amendement to a user-created lot sharing one response.
	BatchPK *int64
	// UserTable names the user currently holding the amendement, if any.
	UserTable *string
}

// ParentRawNum returns the parent number as the remote sources format it,
// empty when the amendement is not a sous-amendement.
func (a *Amendement) ParentRawNum() string {
	if a.ParentNum == nil {
		return ""
	}
	return strconv.Itoa(*a.ParentNum)
}

func (a *Amendement) SubDiv() SubDiv {
	if a.Article == nil {
		return SubDiv{}
	}
	return a.Article.SubDiv
}

// Article is a subdivision of the legislative text, owning amendements.
type Article struct {
	PK        int64
	LecturePK int64
	SubDiv    SubDiv
}
