package domain

// Texte is one version of a legislative text as deposited in a chambre.
type Texte struct {
	PK          int64
	Numero      int
	Legislature int
	// SessionStr is the Sénat session identifier, e.g. "2019-2020".
	SessionStr string
}

// MissionSenat is a budget mission subdivision specific to Sénat budget texts;
// each mission has its own discussion list.
type MissionSenat struct {
	IDTexte    int
	Titre      string
	TitreCourt string
}

// Lecture is one reading of one texte in one chambre's organ.
type Lecture struct {
	PK      int64
	Chambre Chambre
	Texte   Texte

	// Partie is only set for budget-law texts split in two parts.
	Partie *int

	// OrganeAbrev is the short code of the organ examining the texte
	// (e.g. "CION_FIN"), empty for the séance publique.
	OrganeAbrev  string
	IsCommission bool

	DossierPK    int64
	DossierTitre string
	Titre        string

	// Update gates whether the lecture is refreshed automatically.
	Update bool

	// AlertFlag suppresses repeat data alerts until reset by an operator.
	AlertFlag bool

	MissionsSenat []MissionSenat

	Amendements []*Amendement
}

// FindAmendement returns the amendement with the given number, or nil.
func (l *Lecture) FindAmendement(num int) *Amendement {
	for _, a := range l.Amendements {
		if a.Num == num {
			return a
		}
	}
	return nil
}

// MaxAmendementNum returns the highest known amendement number, 0 when empty.
func (l *Lecture) MaxAmendementNum() int {
	max := 0
	for _, a := range l.Amendements {
		if a.Num > max {
			max = a.Num
		}
	}
	return max
}

func (l *Lecture) String() string {
	return l.Titre
}
