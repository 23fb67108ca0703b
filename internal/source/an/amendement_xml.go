package an

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"amendement_fetcher/internal/domain"
)

// nilText is a text element that may carry an explicit xsi:nil marker.
type nilText struct {
	Nil   bool   `xml:"http://www.w3.org/2001/XMLSchema-instance nil,attr"`
	Value string `xml:",chardata"`
}

func (t nilText) get() *string {
	if t.Nil {
		return nil
	}
	value := t.Value
	return &value
}

func (t nilText) orEmpty() string {
	if t.Nil {
		return ""
	}
	return t.Value
}

type divisionXML struct {
	Type             string  `xml:"type"`
	Titre            nilText `xml:"titre"`
	DivisionRattache nilText `xml:"divisionRattache"`
	AvantApres       nilText `xml:"avantApres"`
}

type auteurXML struct {
	TribunID        nilText `xml:"tribunId"`
	GroupeTribunID  nilText `xml:"groupeTribunId"`
	EstGouvernement string  `xml:"estGouvernement"`
	EstRapporteur   string  `xml:"estRapporteur"`
	Nom             nilText `xml:"nom"`
	Prenom          nilText `xml:"prenom"`
}

type programmeXML struct {
	Libelle string `xml:"libelleProgrammeAmdt"`
	Nouveau string `xml:"programmeAmdtNouveau"`

	AEPositif string `xml:"aEPositifFormat"`
	AENegatif string `xml:"aENegatifFormat"`
	CPPositif string `xml:"cPPositifFormat"`
	CPNegatif string `xml:"cPNegatifFormat"`

	// Pre-2019 format.
	AEOuvertes string `xml:"aESupplementairesOuvertesFormat"`
	AEAnnulees string `xml:"aEAnnuleesFormat"`
	CPOuvertes string `xml:"cPSupplementairesOuvertesFormat"`
	CPAnnulees string `xml:"cPAnnuleesFormat"`
}

type programmesXML struct {
	Programmes []programmeXML `xml:"programmeAmdt"`
}

// amendementXML is the typed decoding of one per-amendement AN document.
type amendementXML struct {
	XMLName xml.Name `xml:"amendement"`

	Numero        string  `xml:"numero"`
	NumeroLong    nilText `xml:"numeroLong"`
	NumeroParent  nilText `xml:"numeroParent"`
	TriAmendement nilText `xml:"triAmendement"`

	Division *divisionXML `xml:"division"`
	Auteur   *auteurXML   `xml:"auteur"`

	Dispositif     nilText `xml:"dispositif"`
	ExposeSommaire nilText `xml:"exposeSommaire"`

	SortEnSeance           *nilText `xml:"sortEnSeance"`
	Etat                   nilText  `xml:"etat"`
	RetireAvantPublication string   `xml:"retireAvantPublication"`
	RetireApresPublication string   `xml:"retireApresPublication"`

	MissionVisee *nilText `xml:"missionVisee"`

	ListeProgrammes *programmesXML `xml:"listeProgrammesAmdt"`

	TotalAEPositif string `xml:"totalAEPositifFormat"`
	TotalAENegatif string `xml:"totalAENegatifFormat"`
	TotalCPPositif string `xml:"totalCPPositifFormat"`
	TotalCPNegatif string `xml:"totalCPNegatifFormat"`

	TotalAEOuvertes string `xml:"totalAESupplementairesOuvertesFormat"`
	TotalAEAnnulees string `xml:"totalAEAnnuleesFormat"`
	TotalCPOuvertes string `xml:"totalCPSupplementairesOuvertesFormat"`
	TotalCPAnnulees string `xml:"totalCPAnnuleesFormat"`

	SoldeAE string `xml:"soldeAEFormat"`
	SoldeCP string `xml:"soldeCPFormat"`
}

func decodeAmendement(content []byte) (*amendementXML, error) {
	var amend amendementXML
	if err := xml.Unmarshal(content, &amend); err != nil {
		return nil, fmt.Errorf("decode amendement xml: %w", err)
	}
	if problems := amend.validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid amendement xml: %s", strings.Join(problems, "; "))
	}
	return &amend, nil
}

// validate runs a single pass over the decoded document and reports every
// missing or malformed key at once.
func (a *amendementXML) validate() []string {
	var problems []string
	if a.Numero == "" {
		problems = append(problems, "missing numero")
	} else if _, err := strconv.Atoi(a.Numero); err != nil {
		problems = append(problems, fmt.Sprintf("malformed numero %q", a.Numero))
	}
	if a.Division == nil {
		problems = append(problems, "missing division")
	} else if a.Division.Type == "" {
		problems = append(problems, "missing division type")
	}
	return problems
}

func (a *amendementXML) num() int {
	num, _ := strconv.Atoi(a.Numero)
	return num
}

var numeroLongRe = regexp.MustCompile(
	`^(?P<partie>I*-?)(?P<prefix>[A-Z]*)(?P<num>\d+)(?P<rect> \((?:(?P<rectMult>\d+)\w+ )?Rect\))?`)

// rectif extracts the rectification ordinal from numeroLong, e.g.
// "42 (3ème Rect)" yields 3 and "42 (Rect)" yields 1.
func (a *amendementXML) rectif() int {
	numeroLong := a.NumeroLong.get()
	if numeroLong == nil {
		return 0
	}
	mo := numeroLongRe.FindStringSubmatch(*numeroLong)
	if mo == nil || mo[numeroLongRe.SubexpIndex("rect")] == "" {
		return 0
	}
	if mult := mo[numeroLongRe.SubexpIndex("rectMult")]; mult != "" {
		rectif, _ := strconv.Atoi(mult)
		return rectif
	}
	return 1
}

func (a *amendementXML) parentRawNum() string {
	return a.NumeroParent.orEmpty()
}

func (a *amendementXML) subDiv() (domain.SubDiv, error) {
	division := a.Division
	if division.Type == "TITRE" {
		return domain.SubDiv{Type: "titre"}, nil
	}

	label := division.DivisionRattache.orEmpty()
	if division.Type == "ARTICLE" {
		label = division.Titre.orEmpty()
	}
	subdiv, err := domain.ParseSubDiv(label)
	if err != nil {
		return domain.SubDiv{}, err
	}

	if pos := parseAvantApres(division.AvantApres.orEmpty()); pos != "" {
		subdiv.Pos = pos
	}
	return subdiv, nil
}

func parseAvantApres(text string) string {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "AV", "AVANT":
		return "avant"
	case "A", "APRES", "APRÈS":
		return "après"
	}
	return ""
}

func (a *amendementXML) matricule() string {
	if a.Auteur == nil {
		return ""
	}
	return a.Auteur.TribunID.orEmpty()
}

func (a *amendementXML) auteur() string {
	if a.Auteur == nil {
		return "Non trouvé"
	}
	if a.Auteur.EstGouvernement == "1" {
		return "LE GOUVERNEMENT"
	}
	return strings.TrimSpace(a.Auteur.Nom.orEmpty() + " " + a.Auteur.Prenom.orEmpty())
}

const etatsOK = "AT T ER R AC DI"

// sort derives the discussion outcome. A missing sortEnSeance element means
// the outcome has to be inferred from the retirement flags and the etat.
func (a *amendementXML) sort() string {
	if a.SortEnSeance != nil {
		if sort := a.SortEnSeance.get(); sort != nil {
			return strings.ToLower(*sort)
		}
	}
	if a.RetireAvantPublication == "1" || a.RetireApresPublication == "1" {
		return "Retiré"
	}
	etat := a.Etat.orEmpty()
	for _, ok := range strings.Fields(etatsOK) {
		if etat == ok {
			return ""
		}
	}
	return "Irrecevable"
}

func (a *amendementXML) expose() string {
	return unjustify(a.ExposeSommaire.orEmpty())
}

func (a *amendementXML) triAmendement() string {
	return a.TriAmendement.orEmpty()
}

var missionViseeRe = regexp.MustCompile(`(Mission )?« (?P<titreCourt>.*) »`)

func (a *amendementXML) missionRef() (titre, titreCourt *string) {
	if a.MissionVisee == nil {
		return nil, nil
	}
	visee := a.MissionVisee.get()
	if visee == nil {
		return nil, nil
	}
	court := *visee
	if mo := missionViseeRe.FindStringSubmatch(*visee); mo != nil {
		court = mo[missionViseeRe.SubexpIndex("titreCourt")]
	}
	return visee, &court
}

func unjustify(content string) string {
	return strings.ReplaceAll(content, ` style="text-align: justify;"`, "")
}
