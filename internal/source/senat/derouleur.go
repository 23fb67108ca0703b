package senat

import (
	"encoding/json"
	"fmt"
	"strconv"

	"amendement_fetcher/internal/domain"
)

// discussionDetails is the dérouleur enrichment for one amendement in the
// discussion order.
type discussionDetails struct {
	num                 int
	position            int
	idDiscussionCommune *int64
	idIdentique         *int64
	parentNum           *int
	missionTitre        *string
	missionTitreCourt   *string
}

type derouleurJSON struct {
	Subdivisions []struct {
		Amendements []derouleurAmendementJSON `json:"Amendements"`
	} `json:"Subdivisions"`
}

type derouleurAmendementJSON struct {
	IDAmendement        string `json:"idAmendement"`
	Num                 string `json:"num"`
	IsDiscussionCommune string `json:"isDiscussionCommune"`
	IDDiscussionCommune string `json:"idDiscussionCommune"`
	IsIdentique         string `json:"isIdentique"`
	IDIdentique         string `json:"idIdentique"`
	IsSousAmendement    string `json:"isSousAmendement"`
	IDAmendementPere    string `json:"idAmendementPere"`
}

// missionRef labels the budget mission a dérouleur document covers. Bills
// without missions use the zero value.
type missionRef struct {
	titre      string
	titreCourt string
}

type derouleurDocument struct {
	amendements []derouleurAmendementJSON
	mission     missionRef
}

func decodeDerouleur(content []byte, mission missionRef) (derouleurDocument, error) {
	var doc derouleurJSON
	if err := json.Unmarshal(content, &doc); err != nil {
		return derouleurDocument{}, fmt.Errorf("decode derouleur json: %w", err)
	}
	document := derouleurDocument{mission: mission}
	for _, subdiv := range doc.Subdivisions {
		document.amendements = append(document.amendements, subdiv.Amendements...)
	}
	return document, nil
}

// parseDiscussionDetails flattens the dérouleur documents into discussion
// details, positions numbered from 1 across all documents. Sub-amendement
// parents are resolved through the idAmendement map.
func parseDiscussionDetails(documents []derouleurDocument) ([]discussionDetails, error) {
	uidMap := make(map[string]int)
	for _, document := range documents {
		for _, amend := range document.amendements {
			num, _, err := domain.ParseNum(amend.Num)
			if err != nil {
				return nil, fmt.Errorf("derouleur num %q: %w", amend.Num, err)
			}
			uidMap[amend.IDAmendement] = num
		}
	}

	var details []discussionDetails
	position := 0
	for _, document := range documents {
		for _, amend := range document.amendements {
			position++
			parsed, err := parseOneDetails(uidMap, amend, position, document.mission)
			if err != nil {
				return nil, err
			}
			details = append(details, parsed)
		}
	}
	return details, nil
}

func parseOneDetails(uidMap map[string]int, amend derouleurAmendementJSON, position int, mission missionRef) (discussionDetails, error) {
	num, _, err := domain.ParseNum(amend.Num)
	if err != nil {
		return discussionDetails{}, fmt.Errorf("derouleur num %q: %w", amend.Num, err)
	}

	details := discussionDetails{num: num, position: position}

	if isTrue, err := parseBool(amend.IsDiscussionCommune); err != nil {
		return discussionDetails{}, err
	} else if isTrue {
		id, err := strconv.ParseInt(amend.IDDiscussionCommune, 10, 64)
		if err != nil {
			return discussionDetails{}, fmt.Errorf("idDiscussionCommune %q: %w", amend.IDDiscussionCommune, err)
		}
		details.idDiscussionCommune = &id
	}

	if isTrue, err := parseBool(amend.IsIdentique); err != nil {
		return discussionDetails{}, err
	} else if isTrue {
		id, err := strconv.ParseInt(amend.IDIdentique, 10, 64)
		if err != nil {
			return discussionDetails{}, fmt.Errorf("idIdentique %q: %w", amend.IDIdentique, err)
		}
		details.idIdentique = &id
	}

	details.parentNum = parentNum(uidMap, amend)

	if mission.titre != "" {
		titre, titreCourt := mission.titre, mission.titreCourt
		details.missionTitre = &titre
		details.missionTitreCourt = &titreCourt
	}
	return details, nil
}

func parentNum(uidMap map[string]int, amend derouleurAmendementJSON) *int {
	if amend.IsSousAmendement != "true" || amend.IDAmendementPere == "" {
		return nil
	}
	if num, known := uidMap[amend.IDAmendementPere]; known {
		return &num
	}
	return nil
}

func parseBool(text string) (bool, error) {
	switch text {
	case "true":
		return true, nil
	case "false", "":
		return false, nil
	}
	return false, fmt.Errorf("unexpected boolean %q", text)
}

// derouleurURLs yields the dérouleur document locations for one lecture,
// one per mission for multi-mission finance bills.
func derouleurURLs(baseURL string, lecture *domain.Lecture) []struct {
	URL     string
	Mission missionRef
} {
	phase := "enseance"
	if lecture.IsCommission {
		phase = "encommission"
	}
	texte := lecture.Texte

	var urls []struct {
		URL     string
		Mission missionRef
	}
	if len(lecture.MissionsSenat) > 0 {
		for _, mission := range lecture.MissionsSenat {
			urls = append(urls, struct {
				URL     string
				Mission missionRef
			}{
				URL: fmt.Sprintf("%s/%s/%s/%d/liste_discussion_%d.json",
					baseURL, phase, texte.SessionStr, texte.Numero, mission.IDTexte),
				Mission: missionRef{titre: mission.Titre, titreCourt: mission.TitreCourt},
			})
		}
		return urls
	}
	urls = append(urls, struct {
		URL     string
		Mission missionRef
	}{
		URL: fmt.Sprintf("%s/%s/%s/%d/liste_discussion.json",
			baseURL, phase, texte.SessionStr, texte.Numero),
	})
	return urls
}
