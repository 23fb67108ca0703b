package an

import (
	"fmt"
	"strings"

	"amendement_fetcher/internal/domain"
)

const DefaultBaseURL = "http://www.assemblee-nationale.fr"

// organePrefix maps a commission organe to the prefix its amendement
// numbers carry in XML document names.
var organePrefix = map[string]string{
	"CION_FIN":   "CF",
	"CION-SOC":   "AS",
	"CION-CEDU":  "AC",
	"CION-ECO":   "CE",
	"CION_AFETR": "AE",
	"CION_DEF":   "DN",
	"CION_LOIS":  "CL",
	"CION-DVP":   "CD",
}

func prefixForOrgane(organe string) string {
	return organePrefix[organe]
}

// partieSuffix distinguishes the two volumes of a finance bill.
func partieSuffix(partie *int) string {
	if partie == nil {
		return ""
	}
	if *partie == 1 {
		return "A"
	}
	return "C"
}

func derouleurURL(baseURL string, lecture *domain.Lecture) string {
	return fmt.Sprintf("%s/eloi/%d/amendements/%04d%s/%s/liste.xml",
		baseURL,
		lecture.Texte.Legislature,
		lecture.Texte.Numero,
		partieSuffix(lecture.Partie),
		lecture.OrganeAbrev,
	)
}

func amendementURL(baseURL string, lecture *domain.Lecture, numeroPrefixe string) string {
	return fmt.Sprintf("%s/%d/xml/amendements/%04d%s/%s/%s.xml",
		baseURL,
		lecture.Texte.Legislature,
		lecture.Texte.Numero,
		partieSuffix(lecture.Partie),
		lecture.OrganeAbrev,
		numeroPrefixe,
	)
}

func numeroPrefixe(prefix string, num int) string {
	return fmt.Sprintf("%s%d", strings.ToUpper(prefix), num)
}
