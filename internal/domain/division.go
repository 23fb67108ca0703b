package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SubDiv identifies a subdivision of the legislative text.
type SubDiv struct {
	// Type is one of "article", "titre", "motion", "chapitre", "section",
	// "sous-section", "annexe", or "" for the whole text.
	Type string
	Num  string
	// Mult encodes ordinal suffixes ("bis", "ter A", …).
	Mult string
	// Pos encodes additional-article modifiers: "avant", "après" or "".
	Pos string
}

func (s SubDiv) IsZero() bool {
	return s == SubDiv{}
}

func (s SubDiv) String() string {
	if s.Type == "" {
		return ""
	}
	parts := []string{s.Type}
	if s.Pos != "" {
		parts = append([]string{s.Pos}, parts...)
	}
	if s.Num != "" {
		parts = append(parts, s.Num)
	}
	if s.Mult != "" {
		parts = append(parts, s.Mult)
	}
	return strings.Join(parts, " ")
}

var (
	articleRe = regexp.MustCompile(
		`(?i)^(?:(?P<pos>avant|après|apres)\s+)?` +
			`(?:l['’]\s*)?(?:art(?:icle)?s?\.?)\s+` +
			`(?:additionnels?\s+(?P<pos2>avant|après|apres)\s+(?:l['’]\s*)?(?:art(?:icle)?\.?)\s+)?` +
			`(?P<num>1er|premier|\d+)` +
			`(?:\s+(?P<mult>[a-z]+(?:\s+[A-Z]+)?))?$`)
	chapitreRe = regexp.MustCompile(`(?i)^chapitre\s+(?P<num>[\w]+)`)
	sectionRe  = regexp.MustCompile(`(?i)^(?P<sub>sous-)?section\s+(?P<num>[\w]+)`)
	annexeRe   = regexp.MustCompile(`(?i)^annexe(?:\s+(?P<num>[\w]+))?`)
)

// ParseSubDiv turns a free-text article label into a structured subdivision.
func ParseSubDiv(label string) (SubDiv, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return SubDiv{}, nil
	}

	lower := strings.ToLower(label)
	switch {
	case strings.Contains(lower, "intitulé"), strings.HasPrefix(lower, "titre"):
		return SubDiv{Type: "titre"}, nil
	case strings.HasPrefix(lower, "motion"):
		return SubDiv{Type: "motion"}, nil
	case strings.HasPrefix(lower, "chapitre"):
		subdiv := SubDiv{Type: "chapitre"}
		if mo := chapitreRe.FindStringSubmatch(label); mo != nil {
			subdiv.Num = mo[chapitreRe.SubexpIndex("num")]
		}
		return subdiv, nil
	case strings.HasPrefix(lower, "section"), strings.HasPrefix(lower, "sous-section"):
		subdiv := SubDiv{Type: "section"}
		if strings.HasPrefix(lower, "sous-") {
			subdiv.Type = "sous-section"
		}
		if mo := sectionRe.FindStringSubmatch(label); mo != nil {
			subdiv.Num = mo[sectionRe.SubexpIndex("num")]
		}
		return subdiv, nil
	case strings.HasPrefix(lower, "annexe"):
		subdiv := SubDiv{Type: "annexe"}
		if mo := annexeRe.FindStringSubmatch(label); mo != nil {
			subdiv.Num = mo[annexeRe.SubexpIndex("num")]
		}
		return subdiv, nil
	}

	mo := articleRe.FindStringSubmatch(label)
	if mo == nil {
		return SubDiv{}, fmt.Errorf("cannot parse subdivision %q", label)
	}
	subdiv := SubDiv{
		Type: "article",
		Num:  normalizeArticleNum(mo[articleRe.SubexpIndex("num")]),
		Mult: strings.TrimSpace(mo[articleRe.SubexpIndex("mult")]),
		Pos:  parseAvantApres(firstNonEmpty(mo[articleRe.SubexpIndex("pos")], mo[articleRe.SubexpIndex("pos2")])),
	}
	if subdiv.Mult != "" {
		if err := validateMult(subdiv.Mult); err != nil {
			return SubDiv{}, fmt.Errorf("cannot parse subdivision %q: %w", label, err)
		}
	}
	return subdiv, nil
}

// ParseSubDivRange parses a label that may cover a range of subdivisions
// ("5 à 8", "4 ter à quinquies") and expands it into an explicit list.
func ParseSubDivRange(label string) ([]SubDiv, error) {
	parts := splitRange(label)
	if len(parts) != 2 {
		subdiv, err := ParseSubDiv(label)
		if err != nil {
			return nil, err
		}
		return []SubDiv{subdiv}, nil
	}

	start, err := ParseSubDiv(parts[0])
	if err != nil {
		return nil, err
	}

	end := strings.TrimSpace(parts[1])
	// "4 ter à quinquies": the end bound is a bare multiplier on the same num.
	if _, ok := adjectiveOrdinals[strings.ToLower(end)]; ok && start.Mult != "" {
		return expandMultRange(start, strings.ToLower(end))
	}

	endSub, err := ParseSubDiv(withArticlePrefix(end))
	if err != nil {
		return nil, err
	}
	return expandNumRange(start, endSub)
}

func splitRange(label string) []string {
	for _, sep := range []string{" à ", " a "} {
		if idx := strings.Index(label, sep); idx > 0 {
			return []string{label[:idx], label[idx+len(sep):]}
		}
	}
	return []string{label}
}

func withArticlePrefix(text string) string {
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "art") {
		return text
	}
	return "article " + text
}

func expandMultRange(start SubDiv, endMult string) ([]SubDiv, error) {
	from, ok := adjectiveOrdinals[strings.ToLower(start.Mult)]
	if !ok {
		return nil, fmt.Errorf("cannot expand multiplier range from %q", start.Mult)
	}
	to, ok := adjectiveOrdinals[endMult]
	if !ok || to < from {
		return nil, fmt.Errorf("cannot expand multiplier range to %q", endMult)
	}
	subdivs := make([]SubDiv, 0, to-from+1)
	for ord := from; ord <= to; ord++ {
		suffix, _ := OrdinalSuffix(ord)
		subdiv := start
		subdiv.Mult = suffix
		subdivs = append(subdivs, subdiv)
	}
	return subdivs, nil
}

func expandNumRange(start, end SubDiv) ([]SubDiv, error) {
	from, err1 := strconv.Atoi(start.Num)
	to, err2 := strconv.Atoi(end.Num)
	if err1 != nil || err2 != nil || to < from {
		return nil, fmt.Errorf("cannot expand subdivision range %s à %s", start.Num, end.Num)
	}
	subdivs := make([]SubDiv, 0, to-from+1)
	for num := from; num <= to; num++ {
		subdiv := start
		subdiv.Num = strconv.Itoa(num)
		subdiv.Mult = ""
		subdivs = append(subdivs, subdiv)
	}
	return subdivs, nil
}

func validateMult(mult string) error {
	words := strings.Fields(mult)
	adjective := strings.ToLower(words[0])
	if _, ok := adjectiveOrdinals[adjective]; !ok {
		return fmt.Errorf("unknown multiplier %q", words[0])
	}
	return nil
}

func normalizeArticleNum(num string) string {
	switch strings.ToLower(num) {
	case "1er", "premier":
		return "1"
	}
	return num
}

func parseAvantApres(text string) string {
	switch strings.ToLower(text) {
	case "avant":
		return "avant"
	case "après", "apres":
		return "après"
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
