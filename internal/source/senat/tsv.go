package senat

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"amendement_fetcher/internal/domain"
)

// requiredHeaders are the TSV columns the parser depends on. The file has
// more, their order varies between sessions.
var requiredHeaders = []string{
	"Subdivision",
	"Numéro",
	"Dispositif",
	"Objet",
	"Sort",
	"Alinéa",
	"Auteur",
	"Fiche Sénateur",
	"Date de dépôt",
}

// tsvRow is one amendement line keyed by header name.
type tsvRow map[string]string

// parseTSV decodes the jeu_complet file. The payload is cp1252, the first
// line is a title, the header row sits on the second line, and cell values
// may contain unescaped tabs inside their HTML.
func parseTSV(content []byte) ([]tsvRow, error) {
	text, err := charmap.Windows1252.NewDecoder().Bytes(content)
	if err != nil {
		return nil, fmt.Errorf("decode cp1252: %w", err)
	}

	lines := strings.Split(strings.ReplaceAll(string(text), "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("truncated file: %d lines", len(lines))
	}

	headers := strings.Split(lines[1], "\t")
	for i, header := range headers {
		headers[i] = strings.TrimSpace(header)
	}
	if missing := missingHeaders(headers); len(missing) > 0 {
		return nil, fmt.Errorf("missing headers %v", missing)
	}

	var rows []tsvRow
	for _, line := range lines[2:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells, err := repairLine(line, len(headers))
		if err != nil {
			return nil, err
		}
		row := make(tsvRow, len(headers))
		for i, header := range headers {
			row[header] = cells[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func missingHeaders(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, header := range headers {
		present[header] = true
	}
	var missing []string
	for _, required := range requiredHeaders {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	return missing
}

// repairLine fixes lines broken by unescaped tabs inside HTML cells: a chunk
// opening a <body> absorbs following chunks until its </body> closes.
func repairLine(line string, headerSize int) ([]string, error) {
	chunks := strings.Split(line, "\t")
	var merged []string
	for i := 0; i < len(chunks); i++ {
		chunk := chunks[i]
		for strings.HasPrefix(chunk, "<body>") &&
			!strings.HasSuffix(strings.TrimRight(chunk, " \t"), "</body>") &&
			i+1 < len(chunks) {
			i++
			chunk += " " + chunks[i]
		}
		merged = append(merged, chunk)
	}
	if len(merged) != headerSize {
		return nil, fmt.Errorf("malformed line: %d cells for %d headers", len(merged), headerSize)
	}
	return merged, nil
}

// parsePartie tells which part of a finance bill an amendement number
// belongs to, from its roman-numeral prefix.
func parsePartie(numero string) *int {
	if strings.HasPrefix(numero, "II-") {
		partie := 2
		return &partie
	}
	if strings.HasPrefix(numero, "I-") {
		partie := 1
		return &partie
	}
	return nil
}

var ficheRe = regexp.MustCompile(`^[\w/_]+(\d{5}[\da-z])\.html$`)

// extractMatricule pulls the senator matricule out of a fiche URL like
// https://www.senat.fr/senateur/dupont_marie12345x.html
func extractMatricule(fiche string) (string, error) {
	if fiche == "" {
		return "", nil
	}
	parsed, err := url.Parse(fiche)
	if err != nil {
		return "", fmt.Errorf("parse fiche url %q: %w", fiche, err)
	}
	mo := ficheRe.FindStringSubmatch(parsed.Path)
	if mo == nil {
		return "", fmt.Errorf("could not extract matricule from %q", fiche)
	}
	return strings.ToUpper(mo[1]), nil
}

func parseDateDepot(text string) *time.Time {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(text))
	if err != nil {
		return nil
	}
	return &parsed
}

func eqPartie(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// jeuCompletURL builds the bulk TSV location for one lecture.
func jeuCompletURL(baseURL string, lecture *domain.Lecture) string {
	texte := lecture.Texte
	if lecture.IsCommission {
		return fmt.Sprintf("%s/amendements/commissions/%s/%d/jeu_complet_commission_%s_%d.csv",
			baseURL, texte.SessionStr, texte.Numero, texte.SessionStr, texte.Numero)
	}
	return fmt.Sprintf("%s/amendements/%s/%d/jeu_complet_%s_%d.csv",
		baseURL, texte.SessionStr, texte.Numero, texte.SessionStr, texte.Numero)
}
