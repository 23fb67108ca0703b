package senat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/encoding/charmap"
)

func encodeCP1252(t *testing.T, text string) []byte {
	t.Helper()
	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)
	return encoded
}

const tsvHeader = "Subdivision\tNuméro\tDispositif\tObjet\tSort\tAlinéa\tAuteur\tFiche Sénateur\tDate de dépôt"

func TestParseTSV(t *testing.T) {
	content := encodeCP1252(t, strings.Join([]string{
		"Sénat - Titre du fichier",
		tsvHeader,
		"Article 1er\t42\t<body>Dispositif</body>\t<body>Objet</body>\tAdopté\t2\tM. DUPONT\thttps://www.senat.fr/senateur/dupont_m12345x.html\t2019-11-21",
	}, "\n"))

	rows, err := parseTSV(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "42", rows[0]["Numéro"])
	assert.Equal(t, "Article 1er", rows[0]["Subdivision"])
	assert.Equal(t, "Adopté", rows[0]["Sort"])
	assert.Equal(t, "M. DUPONT", rows[0]["Auteur"])
}

func TestParseTSV_RepairsUnescapedTabs(t *testing.T) {
	// The Dispositif cell contains raw tabs inside its HTML.
	content := encodeCP1252(t, strings.Join([]string{
		"Sénat - Titre du fichier",
		tsvHeader,
		"Article 1er\t42\t<body>Dispositif\tavec\ttabulations</body>\t<body>Objet</body>\tAdopté\t\tM. DUPONT\t\t2019-11-21",
	}, "\n"))

	rows, err := parseTSV(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "<body>Dispositif avec tabulations</body>", rows[0]["Dispositif"])
	assert.Equal(t, "Adopté", rows[0]["Sort"])
}

func TestParseTSV_MissingHeaders(t *testing.T) {
	content := encodeCP1252(t, strings.Join([]string{
		"Sénat - Titre du fichier",
		"Subdivision\tNuméro\tDispositif",
		"Article 1er\t42\t<body>x</body>",
	}, "\n"))

	_, err := parseTSV(content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing headers")
}

func TestParseTSV_MalformedLine(t *testing.T) {
	content := encodeCP1252(t, strings.Join([]string{
		"Sénat - Titre du fichier",
		tsvHeader,
		"Article 1er\t42",
	}, "\n"))

	_, err := parseTSV(content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed line")
}

func TestParsePartie(t *testing.T) {
	require.Nil(t, parsePartie("42"))

	partie := parsePartie("I-42")
	require.NotNil(t, partie)
	assert.Equal(t, 1, *partie)

	partie = parsePartie("II-42")
	require.NotNil(t, partie)
	assert.Equal(t, 2, *partie)
}

func TestExtractMatricule(t *testing.T) {
	matricule, err := extractMatricule("https://www.senat.fr/senateur/dupont_m12345x.html")
	require.NoError(t, err)
	assert.Equal(t, "12345X", matricule)

	matricule, err = extractMatricule("")
	require.NoError(t, err)
	assert.Equal(t, "", matricule)

	_, err = extractMatricule("https://www.senat.fr/senateur/dupont.pdf")
	assert.Error(t, err)
}

func TestParseDateDepot(t *testing.T) {
	date := parseDateDepot("2019-11-21")
	require.NotNil(t, date)
	assert.Equal(t, "2019-11-21", date.Format("2006-01-02"))

	assert.Nil(t, parseDateDepot(""))
	assert.Nil(t, parseDateDepot("21/11/2019"))
}
