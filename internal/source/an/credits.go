package an

import (
	"html/template"
	"strings"
)

// creditsRow is one budget programme line in a credits amendment.
type creditsRow struct {
	Libelle   string
	Nouveau   bool
	AEPositif string
	AENegatif string
	CPPositif string
	CPNegatif string
}

type creditsTable struct {
	Rows []creditsRow

	TotalAEPositif string
	TotalAENegatif string
	TotalCPPositif string
	TotalCPNegatif string

	SoldeAE string
	SoldeCP string
}

var creditsTemplate = template.Must(template.New("credits").Parse(`<table>
<thead>
<tr><th></th><th colspan="2">Autorisations d'engagement</th><th colspan="2">Crédits de paiement</th></tr>
<tr><th>Programmes</th><th>+</th><th>-</th><th>+</th><th>-</th></tr>
</thead>
<tbody>
{{- range .Rows}}
<tr><td>{{.Libelle}}{{if .Nouveau}} (ligne nouvelle){{end}}</td><td>{{.AEPositif}}</td><td>{{.AENegatif}}</td><td>{{.CPPositif}}</td><td>{{.CPNegatif}}</td></tr>
{{- end}}
<tr><td>Totaux</td><td>{{.TotalAEPositif}}</td><td>{{.TotalAENegatif}}</td><td>{{.TotalCPPositif}}</td><td>{{.TotalCPNegatif}}</td></tr>
<tr><td>Solde</td><td colspan="2">{{.SoldeAE}}</td><td colspan="2">{{.SoldeCP}}</td></tr>
</tbody>
</table>
`))

// corps renders the amendement body. A credits amendement carries its
// programme movements as a table standing in for the dispositif; the table
// renders whenever the listeProgrammesAmdt element is present, even empty.
func (a *amendementXML) corps() (string, error) {
	if a.ListeProgrammes == nil {
		return unjustify(a.Dispositif.orEmpty()), nil
	}

	table := creditsTable{
		TotalAEPositif: firstOf(a.TotalAEPositif, a.TotalAEOuvertes),
		TotalAENegatif: firstOf(a.TotalAENegatif, a.TotalAEAnnulees),
		TotalCPPositif: firstOf(a.TotalCPPositif, a.TotalCPOuvertes),
		TotalCPNegatif: firstOf(a.TotalCPNegatif, a.TotalCPAnnulees),
		SoldeAE:        a.SoldeAE,
		SoldeCP:        a.SoldeCP,
	}
	for _, prog := range a.ListeProgrammes.Programmes {
		table.Rows = append(table.Rows, creditsRow{
			Libelle:   prog.Libelle,
			Nouveau:   prog.Nouveau == "true" || prog.Nouveau == "1",
			AEPositif: firstOf(prog.AEPositif, prog.AEOuvertes),
			AENegatif: firstOf(prog.AENegatif, prog.AEAnnulees),
			CPPositif: firstOf(prog.CPPositif, prog.CPOuvertes),
			CPNegatif: firstOf(prog.CPNegatif, prog.CPAnnulees),
		})
	}

	var buf strings.Builder
	if err := creditsTemplate.Execute(&buf, table); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func firstOf(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
