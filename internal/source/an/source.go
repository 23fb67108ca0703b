// Package an collects amendements from the Assemblée nationale open-data
// feeds. The dérouleur (liste.xml) gives the discussion order; each
// amendement then has its own XML document.
package an

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"amendement_fetcher/internal/domain"
	"amendement_fetcher/internal/httpclient"
	"amendement_fetcher/internal/sanitize"
	"amendement_fetcher/internal/source"
)

type Source struct {
	client   *httpclient.Client
	cleaner  *sanitize.Cleaner
	applier  *source.Applier
	refData  source.RefData
	progress source.ProgressReporter
	baseURL  string
	logger   *slog.Logger
}

type Options struct {
	Client   *httpclient.Client
	Cleaner  *sanitize.Cleaner
	Applier  *source.Applier
	RefData  source.RefData
	Progress source.ProgressReporter
	BaseURL  string
	Logger   *slog.Logger
}

func New(opts Options) *Source {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Source{
		client:   opts.Client,
		cleaner:  opts.Cleaner,
		applier:  opts.Applier,
		refData:  opts.RefData,
		progress: opts.Progress,
		baseURL:  baseURL,
		logger:   opts.Logger,
	}
}

func (s *Source) Chambre() domain.Chambre {
	return domain.ChambreAN
}

// Prepare is a no-op: AN data is fetched document by document, there is
// nothing to warm ahead of the dérouleur.
func (s *Source) Prepare(ctx context.Context, lecture *domain.Lecture) {}

func (s *Source) CollectChanges(ctx context.Context, lecture *domain.Lecture, max404 int) (*source.CollectedChanges, error) {
	changes := source.NewCollectedChanges()

	derouleur, fetchErr := s.fetchDiscussionList(ctx, lecture)
	if fetchErr != nil {
		changes.DerouleurFetchSuccess = false
		if !fetchErr.NotFound() {
			s.logger.Error("fetching AN derouleur failed",
				"lecture", lecture.String(), "url", fetchErr.URL, "error", fetchErr.Message)
			changes.Alerts = append(changes.Alerts, fetchErr)
		}
		return changes, nil
	}

	if len(derouleur.discussionItems()) == 0 {
		s.logger.Warn("no amendements in discussion", "lecture", lecture.String())
	}

	trisDiscussed := s.collectDiscussed(ctx, lecture, derouleur, changes, max404)
	trisOther := s.collectOther(ctx, lecture, derouleur.discussionNums(), derouleur.findPrefix(), max404, changes)

	tris := uniqueTris(append(trisDiscussed, trisOther...))
	changes.PositionChanges = derouleur.updatedAmendementPositions(tris)

	return changes, nil
}

// collectDiscussed walks the dérouleur items in discussion order (phase A).
func (s *Source) collectDiscussed(ctx context.Context, lecture *domain.Lecture, derouleur *derouleurData, changes *source.CollectedChanges, max404 int) []triAmendement {
	items := derouleur.discussionItems()
	total := len(items) + max404

	var tris []triAmendement
	for i, item := range items {
		num, tri, fetchErr := s.collectAmendement(ctx, lecture, item.Numero,
			item.idDiscussionCommune(), item.idIdentique(), changes)
		if fetchErr != nil {
			s.logger.Error("fetching AN amendement failed",
				"lecture", lecture.String(), "numero", item.Numero,
				"url", fetchErr.URL, "error", fetchErr.Message)
			changes.Alerts = append(changes.Alerts, fetchErr)
			if _, parsed, err := parseNumInListe(item.Numero); err == nil {
				changes.Errored = append(changes.Errored, domain.NumDisp(parsed, 0))
			}
			continue
		}
		tris = append(tris, triAmendement{tri: tri, num: num})
		if s.progress != nil {
			s.progress.SetFetchProgress(ctx, lecture.PK, i+1, total)
		}
	}
	return tris
}

// collectOther explores amendement numbers absent from the dérouleur
// (phase B): withdrawn, irrecevable or not-yet-scheduled amendements still
// have their own document. Exploration stops after max404 consecutive-ish
// misses past the highest number seen, and extends when a find pushes the
// known maximum up.
func (s *Source) collectOther(ctx context.Context, lecture *domain.Lecture, discussionNums map[int]bool, prefix string, max404 int, changes *source.CollectedChanges) []triAmendement {
	maxNumSeen := lecture.MaxAmendementNum()
	for num := range discussionNums {
		if num > maxNumSeen {
			maxNumSeen = num
		}
	}

	s.logger.Info("exploring undiscussed amendement numbers",
		"lecture", lecture.String(), "max_num", maxNumSeen, "max_404", max404)

	var tris []triAmendement
	for numero := 1; numero <= maxNumSeen+max404; numero++ {
		if discussionNums[numero] {
			continue
		}
		num, tri, fetchErr := s.collectAmendement(ctx, lecture, numeroPrefixe(prefix, numero), nil, nil, changes)
		if fetchErr != nil {
			if !fetchErr.NotFound() {
				s.logger.Error("fetching AN amendement failed",
					"lecture", lecture.String(), "numero", numero,
					"url", fetchErr.URL, "error", fetchErr.Message)
				changes.Alerts = append(changes.Alerts, fetchErr)
				changes.Errored = append(changes.Errored, domain.NumDisp(numero, 0))
			}
			continue
		}
		if numero > maxNumSeen {
			maxNumSeen = numero
		}
		tris = append(tris, triAmendement{tri: tri, num: num})
	}

	s.logger.Info("exploration done",
		"lecture", lecture.String(), "explored_up_to", maxNumSeen+max404)
	return tris
}

// collectAmendement fetches one amendement document, decides on an action and
// returns the (triAmendement, num) ordering key.
func (s *Source) collectAmendement(ctx context.Context, lecture *domain.Lecture, numeroPrefixe string, idDiscussionCommune, idIdentique *int64, changes *source.CollectedChanges) (int, string, *source.FetchError) {
	url := amendementURL(s.baseURL, lecture, numeroPrefixe)
	content, fetchErr := s.retrieveContent(ctx, lecture, url)
	if fetchErr != nil {
		return 0, "", fetchErr
	}

	amend, err := decodeAmendement(content)
	if err != nil {
		return 0, "", source.DataError(1, url, err.Error())
	}

	fields, err := s.extractFields(ctx, amend, idDiscussionCommune, idIdentique)
	if err != nil {
		return 0, "", source.DataError(1, url, err.Error())
	}

	num := amend.num()
	if action := source.Inspect(lecture, num, fields); action != nil {
		changes.Actions = append(changes.Actions, action)
	} else {
		changes.Unchanged = append(changes.Unchanged, num)
	}
	return num, amend.triAmendement(), nil
}

func (s *Source) extractFields(ctx context.Context, amend *amendementXML, idDiscussionCommune, idIdentique *int64) (source.AmendementFields, error) {
	subdiv, err := amend.subDiv()
	if err != nil {
		return source.AmendementFields{}, err
	}
	corps, err := amend.corps()
	if err != nil {
		return source.AmendementFields{}, err
	}
	missionTitre, missionTitreCourt := amend.missionRef()

	return source.AmendementFields{
		SubDiv:              subdiv,
		ParentNumRaw:        amend.parentRawNum(),
		Rectif:              amend.rectif(),
		IDDiscussionCommune: idDiscussionCommune,
		IDIdentique:         idIdentique,
		Matricule:           amend.matricule(),
		Groupe:              s.groupe(ctx, amend),
		Auteur:              amend.auteur(),
		MissionTitre:        missionTitre,
		MissionTitreCourt:   missionTitreCourt,
		Corps:               s.cleaner.Clean(corps),
		Expose:              s.cleaner.Clean(amend.expose()),
		Sort:                amend.sort(),
	}, nil
}

// groupe resolves the author's parliamentary group through the open-data
// organe table. Government and rapporteur amendements have none.
func (s *Source) groupe(ctx context.Context, amend *amendementXML) string {
	auteur := amend.Auteur
	if auteur == nil {
		return "Non trouvé"
	}
	if auteur.EstGouvernement == "1" || auteur.EstRapporteur == "1" {
		return ""
	}
	groupeTribunID := auteur.GroupeTribunID.get()
	if groupeTribunID == nil || *groupeTribunID == "" {
		s.logger.Warn("missing groupeTribunId", "numero", amend.Numero)
		return "Non précisé"
	}
	label, found := s.refData.OrganeLabel(ctx, "PO"+*groupeTribunID)
	if !found {
		s.logger.Warn("unknown groupe tribun",
			"groupe", "PO"+*groupeTribunID, "numero", amend.Numero)
		return "Non trouvé"
	}
	return label
}

func (s *Source) fetchDiscussionList(ctx context.Context, lecture *domain.Lecture) (*derouleurData, *source.FetchError) {
	url := derouleurURL(s.baseURL, lecture)
	content, fetchErr := s.retrieveContent(ctx, lecture, url)
	if fetchErr != nil {
		return nil, fetchErr
	}
	derouleur, err := decodeDerouleur(lecture, content)
	if err != nil {
		return nil, source.DataError(1, url, err.Error())
	}
	return derouleur, nil
}

// retrieveContent normalizes AN server quirks: transport failures, 500
// responses and empty 200 bodies are all treated as not-found, because the
// upstream answers that way for abandoned or never-deposited amendements.
func (s *Source) retrieveContent(ctx context.Context, lecture *domain.Lecture, url string) ([]byte, *source.FetchError) {
	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, source.HTTPError(http.StatusNotFound, url,
			fmt.Sprintf("ressource indisponible pour %s: %v", lecture.String(), err))
	}
	if resp.StatusCode == http.StatusInternalServerError {
		return nil, source.HTTPError(http.StatusNotFound, url,
			fmt.Sprintf("serveur indisponible pour %s", lecture.String()))
	}
	if len(resp.Body) == 0 {
		return nil, source.HTTPError(http.StatusNotFound, url,
			fmt.Sprintf("contenu vide pour %s", lecture.String()))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, source.HTTPError(resp.StatusCode, url,
			fmt.Sprintf("code http %d pour %s", resp.StatusCode, lecture.String()))
	}
	return resp.Body, nil
}

func (s *Source) ApplyChanges(ctx context.Context, repo source.Repository, lecture *domain.Lecture, changes *source.CollectedChanges) (source.FetchResult, error) {
	return s.applier.ApplyChanges(ctx, repo, lecture, changes)
}
