// Package senat collects amendements from the Sénat open-data feeds: a bulk
// jeu_complet TSV holding amendement texts, plus per-lecture dérouleur JSON
// documents giving the discussion order.
package senat

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"amendement_fetcher/internal/domain"
	"amendement_fetcher/internal/httpclient"
	"amendement_fetcher/internal/sanitize"
	"amendement_fetcher/internal/source"
)

const DefaultBaseURL = "https://www.senat.fr"

type Source struct {
	client  *httpclient.Client
	cleaner *sanitize.Cleaner
	applier *source.Applier
	refData source.RefData
	baseURL string
	logger  *slog.Logger
}

type Options struct {
	Client  *httpclient.Client
	Cleaner *sanitize.Cleaner
	Applier *source.Applier
	RefData source.RefData
	BaseURL string
	Logger  *slog.Logger
}

func New(opts Options) *Source {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Source{
		client:  opts.Client,
		cleaner: opts.Cleaner,
		applier: opts.Applier,
		refData: opts.RefData,
		baseURL: baseURL,
		logger:  opts.Logger,
	}
}

func (s *Source) Chambre() domain.Chambre {
	return domain.ChambreSenat
}

// Prepare warms the HTTP cache with the bulk TSV and the dérouleur documents
// so the locked fetch window stays short. Only useful when caching is on.
func (s *Source) Prepare(ctx context.Context, lecture *domain.Lecture) {
	if !s.client.CachingEnabled() {
		return
	}
	s.logger.Info("prefetching senat data", "lecture", lecture.String())
	if _, err := s.client.Get(ctx, jeuCompletURL(s.baseURL, lecture)); err != nil {
		s.logger.Warn("prefetch failed", "lecture", lecture.String(), "error", err)
	}
	for _, entry := range derouleurURLs(s.baseURL, lecture) {
		if _, err := s.client.Get(ctx, entry.URL); err != nil {
			s.logger.Warn("prefetch failed", "url", entry.URL, "error", err)
		}
	}
}

func (s *Source) CollectChanges(ctx context.Context, lecture *domain.Lecture, max404 int) (*source.CollectedChanges, error) {
	changes := source.NewCollectedChanges()

	rows, fetchErr := s.fetchAllRows(ctx, lecture)
	if fetchErr != nil {
		changes.DerouleurFetchSuccess = false
		if !fetchErr.NotFound() {
			s.logger.Error("fetching senat TSV failed",
				"lecture", lecture.String(), "url", fetchErr.URL, "error", fetchErr.Message)
			changes.Alerts = append(changes.Alerts, fetchErr)
		}
		return changes, nil
	}

	details, fetchErr := s.fetchDiscussionDetails(ctx, lecture)
	if fetchErr != nil {
		changes.DerouleurFetchSuccess = false
		s.logger.Error("fetching senat derouleur failed",
			"lecture", lecture.String(), "url", fetchErr.URL, "error", fetchErr.Message)
		changes.Alerts = append(changes.Alerts, fetchErr)
		return changes, nil
	}
	if len(details) == 0 {
		s.logger.Info("no amendements in discussion yet", "lecture", lecture.String())
	}
	detailsByNum := make(map[int]discussionDetails, len(details))
	for _, d := range details {
		detailsByNum[d.num] = d
	}

	for _, row := range rows {
		if !eqPartie(lecture.Partie, parsePartie(row["Numéro"])) {
			continue
		}
		num, fields, err := s.extractFields(ctx, row, detailsByNum)
		if err != nil {
			s.logger.Error("parsing senat row failed",
				"lecture", lecture.String(), "numero", row["Numéro"], "error", err)
			continue
		}
		if action := source.Inspect(lecture, num, fields); action != nil {
			changes.Actions = append(changes.Actions, action)
		} else {
			changes.Unchanged = append(changes.Unchanged, num)
		}
	}

	changes.PositionChanges = s.positionChanges(lecture, details)
	return changes, nil
}

func (s *Source) extractFields(ctx context.Context, row tsvRow, detailsByNum map[int]discussionDetails) (int, source.AmendementFields, error) {
	num, rectif, err := domain.ParseNum(row["Numéro"])
	if err != nil {
		return 0, source.AmendementFields{}, err
	}

	subdiv, err := domain.ParseSubDiv(row["Subdivision"])
	if err != nil {
		return 0, source.AmendementFields{}, err
	}

	matricule, err := extractMatricule(row["Fiche Sénateur"])
	if err != nil {
		return 0, source.AmendementFields{}, err
	}

	fields := source.AmendementFields{
		SubDiv:    subdiv,
		Rectif:    rectif,
		Matricule: matricule,
		Groupe:    s.groupe(ctx, matricule),
		Auteur:    row["Auteur"],
		Corps:     s.cleaner.Clean(row["Dispositif"]),
		Expose:    s.cleaner.Clean(row["Objet"]),
		Sort:      row["Sort"],
		Alinea:    strings.TrimSpace(row["Alinéa"]),
		DateDepot: parseDateDepot(row["Date de dépôt"]),
	}

	if details, discussed := detailsByNum[num]; discussed {
		fields.IDDiscussionCommune = details.idDiscussionCommune
		fields.IDIdentique = details.idIdentique
		fields.MissionTitre = details.missionTitre
		fields.MissionTitreCourt = details.missionTitreCourt
		if details.parentNum != nil {
			fields.ParentNumRaw = fmt.Sprintf("%d", *details.parentNum)
		}
	}
	return num, fields, nil
}

func (s *Source) groupe(ctx context.Context, matricule string) string {
	if matricule == "" {
		return ""
	}
	groupe, found := s.refData.SenateurGroupe(ctx, matricule)
	if !found {
		return ""
	}
	return groupe
}

// positionChanges diffs the dérouleur order against the lecture snapshot.
// Amendements that left the discussion lose their position.
func (s *Source) positionChanges(lecture *domain.Lecture, details []discussionDetails) map[int]*int {
	newOrder := make(map[int]int, len(details))
	for _, d := range details {
		newOrder[d.num] = d.position
	}

	positionChanges := make(map[int]*int)
	for num, pos := range newOrder {
		amendement := lecture.FindAmendement(num)
		if amendement == nil || amendement.Position == nil || *amendement.Position != pos {
			position := pos
			positionChanges[num] = &position
		}
	}
	for _, amendement := range lecture.Amendements {
		if amendement.Position == nil {
			continue
		}
		if _, discussed := newOrder[amendement.Num]; !discussed {
			s.logger.Info("amendement left the discussion",
				"lecture", lecture.String(), "num", amendement.Num)
			positionChanges[amendement.Num] = nil
		}
	}
	return positionChanges
}

func (s *Source) fetchAllRows(ctx context.Context, lecture *domain.Lecture) ([]tsvRow, *source.FetchError) {
	url := jeuCompletURL(s.baseURL, lecture)
	resp, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, source.HTTPError(http.StatusNotFound, url,
			fmt.Sprintf("ressource indisponible pour %s: %v", lecture.String(), err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, source.HTTPError(resp.StatusCode, url,
			fmt.Sprintf("code http %d pour %s", resp.StatusCode, lecture.String()))
	}
	rows, parseErr := parseTSV(resp.Body)
	if parseErr != nil {
		return nil, source.DataError(2, url,
			fmt.Sprintf("lecture du TSV pour %s: %v", lecture.String(), parseErr))
	}
	return rows, nil
}

// fetchDiscussionDetails retrieves every dérouleur document. Missing or
// timed-out documents are skipped: upstream serves a 404 until the first
// amendement is scheduled.
func (s *Source) fetchDiscussionDetails(ctx context.Context, lecture *domain.Lecture) ([]discussionDetails, *source.FetchError) {
	var documents []derouleurDocument
	for _, entry := range derouleurURLs(s.baseURL, lecture) {
		resp, err := s.client.Get(ctx, entry.URL)
		if err != nil {
			s.logger.Warn("could not fetch derouleur", "url", entry.URL, "error", err)
			continue
		}
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGatewayTimeout {
			s.logger.Warn("could not fetch derouleur", "url", entry.URL, "status", resp.StatusCode)
			continue
		}
		if len(resp.Body) == 0 {
			s.logger.Warn("empty derouleur response", "url", entry.URL)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, source.HTTPError(resp.StatusCode, entry.URL,
				fmt.Sprintf("code http %d pour %s", resp.StatusCode, lecture.String()))
		}
		document, decodeErr := decodeDerouleur(resp.Body, entry.Mission)
		if decodeErr != nil {
			return nil, source.DataError(1, entry.URL,
				fmt.Sprintf("lecture du json pour %s: %v", lecture.String(), decodeErr))
		}
		documents = append(documents, document)
	}

	details, err := parseDiscussionDetails(documents)
	if err != nil {
		return nil, source.DataError(1, jeuCompletURL(s.baseURL, lecture), err.Error())
	}
	return details, nil
}

func (s *Source) ApplyChanges(ctx context.Context, repo source.Repository, lecture *domain.Lecture, changes *source.CollectedChanges) (source.FetchResult, error) {
	return s.applier.ApplyChanges(ctx, repo, lecture, changes)
}
