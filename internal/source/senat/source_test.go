package senat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/encoding/charmap"

	"amendement_fetcher/internal/domain"
	"amendement_fetcher/internal/httpclient"
	"amendement_fetcher/internal/sanitize"
	"amendement_fetcher/internal/source"
)

type fakeRepo struct {
	articles map[string]*domain.Article
	nextPK   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{articles: map[string]*domain.Article{}}
}

func (r *fakeRepo) FindOrCreateArticle(ctx context.Context, lecturePK int64, subdiv domain.SubDiv) (*domain.Article, error) {
	key := subdiv.String()
	if article, ok := r.articles[key]; ok {
		return article, nil
	}
	r.nextPK++
	article := &domain.Article{PK: r.nextPK, LecturePK: lecturePK, SubDiv: subdiv}
	r.articles[key] = article
	return article, nil
}

func (r *fakeRepo) CreateAmendement(ctx context.Context, a *domain.Amendement) error {
	r.nextPK++
	a.PK = r.nextPK
	return nil
}

func (r *fakeRepo) SaveAmendement(ctx context.Context, a *domain.Amendement) error { return nil }
func (r *fakeRepo) ClearPositions(ctx context.Context, lecturePK int64, nums []int) error {
	return nil
}
func (r *fakeRepo) SetPosition(ctx context.Context, lecturePK int64, num int, position *int) error {
	return nil
}
func (r *fakeRepo) ClearBatch(ctx context.Context, a *domain.Amendement) error     { return nil }
func (r *fakeRepo) ClearUserTable(ctx context.Context, a *domain.Amendement) error { return nil }

type fakeEvents struct {
	mu     sync.Mutex
	events []domain.Event
}

func (e *fakeEvents) Record(ctx context.Context, event domain.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

type fakeRefData struct{ senateurs map[string]string }

func (r *fakeRefData) OrganeLabel(ctx context.Context, uid string) (string, bool) {
	return "", false
}

func (r *fakeRefData) SenateurGroupe(ctx context.Context, matricule string) (string, bool) {
	groupe, ok := r.senateurs[matricule]
	return groupe, ok
}

// senatServer simulates the Sénat endpoints: the jeu_complet TSV and the
// dérouleur JSON documents.
type senatServer struct {
	mu        sync.Mutex
	tsv       string
	derouleur string
}

func (s *senatServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		tsv, derouleur := s.tsv, s.derouleur
		s.mu.Unlock()
		switch {
		case strings.HasSuffix(r.URL.Path, ".csv"):
			if tsv == "" {
				http.NotFound(w, r)
				return
			}
			encoded, _ := charmap.Windows1252.NewEncoder().Bytes([]byte(tsv))
			w.Write(encoded)
		case strings.HasSuffix(r.URL.Path, ".json"):
			if derouleur == "" {
				http.NotFound(w, r)
				return
			}
			io.WriteString(w, derouleur)
		default:
			http.NotFound(w, r)
		}
	})
}

func tsvRowLine(subdiv string, numero string, dispositif string) string {
	return fmt.Sprintf(
		"%s\t%s\t<body>%s</body>\t<body><p>Objet</p></body>\t\t\tM. DUPONT\thttps://www.senat.fr/senateur/dupont_m12345x.html\t2019-11-21",
		subdiv, numero, dispositif)
}

func tsvDocument(rows ...string) string {
	return strings.Join(append([]string{
		"Sénat - Liste des amendements",
		tsvHeader,
	}, rows...), "\n")
}

func derouleurJSONDoc(nums ...string) string {
	items := make([]string, len(nums))
	for i, num := range nums {
		items[i] = fmt.Sprintf(`{
			"idAmendement": "uid-%s",
			"num": %q,
			"isDiscussionCommune": "false",
			"idDiscussionCommune": "",
			"isIdentique": "false",
			"idIdentique": ""
		}`, num, num)
	}
	return fmt.Sprintf(`{"Subdivisions": [{"Amendements": [%s]}]}`, strings.Join(items, ","))
}

func newTestSource(t *testing.T, serverURL string) (*Source, *fakeEvents) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	events := &fakeEvents{}
	src := New(Options{
		Client: httpclient.New(httpclient.Config{
			Timeout:     5 * time.Second,
			MaxAttempts: 1,
		}, logger),
		Cleaner: sanitize.NewCleaner(),
		Applier: source.NewApplier(events, nil, logger),
		RefData: &fakeRefData{senateurs: map[string]string{"12345X": "Les Républicains"}},
		BaseURL: serverURL,
		Logger:  logger,
	})
	return src, events
}

func testLecture() *domain.Lecture {
	return &domain.Lecture{
		PK:      1,
		Chambre: domain.ChambreSenat,
		Texte:   domain.Texte{PK: 1, Numero: 63, SessionStr: "2019-2020"},
	}
}

func TestCollectChanges_CreatesAmendements(t *testing.T) {
	server := &senatServer{
		tsv: tsvDocument(
			tsvRowLine("Article 1er", "42", "<p>Un</p>"),
			tsvRowLine("Article 2", "57 rect.", "<p>Deux</p>"),
		),
		derouleur: derouleurJSONDoc("57 rect.", "42"),
	}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	src, _ := newTestSource(t, ts.URL)
	lecture := testLecture()

	changes, err := src.CollectChanges(context.Background(), lecture, source.MaxDefault404)
	require.NoError(t, err)

	assert.True(t, changes.DerouleurFetchSuccess)
	assert.Empty(t, changes.Alerts)
	require.Len(t, changes.Actions, 2)

	create := changes.Actions[0].(*source.CreateAmendement)
	assert.Equal(t, 42, create.Num)
	assert.Equal(t, 0, create.Rectif)
	assert.Equal(t, "12345X", create.Matricule)
	assert.Equal(t, "Les Républicains", create.Groupe)
	assert.Equal(t, "M. DUPONT", create.Auteur)
	assert.Equal(t, "<p>Un</p>", create.Corps)

	rectified := changes.Actions[1].(*source.CreateAmendement)
	assert.Equal(t, 57, rectified.Num)
	assert.Equal(t, 1, rectified.Rectif)

	// Dérouleur order: 57 first, 42 second.
	require.NotNil(t, changes.PositionChanges[57])
	require.NotNil(t, changes.PositionChanges[42])
	assert.Equal(t, 1, *changes.PositionChanges[57])
	assert.Equal(t, 2, *changes.PositionChanges[42])
}

func TestCollectChanges_PartieFilter(t *testing.T) {
	server := &senatServer{
		tsv: tsvDocument(
			tsvRowLine("Article 1er", "I-10", "<p>Partie un</p>"),
			tsvRowLine("Article 40", "II-20", "<p>Partie deux</p>"),
			tsvRowLine("Article 50", "30", "<p>Sans partie</p>"),
		),
		derouleur: derouleurJSONDoc("I-10"),
	}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	src, _ := newTestSource(t, ts.URL)
	lecture := testLecture()
	partie := 1
	lecture.Partie = &partie

	changes, err := src.CollectChanges(context.Background(), lecture, source.MaxDefault404)
	require.NoError(t, err)

	require.Len(t, changes.Actions, 1)
	create := changes.Actions[0].(*source.CreateAmendement)
	assert.Equal(t, 10, create.Num)
}

func TestCollectChanges_TSVNotFound(t *testing.T) {
	server := &senatServer{}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	src, _ := newTestSource(t, ts.URL)
	changes, err := src.CollectChanges(context.Background(), testLecture(), source.MaxDefault404)
	require.NoError(t, err)
	assert.False(t, changes.DerouleurFetchSuccess)
	assert.Empty(t, changes.Alerts)
}

func TestCollectChanges_DerouleurMissingIsNotFatal(t *testing.T) {
	server := &senatServer{
		tsv: tsvDocument(tsvRowLine("Article 1er", "42", "<p>Un</p>")),
	}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	src, _ := newTestSource(t, ts.URL)
	changes, err := src.CollectChanges(context.Background(), testLecture(), source.MaxDefault404)
	require.NoError(t, err)

	assert.True(t, changes.DerouleurFetchSuccess)
	require.Len(t, changes.Actions, 1)
	assert.Empty(t, changes.PositionChanges)
}

func TestCollectThenApply_IsIdempotent(t *testing.T) {
	server := &senatServer{
		tsv: tsvDocument(
			tsvRowLine("Article 1er", "42", "<p>Un</p>"),
			tsvRowLine("Article 2", "57", "<p>Deux</p>"),
		),
		derouleur: derouleurJSONDoc("42", "57"),
	}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	src, events := newTestSource(t, ts.URL)
	lecture := testLecture()
	repo := newFakeRepo()
	ctx := context.Background()

	changes, err := src.CollectChanges(ctx, lecture, source.MaxDefault404)
	require.NoError(t, err)
	result, err := src.ApplyChanges(ctx, repo, lecture, changes)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)

	eventsBefore := len(events.events)
	changes, err = src.CollectChanges(ctx, lecture, source.MaxDefault404)
	require.NoError(t, err)
	assert.Empty(t, changes.Actions)
	assert.Empty(t, changes.PositionChanges)
	assert.ElementsMatch(t, []int{42, 57}, changes.Unchanged)

	result, err = src.ApplyChanges(ctx, repo, lecture, changes)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Len(t, events.events, eventsBefore)
}

func TestCollectChanges_AmendementLeavesDiscussion(t *testing.T) {
	server := &senatServer{
		tsv: tsvDocument(
			tsvRowLine("Article 1er", "42", "<p>Un</p>"),
			tsvRowLine("Article 2", "57", "<p>Deux</p>"),
		),
		derouleur: derouleurJSONDoc("42", "57"),
	}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	src, _ := newTestSource(t, ts.URL)
	lecture := testLecture()
	repo := newFakeRepo()
	ctx := context.Background()

	changes, err := src.CollectChanges(ctx, lecture, source.MaxDefault404)
	require.NoError(t, err)
	_, err = src.ApplyChanges(ctx, repo, lecture, changes)
	require.NoError(t, err)

	server.mu.Lock()
	server.derouleur = derouleurJSONDoc("57")
	server.mu.Unlock()

	changes, err = src.CollectChanges(ctx, lecture, source.MaxDefault404)
	require.NoError(t, err)
	require.Contains(t, changes.PositionChanges, 42)
	assert.Nil(t, changes.PositionChanges[42])
	require.NotNil(t, changes.PositionChanges[57])
	assert.Equal(t, 1, *changes.PositionChanges[57])
}

func TestCollectChanges_SousAmendement(t *testing.T) {
	derouleur := `{"Subdivisions": [{"Amendements": [
		{"idAmendement": "uid-42", "num": "42",
		 "isDiscussionCommune": "false", "idDiscussionCommune": "",
		 "isIdentique": "false", "idIdentique": ""},
		{"idAmendement": "uid-57", "num": "57",
		 "isDiscussionCommune": "false", "idDiscussionCommune": "",
		 "isIdentique": "false", "idIdentique": "",
		 "isSousAmendement": "true", "idAmendementPere": "uid-42"}
	]}]}`
	server := &senatServer{
		tsv: tsvDocument(
			tsvRowLine("Article 1er", "42", "<p>Un</p>"),
			tsvRowLine("Article 1er", "57", "<p>Sous</p>"),
		),
		derouleur: derouleur,
	}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	src, _ := newTestSource(t, ts.URL)
	changes, err := src.CollectChanges(context.Background(), testLecture(), source.MaxDefault404)
	require.NoError(t, err)

	require.Len(t, changes.Actions, 2)
	sous := changes.Actions[1].(*source.CreateAmendement)
	assert.Equal(t, 57, sous.Num)
	assert.Equal(t, "42", sous.ParentNumRaw)
}
