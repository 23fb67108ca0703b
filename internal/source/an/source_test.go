package an

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

func (e *fakeEvents) kinds() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	kinds := make([]string, len(e.events))
	for i, event := range e.events {
		kinds[i] = event.Kind
	}
	return kinds
}

type fakeRefData struct{ organes map[string]string }

func (r *fakeRefData) OrganeLabel(ctx context.Context, uid string) (string, bool) {
	label, ok := r.organes[uid]
	return label, ok
}

func (r *fakeRefData) SenateurGroupe(ctx context.Context, matricule string) (string, bool) {
	return "", false
}

// anServer simulates the AN open-data endpoints for one lecture: a liste.xml
// in discussion order and individual amendement documents.
type anServer struct {
	mu          sync.Mutex
	listeXML    string
	amendements map[string]string
	requests    int
}

func (s *anServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()
		if strings.HasSuffix(r.URL.Path, "/liste.xml") {
			if s.listeXML == "" {
				http.NotFound(w, r)
				return
			}
			io.WriteString(w, s.listeXML)
			return
		}
		parts := strings.Split(strings.TrimSuffix(r.URL.Path, ".xml"), "/")
		numeroPrefixe := parts[len(parts)-1]
		s.mu.Lock()
		doc, ok := s.amendements[numeroPrefixe]
		s.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, doc)
	})
}

func (s *anServer) requestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func listeXML(items ...string) string {
	return `<amdtsParOrdreDeDiscussion><amendements>` +
		strings.Join(items, "") +
		`</amendements></amdtsParOrdreDeDiscussion>`
}

func discussionItem(numero string, commune, identique string) string {
	return fmt.Sprintf(
		`<amendement numero=%q discussionCommune=%q discussionIdentique=%q/>`,
		numero, commune, identique)
}

func amendementDoc(numero int, tri, dispositif string) string {
	return fmt.Sprintf(`<amendement xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
		<numero>%d</numero>
		<numeroLong>%d</numeroLong>
		<triAmendement>%s</triAmendement>
		<division><type>ARTICLE</type><titre>Article 1er</titre></division>
		<auteur><nom>Dupont</nom><prenom>Marie</prenom><tribunId>PA1234</tribunId>
			<groupeTribunId>730964</groupeTribunId>
			<estGouvernement>0</estGouvernement><estRapporteur>0</estRapporteur></auteur>
		<dispositif>%s</dispositif>
		<exposeSommaire><p>Expose</p></exposeSommaire>
		<sortEnSeance xsi:nil="true"/>
		<etat>AT</etat>
		<retireAvantPublication>0</retireAvantPublication>
	</amendement>`, numero, numero, tri, dispositif)
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
		RefData: &fakeRefData{organes: map[string]string{"PO730964": "La République en Marche"}},
		BaseURL: serverURL,
		Logger:  logger,
	})
	return src, events
}

func testLecture() *domain.Lecture {
	return &domain.Lecture{
		PK:      1,
		Chambre: domain.ChambreAN,
		Texte:   domain.Texte{PK: 1, Numero: 269, Legislature: 15},
		OrganeAbrev: "AN",
	}
}

func TestCollectChanges_CreatesAmendements(t *testing.T) {
	server := &anServer{
		listeXML: listeXML(
			discussionItem("177", "", ""),
			discussionItem("270", "4", "20"),
		),
		amendements: map[string]string{
			"177": amendementDoc(177, "A001", "<p>Un</p>"),
			"270": amendementDoc(270, "A002", "<p>Deux</p>"),
		},
	}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	src, _ := newTestSource(t, ts.URL)
	lecture := testLecture()

	changes, err := src.CollectChanges(context.Background(), lecture, 3)
	require.NoError(t, err)

	assert.True(t, changes.DerouleurFetchSuccess)
	assert.Empty(t, changes.Alerts)
	require.Len(t, changes.Actions, 2)
	for _, action := range changes.Actions {
		_, ok := action.(*source.CreateAmendement)
		assert.True(t, ok)
	}
	create := changes.Actions[1].(*source.CreateAmendement)
	assert.Equal(t, 270, create.Num)
	require.NotNil(t, create.IDDiscussionCommune)
	assert.Equal(t, int64(4), *create.IDDiscussionCommune)
	require.NotNil(t, create.IDIdentique)
	assert.Equal(t, int64(20), *create.IDIdentique)
	assert.Equal(t, "La République en Marche", create.Groupe)

	require.NotNil(t, changes.PositionChanges[177])
	require.NotNil(t, changes.PositionChanges[270])
	assert.Equal(t, 1, *changes.PositionChanges[177])
	assert.Equal(t, 2, *changes.PositionChanges[270])
}

func TestCollectChanges_DerouleurNotFound(t *testing.T) {
	server := &anServer{}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	src, _ := newTestSource(t, ts.URL)
	changes, err := src.CollectChanges(context.Background(), testLecture(), 3)
	require.NoError(t, err)
	assert.False(t, changes.DerouleurFetchSuccess)
	assert.Empty(t, changes.Alerts)
}

func TestCollectChanges_ExplorationBound(t *testing.T) {
	server := &anServer{
		listeXML: listeXML(discussionItem("1", "", "")),
		amendements: map[string]string{
			"1": amendementDoc(1, "A001", "<p>Un</p>"),
		},
	}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	src, _ := newTestSource(t, ts.URL)
	_, err := src.CollectChanges(context.Background(), testLecture(), 3)
	require.NoError(t, err)

	// One dérouleur fetch, one discussed amendement, then exploration of
	// nums 2..4 only.
	assert.Equal(t, 1+1+3, server.requestCount())
}

func TestCollectChanges_ExplorationExtendsOnFind(t *testing.T) {
	server := &anServer{
		listeXML: listeXML(discussionItem("1", "", "")),
		amendements: map[string]string{
			"1": amendementDoc(1, "A001", "<p>Un</p>"),
			"3": amendementDoc(3, "A003", "<p>Trois</p>"),
		},
	}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	src, _ := newTestSource(t, ts.URL)
	changes, err := src.CollectChanges(context.Background(), testLecture(), 3)
	require.NoError(t, err)

	// Finding num 3 pushes the bound to 6: exploration covers 2..6.
	assert.Equal(t, 1+1+5, server.requestCount())
	assert.Len(t, changes.Actions, 2)
}

func TestCollectChanges_ServerErrorTreatedAsNotFound(t *testing.T) {
	var listeServed bool
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/liste.xml") {
			listeServed = true
			io.WriteString(w, listeXML(discussionItem("1", "", "")))
			return
		}
		if strings.HasSuffix(r.URL.Path, "/1.xml") {
			io.WriteString(w, amendementDoc(1, "A001", "<p>Un</p>"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	src, _ := newTestSource(t, ts.URL)
	changes, err := src.CollectChanges(context.Background(), testLecture(), 2)
	require.NoError(t, err)

	assert.True(t, listeServed)
	// 500 responses during exploration count as not-found, not alerts.
	assert.Empty(t, changes.Alerts)
	assert.Empty(t, changes.Errored)
	assert.Len(t, changes.Actions, 1)
}

func TestCollectThenApply_IsIdempotent(t *testing.T) {
	server := &anServer{
		listeXML: listeXML(
			discussionItem("1", "", ""),
			discussionItem("2", "", ""),
		),
		amendements: map[string]string{
			"1": amendementDoc(1, "A001", "<p>Un</p>"),
			"2": amendementDoc(2, "A002", "<p>Deux</p>"),
		},
	}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	src, events := newTestSource(t, ts.URL)
	lecture := testLecture()
	repo := newFakeRepo()
	ctx := context.Background()

	changes, err := src.CollectChanges(ctx, lecture, 2)
	require.NoError(t, err)
	result, err := src.ApplyChanges(ctx, repo, lecture, changes)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Contains(t, events.kinds(), domain.EventOrdreDiscussionModifie)

	// A second fetch against unchanged upstream data is a no-op.
	eventsBefore := len(events.kinds())
	changes, err = src.CollectChanges(ctx, lecture, 2)
	require.NoError(t, err)
	assert.Empty(t, changes.Actions)
	assert.Empty(t, changes.PositionChanges)
	assert.ElementsMatch(t, []int{1, 2}, changes.Unchanged)

	result, err = src.ApplyChanges(ctx, repo, lecture, changes)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Len(t, result.Amendements, 2)
	assert.Len(t, events.kinds(), eventsBefore)
}

func TestCollectThenApply_UpdatesCorps(t *testing.T) {
	server := &anServer{
		listeXML: listeXML(discussionItem("1", "", "")),
		amendements: map[string]string{
			"1": amendementDoc(1, "A001", "<p>Un</p>"),
		},
	}
	ts := httptest.NewServer(server.handler())
	defer ts.Close()

	src, events := newTestSource(t, ts.URL)
	lecture := testLecture()
	repo := newFakeRepo()
	ctx := context.Background()

	changes, err := src.CollectChanges(ctx, lecture, 1)
	require.NoError(t, err)
	_, err = src.ApplyChanges(ctx, repo, lecture, changes)
	require.NoError(t, err)

	server.mu.Lock()
	server.amendements["1"] = amendementDoc(1, "A001", "<p>Un bis</p>")
	server.mu.Unlock()

	changes, err = src.CollectChanges(ctx, lecture, 1)
	require.NoError(t, err)
	require.Len(t, changes.Actions, 1)
	_, ok := changes.Actions[0].(*source.UpdateAmendement)
	assert.True(t, ok)

	_, err = src.ApplyChanges(ctx, repo, lecture, changes)
	require.NoError(t, err)
	amendement := lecture.FindAmendement(1)
	require.NotNil(t, amendement)
	assert.Equal(t, "<p>Un bis</p>", amendement.Corps)
	assert.Contains(t, events.kinds(), domain.EventCorpsAmendementModifie)
}
