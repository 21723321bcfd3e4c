package nested

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assignmentParents = map[string]Parent{
	"article_id": {Column: "article_id", Target: "Article"},
	"round_id":   {Column: "review_round_id", Target: "ReviewRound"},
}

func deepLookups() Lookups {
	return Lookups{"journal_id": "1", "article_id": "2", "round_id": "3", "assignment_id": "4"}
}

func TestConstraints_AllowListSubset(t *testing.T) {
	got, err := Constraints(deepLookups(), assignmentParents, []string{"article_id", "round_id"})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"article_id": uint(2), "review_round_id": uint(3)}, Columns(got))
}

func TestConstraints_UnrecognizedKeyIsNotFound(t *testing.T) {
	_, err := Constraints(deepLookups(), assignmentParents, nil)
	assert.ErrorIs(t, err, ErrUnknownAncestor)
}

func TestConstraints_InvalidIdentifier(t *testing.T) {
	_, err := Constraints(Lookups{"article_id": "abc"}, assignmentParents, nil)
	assert.ErrorIs(t, err, ErrInvalidAncestor)
}

func TestConstraints_AllowedButNotCaptured(t *testing.T) {
	got, err := Constraints(Lookups{"article_id": "9"}, assignmentParents, []string{"article_id", "round_id"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

type recordingResource struct {
	lookups Lookups
	pk      string
}

func (rr *recordingResource) List(w http.ResponseWriter, r *http.Request) {
	rr.lookups = FromRequest(r)
}
func (rr *recordingResource) Create(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusCreated)
}
func (rr *recordingResource) Retrieve(w http.ResponseWriter, r *http.Request) {
	rr.lookups = FromRequest(r)
	rr.pk = chi.URLParam(r, ItemParam)
}

func TestRouter_FourLevelNesting(t *testing.T) {
	mux := chi.NewRouter()
	rt := NewRouter(mux, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	journals := rt.Register("journals", &recordingResource{})
	articles := journals.Register("articles", "journal_id", &recordingResource{})
	rounds := articles.Register("rounds", "article_id", &recordingResource{})
	assignments := rounds.Register("assignments", "round_id", &recordingResource{})
	responses := &recordingResource{}
	assignments.Register("response", "assignment_id", responses)

	assert.Equal(t,
		"/journals/{parent_lookup_journal_id}/articles/{parent_lookup_article_id}/rounds/{parent_lookup_round_id}/assignments",
		assignments.Pattern())

	req := httptest.NewRequest(http.MethodGet, "/journals/1/articles/2/rounds/3/assignments/4/response", nil)
	mux.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, deepLookups(), responses.lookups)

	req = httptest.NewRequest(http.MethodGet, "/journals/1/articles/2/rounds/3/assignments/4/response/5", nil)
	mux.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "5", responses.pk)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/journals/1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	assert.Len(t, rt.Patterns(), 5)
}
