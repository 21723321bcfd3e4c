package mappers

import (
	"errors"
	"testing"

	"journal-transporter/transporter/internal/constants"
	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/nested"
	"journal-transporter/transporter/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewScene struct {
	journal *gormModels.Journal
	article *gormModels.Article
	round   *gormModels.ReviewRound
}

func newReviewScene(t *testing.T, f *fixture, path string) reviewScene {
	t.Helper()
	journal := f.journal(t, path)
	article := f.article(t, journal.ID, nil)
	return reviewScene{journal: journal, article: article, round: f.round(t, article.ID)}
}

func (s reviewScene) lookups() nested.Lookups {
	return lookups("journal_id", s.journal.ID, "article_id", s.article.ID, "round_id", s.round.ID)
}

func (f *fixture) assign(t *testing.T, s reviewScene, payload transport.Payload) *transport.Result[gormModels.ReviewAssignment] {
	t.Helper()
	res, err := f.set.Assignments.Import(f.ctx, transport.Request{Payload: payload, Lookups: s.lookups()})
	require.NoError(t, err)
	return res
}

func TestReviewRoundNumbering(t *testing.T) {
	f := newFixture(t)
	journal := f.journal(t, "rounds")
	article := f.article(t, journal.ID, nil)

	first := f.round(t, article.ID)
	second := f.round(t, article.ID)
	assert.Equal(t, 1, first.RoundNumber)
	assert.Equal(t, 2, second.RoundNumber)

	again, err := f.set.Rounds.Import(f.ctx, transport.Request{
		Payload: transport.Payload{"round": 1},
		Lookups: lookups("journal_id", journal.ID, "article_id", article.ID),
	})
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, first.ID, again.Record.ID)
}

func TestAssignmentDueDateFromAssignedDate(t *testing.T) {
	f := newFixture(t)
	scene := newReviewScene(t, f, "due1")

	res := f.assign(t, scene, transport.Payload{"date_assigned": "2023-01-01T00:00:00+0000"})

	var stored gormModels.ReviewAssignment
	require.NoError(t, f.db.First(&stored, res.Record.ID).Error)
	require.NotNil(t, stored.DateDue)
	assert.Equal(t, "2023-01-01", stored.DateDue.Format("2006-01-02"))
	assert.NotEmpty(t, stored.AccessCode)
	assert.Equal(t, scene.article.ID, stored.ArticleID)
	assert.Equal(t, scene.round.ID, stored.ReviewRoundID)
}

func TestAssignmentDueDatePrecedence(t *testing.T) {
	f := newFixture(t)
	scene := newReviewScene(t, f, "due2")

	tests := []struct {
		name          string
		payload       transport.Payload
		wantDue       string
		wantRequested bool
	}{
		{
			name:          "explicit due date wins",
			payload:       transport.Payload{"date_assigned": "2023-01-01T00:00:00+0000", "date_due": "2023-02-15T12:00:00+0000"},
			wantDue:       "2023-02-15",
			wantRequested: true,
		},
		{
			name:    "only due date",
			payload: transport.Payload{"date_due": "2023-03-01T00:00:00+0000"},
			wantDue: "2023-03-01",
		},
		{
			name:    "completion before assignment",
			payload: transport.Payload{"date_completed": "2023-04-10T08:00:00+0000"},
			wantDue: "2023-04-10",
		},
		{
			name:    "no dates",
			payload: transport.Payload{},
			wantDue: fixedNow.Format("2006-01-02"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.assign(t, scene, tt.payload)
			require.NotNil(t, res.Record.DateDue)
			assert.Equal(t, tt.wantDue, res.Record.DateDue.Format("2006-01-02"))
			assert.Equal(t, tt.wantRequested, res.Record.DateRequested != nil)
		})
	}
}

func TestAssignmentAccessCodesAreUnique(t *testing.T) {
	f := newFixture(t)
	scene := newReviewScene(t, f, "codes")

	a := f.assign(t, scene, transport.Payload{})
	b := f.assign(t, scene, transport.Payload{})
	assert.NotEqual(t, a.Record.AccessCode, b.Record.AccessCode)
}

func TestAssignmentDecisions(t *testing.T) {
	f := newFixture(t)
	scene := newReviewScene(t, f, "decide")

	tests := []struct {
		name     string
		payload  transport.Payload
		want     string
		complete bool
	}{
		{"completed without decision is withdrawn", transport.Payload{"date_completed": "2023-01-05T00:00:00Z"}, constants.DecisionWithdrawn, true},
		{"external vocabulary", transport.Payload{"decision": "Resubmit", "date_completed": "2023-01-05T00:00:00Z"}, constants.DecisionMajorRevisions, true},
		{"canonical value", transport.Payload{"decision": "accept"}, constants.DecisionAccept, false},
		{"open assignment", transport.Payload{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.assign(t, scene, tt.payload)
			assert.Equal(t, tt.want, res.Record.Decision)
			assert.Equal(t, tt.complete, res.Record.IsComplete)
		})
	}

	_, err := f.set.Assignments.Import(f.ctx, transport.Request{
		Payload: transport.Payload{"decision": "maybe"},
		Lookups: scene.lookups(),
	})
	var verr *transport.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "decision")
}

func TestAssignmentIsIdempotentPerReviewerAndRound(t *testing.T) {
	f := newFixture(t)
	scene := newReviewScene(t, f, "reviewer")
	reviewer := f.user(t, "reviewer@example.com")

	payload := transport.Payload{"reviewer": key("Account", reviewer.ID), "date_assigned": "2023-01-01T00:00:00Z"}
	first := f.assign(t, scene, payload)
	second := f.assign(t, scene, payload)

	assert.True(t, first.Created)
	assert.False(t, second.Created)
	assert.Equal(t, first.Record.ID, second.Record.ID)
}

func TestAssignmentSupplementaryFilesAttachOnce(t *testing.T) {
	f := newFixture(t)
	scene := newReviewScene(t, f, "suppfiles")
	at := lookups("article_id", scene.article.ID)

	var refs []any
	var ids []uint
	for i := 0; i < 2; i++ {
		res, err := f.set.Files.Import(f.ctx, transport.Request{Payload: transport.Payload{}, Files: pdfUpload(), Lookups: at})
		require.NoError(t, err)
		refs = append(refs, map[string]any{transport.TargetRecordKey: res.Key})
		ids = append(ids, res.Record.ID)
	}

	for i := 0; i < 2; i++ {
		f.assign(t, scene, transport.Payload{"supplementary_files": refs})
	}

	var links []gormModels.ReviewRoundFile
	require.NoError(t, f.db.Where("reviewround_id = ?", scene.round.ID).Order("file_id").Find(&links).Error)
	require.Len(t, links, 2)
	assert.Equal(t, ids[0], links[0].FileID)
	assert.Equal(t, ids[1], links[1].FileID)
}

func TestAssignmentScoreBecomesRating(t *testing.T) {
	f := newFixture(t)
	scene := newReviewScene(t, f, "scores")
	editor := f.user(t, "rater@example.com")

	tests := []struct {
		score any
		want  int
	}{
		{87, 9},
		{"42.4", 4},
		{150, 10},
		{-5, 0},
	}

	for _, tt := range tests {
		res := f.assign(t, scene, transport.Payload{"score": tt.score, "editor": key("Account", editor.ID)})

		var rating gormModels.ReviewerRating
		require.NoError(t, f.db.Where("assignment_id = ?", res.Record.ID).First(&rating).Error)
		assert.Equal(t, tt.want, rating.Rating, "score %v", tt.score)
		require.NotNil(t, rating.RaterID)
		assert.Equal(t, editor.ID, *rating.RaterID)
	}
}

func TestAssignmentUnderUnknownRound(t *testing.T) {
	f := newFixture(t)
	scene := newReviewScene(t, f, "noround")

	_, err := f.set.Assignments.Import(f.ctx, transport.Request{
		Payload: transport.Payload{},
		Lookups: lookups("article_id", scene.article.ID, "round_id", uint(9999)),
	})
	assert.True(t, errors.Is(err, transport.ErrNotFound))
}

func TestAssignmentListIsScopedToRound(t *testing.T) {
	f := newFixture(t)
	scene := newReviewScene(t, f, "listing")
	f.assign(t, scene, transport.Payload{})

	other := f.round(t, scene.article.ID)
	_, err := f.set.Assignments.Import(f.ctx, transport.Request{
		Payload: transport.Payload{},
		Lookups: lookups("article_id", scene.article.ID, "round_id", other.ID),
	})
	require.NoError(t, err)

	rows, err := f.set.Assignments.List(f.ctx, scene.lookups())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
