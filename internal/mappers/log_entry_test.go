package mappers

import (
	"testing"
	"time"

	"journal-transporter/transporter/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogEntryTargetsArticle(t *testing.T) {
	f := newFixture(t)
	journal := f.journal(t, "logs")
	article := f.article(t, journal.ID, nil)
	actor := f.user(t, "actor@example.com")
	at := lookups("journal_id", journal.ID, "article_id", article.ID)

	res, err := f.set.LogEntries.Import(f.ctx, transport.Request{
		Payload: transport.Payload{
			"user":        key("Account", actor.ID),
			"level":       "warn",
			"subject":     "Reviewer reminder",
			"description": "<p>Reminder <b>sent</b></p>",
			"date":        "2022-08-01T10:00:00Z",
		},
		Lookups: at,
	})
	require.NoError(t, err)

	entry := res.Record
	assert.Equal(t, "Article", entry.TargetType)
	assert.Equal(t, article.ID, entry.TargetID)
	assert.Equal(t, "Warning", entry.Level)
	assert.Equal(t, "Reminder sent", entry.Description)
	assert.Equal(t, "Journal Transporter Import", entry.Types)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, actor.ID, *entry.ActorID)
	require.NotNil(t, entry.Date)
	assert.True(t, entry.Date.Equal(time.Date(2022, 8, 1, 10, 0, 0, 0, time.UTC)))

	rows, err := f.set.LogEntries.List(f.ctx, at)
	require.NoError(t, err)
	// the article import logs itself too
	assert.Len(t, rows, 2)
}
