package mappers

import (
	"testing"
	"unicode/utf8"

	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"special_issue", "Special Issue"},
		{"journal-manager", "Journal Manager"},
		{"édition spéciale", "Édition Spéciale"},
		{"ÜBER_ausgabe", "Über Ausgabe"},
		{"обзор", "Обзор"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := titleCase(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestIssueTypeWithAccentedCode(t *testing.T) {
	f := newFixture(t)
	journal := f.journal(t, "accents")

	res, err := f.set.Issues.Import(f.ctx, transport.Request{
		Payload: transport.Payload{"title": "Numéro", "issue_type": "édition"},
		Lookups: lookups("journal_id", journal.ID),
	})
	require.NoError(t, err)

	var issueType gormModels.IssueType
	require.NoError(t, f.db.First(&issueType, res.Record.IssueTypeID).Error)
	assert.Equal(t, "édition", issueType.Code)
	assert.Equal(t, "Édition", issueType.PrettyName)
	assert.True(t, utf8.ValidString(issueType.PrettyName))
}
