package mappers

import (
	"errors"
	"testing"

	"journal-transporter/transporter/internal/constants"
	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserImportIsIdempotentByEmail(t *testing.T) {
	f := newFixture(t)

	first, err := f.set.Users.Import(f.ctx, transport.Request{
		Payload: transport.Payload{"email": "Ada@Example.com", "first_name": "Ada", "last_name": "Lovelace"},
	})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, "ada@example.com", first.Record.Username)

	second, err := f.set.Users.Import(f.ctx, transport.Request{
		Payload: transport.Payload{"email": " ada@example.com ", "first_name": "Augusta", "last_name": "King"},
	})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Record.ID, second.Record.ID)
	assert.Equal(t, "Ada", second.Record.FirstName)

	var count int64
	f.db.Model(&gormModels.Account{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUserInterests(t *testing.T) {
	f := newFixture(t)

	res, err := f.set.Users.Import(f.ctx, transport.Request{
		Payload: transport.Payload{
			"email":      "cats@example.com",
			"first_name": "Cat",
			"last_name":  "Person",
			"interests":  "Cats, Dogs",
		},
	})
	require.NoError(t, err)

	var links int64
	f.db.Model(&gormModels.AccountInterest{}).Where("account_id = ?", res.Record.ID).Count(&links)
	assert.Equal(t, int64(2), links)

	_, err = f.set.Users.Import(f.ctx, transport.Request{
		Payload: transport.Payload{
			"email":      "dogs@example.com",
			"first_name": "Dog",
			"last_name":  "Person",
			"interests":  []any{"Dogs"},
		},
	})
	require.NoError(t, err)

	var interests int64
	f.db.Model(&gormModels.Interest{}).Count(&interests)
	assert.Equal(t, int64(2), interests)
}

func TestUserRequiredFields(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		payload transport.Payload
		field   string
		message string
	}{
		{"missing email", transport.Payload{"first_name": "A", "last_name": "B"}, "email", constants.MsgFieldRequired},
		{"null first name", transport.Payload{"email": "a@example.com", "first_name": nil, "last_name": "B"}, "first_name", constants.MsgFieldNull},
		{"blank last name", transport.Payload{"email": "a@example.com", "first_name": "A", "last_name": ""}, "last_name", constants.MsgFieldBlank},
		{"bad email", transport.Payload{"email": "not-an-email", "first_name": "A", "last_name": "B"}, "email", "Enter a valid email address."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.set.Users.Import(f.ctx, transport.Request{Payload: tt.payload})
			var verr *transport.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, []string{tt.message}, verr.Fields[tt.field])
		})
	}
}

func TestUserCountryIsNormalized(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&gormModels.Country{Code: "GB", Name: "United Kingdom"}).Error)

	known, err := f.set.Users.Import(f.ctx, transport.Request{
		Payload: transport.Payload{"email": "uk@example.com", "first_name": "A", "last_name": "B", "country": "united kingdom"},
	})
	require.NoError(t, err)
	assert.Equal(t, "GB", known.Record.Country)

	unknown, err := f.set.Users.Import(f.ctx, transport.Request{
		Payload: transport.Payload{"email": "nowhere@example.com", "first_name": "A", "last_name": "B", "country": "Atlantis"},
	})
	require.NoError(t, err)
	assert.Empty(t, unknown.Record.Country)
}

func TestAuthorOrderIsRecordedOnce(t *testing.T) {
	f := newFixture(t)
	journal := f.journal(t, "authors")
	article := f.article(t, journal.ID, nil)
	account := f.user(t, "author@example.com")

	for _, seq := range []int{2, 5} {
		_, err := f.set.Authors.Import(f.ctx, transport.Request{
			Payload: transport.Payload{
				"first_name": "Test",
				"last_name":  "Author",
				"email":      "author@example.com",
				"sequence":   seq,
			},
			Lookups: lookups("journal_id", journal.ID, "article_id", article.ID),
		})
		require.NoError(t, err)
	}

	var orders []gormModels.ArticleAuthorOrder
	require.NoError(t, f.db.Where("article_id = ? AND author_id = ?", article.ID, account.ID).Find(&orders).Error)
	require.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].Order)
}

func TestAuthorLinkedByReferenceIsCorresponding(t *testing.T) {
	f := newFixture(t)
	journal := f.journal(t, "corr")
	article := f.article(t, journal.ID, nil)
	account := f.user(t, "corr@example.com")

	res, err := f.set.Authors.Import(f.ctx, transport.Request{
		Payload: transport.Payload{
			"first_name":    "Corr",
			"last_name":     "Author",
			"user":          map[string]any{transport.TargetRecordKey: key("Account", account.ID)},
			"corresponding": true,
		},
		Lookups: lookups("article_id", article.ID),
	})
	require.NoError(t, err)
	require.NotNil(t, res.Record.AuthorID)
	assert.Equal(t, account.ID, *res.Record.AuthorID)

	var stored gormModels.Article
	require.NoError(t, f.db.First(&stored, article.ID).Error)
	require.NotNil(t, stored.CorrespondenceAuthorID)
	assert.Equal(t, account.ID, *stored.CorrespondenceAuthorID)
}

func TestAuthorWithUnknownUserReference(t *testing.T) {
	f := newFixture(t)
	journal := f.journal(t, "ghost")
	article := f.article(t, journal.ID, nil)

	_, err := f.set.Authors.Import(f.ctx, transport.Request{
		Payload: transport.Payload{"last_name": "Ghost", "user": key("Account", 404)},
		Lookups: lookups("article_id", article.ID),
	})
	assert.True(t, errors.Is(err, transport.ErrNotFound))
}
