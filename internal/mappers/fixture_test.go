package mappers

import (
	"context"
	"strconv"
	"testing"
	"time"

	"journal-transporter/transporter/internal/common"
	"journal-transporter/transporter/internal/config"
	"journal-transporter/transporter/internal/db/dbtest"
	"journal-transporter/transporter/internal/db/repositories"
	"journal-transporter/transporter/internal/logging"
	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/nested"
	"journal-transporter/transporter/internal/storage"
	"journal-transporter/transporter/internal/transport"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

type fixture struct {
	set      *Set
	db       *gorm.DB
	settings *repositories.SettingsRepository
	root     string
	ctx      context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logging.InitNop()

	gdb := dbtest.Open(t)
	install, err := config.LoadInstall("")
	require.NoError(t, err)

	root := t.TempDir()
	settings := repositories.NewSettingsRepository(gdb)
	deps := transport.Deps{
		DB:       gdb,
		Resolver: transport.NewResolver(gdb, common.NewCacheService(60, 60)),
		Settings: settings,
		Now:      func() time.Time { return fixedNow },
	}
	env := &Env{
		Files:         storage.NewLocalStore(root),
		Install:       install,
		DefaultDomain: "https://example.com",
	}

	return &fixture{
		set:      NewSet(env, deps),
		db:       gdb,
		settings: settings,
		root:     root,
		ctx:      context.Background(),
	}
}

// lookups builds ancestor lookups from alternating name/id pairs.
func lookups(pairs ...any) nested.Lookups {
	out := nested.Lookups{}
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i].(string)] = strconv.FormatUint(uint64(pairs[i+1].(uint)), 10)
	}
	return out
}

func (f *fixture) journal(t *testing.T, path string) *gormModels.Journal {
	t.Helper()
	res, err := f.set.Journals.Import(f.ctx, transport.Request{
		Payload: transport.Payload{"path": path, "title": "Journal " + path},
	})
	require.NoError(t, err)
	return res.Record
}

func (f *fixture) article(t *testing.T, journalID uint, payload transport.Payload) *gormModels.Article {
	t.Helper()
	if payload == nil {
		payload = transport.Payload{}
	}
	payload.Default("title", "An Article")
	res, err := f.set.Articles.Import(f.ctx, transport.Request{
		Payload: payload,
		Lookups: lookups("journal_id", journalID),
	})
	require.NoError(t, err)
	return res.Record
}

func (f *fixture) user(t *testing.T, email string) *gormModels.Account {
	t.Helper()
	res, err := f.set.Users.Import(f.ctx, transport.Request{
		Payload: transport.Payload{"email": email, "first_name": "Test", "last_name": "User"},
	})
	require.NoError(t, err)
	return res.Record
}

func (f *fixture) round(t *testing.T, articleID uint) *gormModels.ReviewRound {
	t.Helper()
	res, err := f.set.Rounds.Import(f.ctx, transport.Request{
		Payload: transport.Payload{},
		Lookups: lookups("article_id", articleID),
	})
	require.NoError(t, err)
	return res.Record
}

func key(typeName string, id uint) string {
	return transport.SourceRecordKey(typeName, id)
}
