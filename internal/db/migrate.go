package db

import (
	"fmt"

	"journal-transporter/transporter/internal/config"
	gormModels "journal-transporter/transporter/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// Models lists every host table the transporter writes to.
func Models() []any {
	return []any{
		&gormModels.Journal{},
		&gormModels.Setting{},
		&gormModels.IssueType{},
		&gormModels.Issue{},
		&gormModels.Section{},
		&gormModels.Field{},
		&gormModels.FieldAnswer{},
		&gormModels.Article{},
		&gormModels.ArticleIssue{},
		&gormModels.ArticleOrdering{},
		&gormModels.Keyword{},
		&gormModels.ArticleKeyword{},
		&gormModels.Identifier{},
		&gormModels.Licence{},
		&gormModels.FrozenAuthor{},
		&gormModels.ArticleAuthorOrder{},
		&gormModels.Account{},
		&gormModels.Country{},
		&gormModels.Interest{},
		&gormModels.AccountInterest{},
		&gormModels.Role{},
		&gormModels.AccountRole{},
		&gormModels.ApiKey{},
		&gormModels.File{},
		&gormModels.FileHistory{},
		&gormModels.Galley{},
		&gormModels.ReviewForm{},
		&gormModels.ReviewFormElement{},
		&gormModels.EditorAssignment{},
		&gormModels.RevisionRequest{},
		&gormModels.ReviewRound{},
		&gormModels.ReviewRoundFile{},
		&gormModels.ReviewAssignment{},
		&gormModels.ReviewerRating{},
		&gormModels.ReviewFormAnswer{},
		&gormModels.LogEntry{},
	}
}

// Migrate creates or updates the host schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Open connects GORM, migrates, and opens the sqlx handle.
func Open(cfg *config.Config) (*gorm.DB, *sqlx.DB, error) {
	orm, err := InitORM(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := Migrate(orm); err != nil {
		return nil, nil, err
	}
	sqlDB, err := InitSQL(cfg, orm)
	if err != nil {
		return nil, nil, err
	}
	return orm, sqlDB, nil
}
