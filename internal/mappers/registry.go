package mappers

import (
	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/transport"
)

// Set holds one importer per imported entity. Building a Set registers
// every entity with the shared resolver, so references between them work.
type Set struct {
	Journals         *transport.Importer[gormModels.Journal, *gormModels.Journal]
	Issues           *transport.Importer[gormModels.Issue, *gormModels.Issue]
	Sections         *transport.Importer[gormModels.Section, *gormModels.Section]
	Articles         *transport.Importer[gormModels.Article, *gormModels.Article]
	Users            *transport.Importer[gormModels.Account, *gormModels.Account]
	Authors          *transport.Importer[gormModels.FrozenAuthor, *gormModels.FrozenAuthor]
	Files            *transport.Importer[gormModels.File, *gormModels.File]
	Roles            *transport.Importer[gormModels.AccountRole, *gormModels.AccountRole]
	LogEntries       *transport.Importer[gormModels.LogEntry, *gormModels.LogEntry]
	Editors          *transport.Importer[gormModels.EditorAssignment, *gormModels.EditorAssignment]
	RevisionRequests *transport.Importer[gormModels.RevisionRequest, *gormModels.RevisionRequest]
	ReviewForms      *transport.Importer[gormModels.ReviewForm, *gormModels.ReviewForm]
	FormElements     *transport.Importer[gormModels.ReviewFormElement, *gormModels.ReviewFormElement]
	Rounds           *transport.Importer[gormModels.ReviewRound, *gormModels.ReviewRound]
	Assignments      *transport.Importer[gormModels.ReviewAssignment, *gormModels.ReviewAssignment]
	Answers          *transport.Importer[gormModels.ReviewFormAnswer, *gormModels.ReviewFormAnswer]
}

// NewSet builds every importer over the shared dependencies.
func NewSet(env *Env, deps transport.Deps) *Set {
	return &Set{
		Journals:         transport.NewImporter(Journal(env), deps),
		Issues:           transport.NewImporter(Issue(), deps),
		Sections:         transport.NewImporter(Section(), deps),
		Articles:         transport.NewImporter(Article(env), deps),
		Users:            transport.NewImporter(User(), deps),
		Authors:          transport.NewImporter(Author(), deps),
		Files:            transport.NewImporter(File(env), deps),
		Roles:            transport.NewImporter(Role(), deps),
		LogEntries:       transport.NewImporter(LogEntry(), deps),
		Editors:          transport.NewImporter(EditorAssignment(), deps),
		RevisionRequests: transport.NewImporter(RevisionRequest(), deps),
		ReviewForms:      transport.NewImporter(ReviewForm(), deps),
		FormElements:     transport.NewImporter(ReviewFormElement(), deps),
		Rounds:           transport.NewImporter(ReviewRound(), deps),
		Assignments:      transport.NewImporter(ReviewAssignment(), deps),
		Answers:          transport.NewImporter(ReviewFormAnswer(), deps),
	}
}
