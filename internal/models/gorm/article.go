package gorm

import "time"

type Article struct {
	Record
	JournalID              uint       `gorm:"column:journal_id;index" json:"journal_id"`
	SectionID              *uint      `gorm:"column:section_id" json:"section_id"`
	OwnerID                *uint      `gorm:"column:owner_id" json:"owner_id"`
	Title                  string     `gorm:"column:title" json:"title"`
	Abstract               string     `gorm:"column:abstract" json:"abstract"`
	Language               string     `gorm:"column:language" json:"language"`
	DateStarted            *time.Time `gorm:"column:date_started" json:"date_started"`
	DateSubmitted          *time.Time `gorm:"column:date_submitted" json:"date_submitted"`
	DateAccepted           *time.Time `gorm:"column:date_accepted" json:"date_accepted"`
	DateDeclined           *time.Time `gorm:"column:date_declined" json:"date_declined"`
	DatePublished          *time.Time `gorm:"column:date_published" json:"date_published"`
	DateUpdated            *time.Time `gorm:"column:date_updated" json:"date_updated"`
	Stage                  string     `gorm:"column:stage" json:"stage"`
	PrimaryIssueID         *uint      `gorm:"column:primary_issue_id" json:"primary_issue_id"`
	LicenseID              *uint      `gorm:"column:license_id" json:"license_id"`
	CorrespondenceAuthorID *uint      `gorm:"column:correspondence_author_id" json:"correspondence_author_id"`
	PageNumbers            string     `gorm:"column:page_numbers" json:"page_numbers"`
	FirstPage              *int       `gorm:"column:first_page" json:"first_page"`
	LastPage               *int       `gorm:"column:last_page" json:"last_page"`
}

func (Article) TableName() string {
	return "submission_article"
}

// ArticleIssue is the issue membership join table.
type ArticleIssue struct {
	Record
	ArticleID uint `gorm:"column:article_id;uniqueIndex:idx_article_issue" json:"article_id"`
	IssueID   uint `gorm:"column:issue_id;uniqueIndex:idx_article_issue" json:"issue_id"`
}

func (ArticleIssue) TableName() string {
	return "journal_issue_articles"
}

type ArticleOrdering struct {
	Record
	ArticleID uint  `gorm:"column:article_id;uniqueIndex:idx_article_ordering" json:"article_id"`
	IssueID   uint  `gorm:"column:issue_id;uniqueIndex:idx_article_ordering" json:"issue_id"`
	SectionID *uint `gorm:"column:section_id" json:"section_id"`
	Order     int   `gorm:"column:order" json:"order"`
}

func (ArticleOrdering) TableName() string {
	return "journal_articleordering"
}

type Keyword struct {
	Record
	Word string `gorm:"column:word;uniqueIndex" json:"word"`
}

func (Keyword) TableName() string {
	return "submission_keyword"
}

type ArticleKeyword struct {
	Record
	ArticleID uint `gorm:"column:article_id;uniqueIndex:idx_article_keyword" json:"article_id"`
	KeywordID uint `gorm:"column:keyword_id;uniqueIndex:idx_article_keyword" json:"keyword_id"`
	Order     int  `gorm:"column:order" json:"order"`
}

func (ArticleKeyword) TableName() string {
	return "submission_keywordarticle"
}

type Identifier struct {
	Record
	ArticleID  uint   `gorm:"column:article_id;index" json:"article_id"`
	IDType     string `gorm:"column:id_type" json:"id_type"`
	Identifier string `gorm:"column:identifier" json:"identifier"`
}

func (Identifier) TableName() string {
	return "identifiers_identifier"
}

type Licence struct {
	Record
	JournalID uint   `gorm:"column:journal_id;index" json:"journal_id"`
	Name      string `gorm:"column:name" json:"name"`
	ShortName string `gorm:"column:short_name" json:"short_name"`
	URL       string `gorm:"column:url" json:"url"`
	Order     int    `gorm:"column:order" json:"order"`
}

func (Licence) TableName() string {
	return "submission_licence"
}

// FrozenAuthor is the authorship snapshot stored per article.
type FrozenAuthor struct {
	Record
	ArticleID   uint   `gorm:"column:article_id;index" json:"article_id"`
	AuthorID    *uint  `gorm:"column:author_id" json:"author_id"`
	FirstName   string `gorm:"column:first_name" json:"first_name"`
	MiddleName  string `gorm:"column:middle_name" json:"middle_name"`
	LastName    string `gorm:"column:last_name" json:"last_name"`
	Email       string `gorm:"column:frozen_email" json:"frozen_email"`
	Institution string `gorm:"column:institution" json:"institution"`
	Department  string `gorm:"column:department" json:"department"`
	Country     string `gorm:"column:country" json:"country"`
	Biography   string `gorm:"column:frozen_biography" json:"frozen_biography"`
	Orcid       string `gorm:"column:frozen_orcid" json:"frozen_orcid"`
	Order       int    `gorm:"column:order" json:"order"`
	IsCorporate bool   `gorm:"column:is_corporate" json:"is_corporate"`
}

func (FrozenAuthor) TableName() string {
	return "submission_frozenauthor"
}

type ArticleAuthorOrder struct {
	Record
	ArticleID uint `gorm:"column:article_id;uniqueIndex:idx_author_order" json:"article_id"`
	AuthorID  uint `gorm:"column:author_id;uniqueIndex:idx_author_order" json:"author_id"`
	Order     int  `gorm:"column:order" json:"order"`
}

func (ArticleAuthorOrder) TableName() string {
	return "submission_articleauthororder"
}
