package gorm

import (
	"time"

	"gorm.io/datatypes"
)

type ReviewForm struct {
	Record
	JournalID uint   `gorm:"column:journal_id;index" json:"journal_id"`
	Name      string `gorm:"column:name" json:"name"`
	Slug      string `gorm:"column:slug" json:"slug"`
	Intro     string `gorm:"column:intro" json:"intro"`
	Thanks    string `gorm:"column:thanks" json:"thanks"`
	Deleted   bool   `gorm:"column:deleted" json:"deleted"`
}

func (ReviewForm) TableName() string {
	return "review_reviewform"
}

type ReviewFormElement struct {
	Record
	FormID   uint   `gorm:"column:form_id;index" json:"form_id"`
	Name     string `gorm:"column:name;size:200" json:"name"`
	Kind     string `gorm:"column:kind" json:"kind"`
	Choices  string `gorm:"column:choices" json:"choices"`
	Required bool   `gorm:"column:required" json:"required"`
	Order    int    `gorm:"column:order" json:"order"`
	Width    string `gorm:"column:width" json:"width"`
	HelpText string `gorm:"column:help_text" json:"help_text"`
}

func (ReviewFormElement) TableName() string {
	return "review_reviewformelement"
}

type EditorAssignment struct {
	Record
	ArticleID  uint       `gorm:"column:article_id;uniqueIndex:idx_editor_assignment" json:"article_id"`
	EditorID   uint       `gorm:"column:editor_id;uniqueIndex:idx_editor_assignment" json:"editor_id"`
	EditorType string     `gorm:"column:editor_type" json:"editor_type"`
	Assigned   *time.Time `gorm:"column:assigned" json:"assigned"`
	Notified   bool       `gorm:"column:notified" json:"notified"`
}

func (EditorAssignment) TableName() string {
	return "review_editorassignment"
}

type RevisionRequest struct {
	Record
	ArticleID     uint       `gorm:"column:article_id;index" json:"article_id"`
	EditorID      *uint      `gorm:"column:editor_id" json:"editor_id"`
	Type          string     `gorm:"column:type" json:"type"`
	EditorNote    string     `gorm:"column:editor_note" json:"editor_note"`
	AuthorNote    string     `gorm:"column:author_note" json:"author_note"`
	Actioned      bool       `gorm:"column:actioned" json:"actioned"`
	DateRequested *time.Time `gorm:"column:date_requested" json:"date_requested"`
	DateDue       *time.Time `gorm:"column:date_due" json:"date_due"`
	DateCompleted *time.Time `gorm:"column:date_completed" json:"date_completed"`
}

func (RevisionRequest) TableName() string {
	return "review_revisionrequest"
}

type ReviewRound struct {
	Record
	ArticleID   uint       `gorm:"column:article_id;uniqueIndex:idx_review_round" json:"article_id"`
	RoundNumber int        `gorm:"column:round_number;uniqueIndex:idx_review_round" json:"round_number"`
	DateStarted *time.Time `gorm:"column:date_started" json:"date_started"`
}

func (ReviewRound) TableName() string {
	return "review_reviewround"
}

// ReviewRoundFile is the round's review file collection.
type ReviewRoundFile struct {
	Record
	RoundID uint `gorm:"column:reviewround_id;uniqueIndex:idx_round_file" json:"reviewround_id"`
	FileID  uint `gorm:"column:file_id;uniqueIndex:idx_round_file" json:"file_id"`
}

func (ReviewRoundFile) TableName() string {
	return "review_reviewround_review_files"
}

type ReviewAssignment struct {
	Record
	ArticleID         uint       `gorm:"column:article_id;index" json:"article_id"`
	ReviewRoundID     uint       `gorm:"column:review_round_id;index" json:"review_round_id"`
	ReviewerID        *uint      `gorm:"column:reviewer_id" json:"reviewer_id"`
	EditorID          *uint      `gorm:"column:editor_id" json:"editor_id"`
	FormID            *uint      `gorm:"column:form_id" json:"form_id"`
	ReviewFileID      *uint      `gorm:"column:review_file_id" json:"review_file_id"`
	Decision          string     `gorm:"column:decision" json:"decision"`
	DateRequested     *time.Time `gorm:"column:date_requested" json:"date_requested"`
	DateAccepted      *time.Time `gorm:"column:date_accepted" json:"date_accepted"`
	DateDeclined      *time.Time `gorm:"column:date_declined" json:"date_declined"`
	DateDue           *time.Time `gorm:"column:date_due;type:date" json:"date_due"`
	DateComplete      *time.Time `gorm:"column:date_complete" json:"date_complete"`
	IsComplete        bool       `gorm:"column:is_complete" json:"is_complete"`
	AccessCode        string     `gorm:"column:access_code;uniqueIndex" json:"access_code"`
	CommentsForEditor string     `gorm:"column:comments_for_editor" json:"comments_for_editor"`
	Visibility        string     `gorm:"column:visibility" json:"visibility"`
	ReviewType        string     `gorm:"column:review_type" json:"review_type"`
}

func (ReviewAssignment) TableName() string {
	return "review_reviewassignment"
}

type ReviewerRating struct {
	Record
	AssignmentID uint  `gorm:"column:assignment_id;uniqueIndex" json:"assignment_id"`
	RaterID      *uint `gorm:"column:rater_id" json:"rater_id"`
	Rating       int   `gorm:"column:rating" json:"rating"`
}

func (ReviewerRating) TableName() string {
	return "review_reviewerrating"
}

type ReviewFormAnswer struct {
	Record
	AssignmentID      uint   `gorm:"column:assignment_id;index" json:"assignment_id"`
	OriginalElementID *uint  `gorm:"column:original_element_id" json:"original_element_id"`
	FrozenElementName string `gorm:"column:frozen_element_name" json:"frozen_element_name"`
	FrozenElementKind string `gorm:"column:frozen_element_kind" json:"frozen_element_kind"`
	Answer            string `gorm:"column:answer" json:"answer"`
	AuthorCanSee      bool   `gorm:"column:author_can_see" json:"author_can_see"`
}

func (ReviewFormAnswer) TableName() string {
	return "review_reviewformanswer"
}

// LogEntry is a generic audit entry attached to any target entity.
type LogEntry struct {
	Record
	TargetType  string         `gorm:"column:target_type;index:idx_log_target" json:"target_type"`
	TargetID    uint           `gorm:"column:target_id;index:idx_log_target" json:"target_id"`
	ActorID     *uint          `gorm:"column:actor_id" json:"actor_id"`
	Types       string         `gorm:"column:types" json:"types"`
	Date        *time.Time     `gorm:"column:date" json:"date"`
	Description string         `gorm:"column:description" json:"description"`
	Level       string         `gorm:"column:level" json:"level"`
	Subject     string         `gorm:"column:subject" json:"subject"`
	Metadata    datatypes.JSON `gorm:"column:metadata" json:"metadata"`
}

func (LogEntry) TableName() string {
	return "utils_logentry"
}
