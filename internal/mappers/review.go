package mappers

import (
	"fmt"
	"math"
	"strings"

	"journal-transporter/transporter/internal/constants"
	gormModels "journal-transporter/transporter/internal/models/gorm"
	"journal-transporter/transporter/internal/nested"
	"journal-transporter/transporter/internal/transport"

	"github.com/google/uuid"
)

// ReviewRound maps a round of review on the parent article. Rounds are
// unique per article and number; without a number the next one is used.
func ReviewRound() *transport.Definition[gormModels.ReviewRound] {
	return &transport.Definition[gormModels.ReviewRound]{
		Name: "ReviewRound",
		Fields: []transport.Field{
			{Name: "round", Attr: "round_number", Type: transport.Integer},
			{Name: "date_started", Type: transport.DateTime},
		},
		Defaults: []transport.Default{
			{Field: "round", Func: func(c *transport.Context, _ transport.Payload) (any, error) {
				var count int64
				err := c.Tx().Model(&gormModels.ReviewRound{}).Where("article_id = ?", c.Parent("article_id")).Count(&count).Error
				return count + 1, err
			}},
		},
		Parents:    articleParent,
		ParentKeys: articleOnly,

		Existing: func(c *transport.Context, data transport.Payload) (*gormModels.ReviewRound, error) {
			number, _ := data.Int("round_number")
			var existing gormModels.ReviewRound
			err := c.Tx().Where("article_id = ? AND round_number = ?", uintValue(data, "article_id"), number).First(&existing).Error
			if err != nil {
				return nil, notFound(err)
			}
			return &existing, nil
		},
	}
}

// reviewDecisions maps source recommendations onto host decisions.
var reviewDecisions = map[string]string{
	"accept":             constants.DecisionAccept,
	"accepted":           constants.DecisionAccept,
	"minor":              constants.DecisionMinorRevisions,
	"minor_revisions":    constants.DecisionMinorRevisions,
	"minor revisions":    constants.DecisionMinorRevisions,
	"revisions":          constants.DecisionMinorRevisions,
	"major":              constants.DecisionMajorRevisions,
	"major_revisions":    constants.DecisionMajorRevisions,
	"major revisions":    constants.DecisionMajorRevisions,
	"resubmit":           constants.DecisionMajorRevisions,
	"resubmit_here":      constants.DecisionMajorRevisions,
	"resubmit_elsewhere": constants.DecisionReject,
	"reject":             constants.DecisionReject,
	"decline":            constants.DecisionReject,
	"declined":           constants.DecisionReject,
	"withdrawn":          constants.DecisionWithdrawn,
	"withdraw":           constants.DecisionWithdrawn,
	"none":               constants.DecisionNone,
	"see_comments":       constants.DecisionNone,
}

var decisionChoices = []string{
	constants.DecisionAccept,
	constants.DecisionMinorRevisions,
	constants.DecisionMajorRevisions,
	constants.DecisionReject,
	constants.DecisionWithdrawn,
	constants.DecisionNone,
}

// ReviewAssignment maps a reviewer's assignment in the parent round.
func ReviewAssignment() *transport.Definition[gormModels.ReviewAssignment] {
	return &transport.Definition[gormModels.ReviewAssignment]{
		Name: "ReviewAssignment",
		Fields: []transport.Field{
			{Name: "decision", Type: transport.Choice, Choices: decisionChoices},
			{Name: "date_assigned", Attr: "date_requested", Type: transport.DateTime},
			{Name: "date_accepted", Type: transport.DateTime},
			{Name: "date_declined", Type: transport.DateTime},
			{Name: "date_due", Type: transport.Date},
			{Name: "date_completed", Attr: "date_complete", Type: transport.DateTime},
			{Name: "comments", Attr: "comments_for_editor", Type: transport.Text},
			{Name: "visibility", Type: transport.Choice, Choices: []string{"blind", "double-blind", "open"}},
			{Name: "review_type", Type: transport.String},
			{Name: "score", Type: transport.Float},
		},
		ForeignKeys: []transport.ForeignKey{
			{Field: "reviewer", Attr: "reviewer_id", Target: "Account"},
			{Field: "editor", Attr: "editor_id", Target: "Account"},
			{Field: "review_form", Attr: "form_id", Target: "ReviewForm"},
			{Field: "review_file", Attr: "review_file_id", Target: "File"},
			{Field: "review_files", Attr: "review_file_ids", Target: "File", Many: true},
			{Field: "supplementary_files", Attr: "supplementary_file_ids", Target: "File", Many: true},
		},
		Defaults: []transport.Default{
			{Field: "visibility", Value: "double-blind"},
			{Field: "review_type", Value: "traditional"},
		},
		HTMLExempt: []string{"comments"},
		Parents: map[string]nested.Parent{
			"article_id": {Column: "article_id", Target: "Article"},
			"round_id":   {Column: "review_round_id", Target: "ReviewRound"},
		},
		ParentKeys: []string{"article_id", "round_id"},

		BeforeValidation: func(_ *transport.Context, data transport.Payload) error {
			raw := strings.ToLower(strings.TrimSpace(data.String("decision")))
			if raw == "" {
				delete(data, "decision")
			} else if mapped, ok := reviewDecisions[raw]; ok {
				data["decision"] = mapped
			}
			if v, ok := data["visibility"].(string); ok {
				data["visibility"] = strings.ReplaceAll(strings.ToLower(v), "_", "-")
			}
			return nil
		},

		PreProcess: func(c *transport.Context, data transport.Payload) error {
			deriveDueDate(c, data)

			completed := data.Time("date_complete") != nil
			data["is_complete"] = completed
			if completed && data.Blank("decision") {
				data["decision"] = constants.DecisionWithdrawn
			}

			data["access_code"] = uuid.New().String()
			return nil
		},

		Existing: func(c *transport.Context, data transport.Payload) (*gormModels.ReviewAssignment, error) {
			reviewer := data.Uint("reviewer_id")
			if reviewer == nil {
				return nil, nil
			}
			var existing gormModels.ReviewAssignment
			err := c.Tx().Where("reviewer_id = ? AND review_round_id = ?", *reviewer, uintValue(data, "review_round_id")).
				First(&existing).Error
			if err != nil {
				return nil, notFound(err)
			}
			return &existing, nil
		},

		PostProcess: func(c *transport.Context, assignment *gormModels.ReviewAssignment, data transport.Payload) error {
			if err := attachRoundFiles(c, assignment, data); err != nil {
				return err
			}
			if score, ok := data.Float("score"); ok {
				return rateReviewer(c, assignment, score)
			}
			return nil
		},
	}
}

// deriveDueDate sets date_due from the first available of the due,
// completion and assignment dates, falling back to today.
func deriveDueDate(c *transport.Context, data transport.Payload) {
	due := c.Now
	for _, field := range []string{"date_due", "date_complete", "date_requested"} {
		if t := data.Time(field); t != nil {
			due = *t
			break
		}
	}
	data["date_due"] = transport.DateOf(due)
}

// attachRoundFiles adds the assignment's files to the round's review files,
// skipping any already there.
func attachRoundFiles(c *transport.Context, assignment *gormModels.ReviewAssignment, data transport.Payload) error {
	ids := append(data.Uints("review_file_ids"), data.Uints("supplementary_file_ids")...)
	if assignment.ReviewFileID != nil {
		ids = append(ids, *assignment.ReviewFileID)
	}

	for _, fileID := range ids {
		link := gormModels.ReviewRoundFile{RoundID: assignment.ReviewRoundID, FileID: fileID}
		if err := c.Tx().Where(link).FirstOrCreate(&link).Error; err != nil {
			return fmt.Errorf("failed to attach file %d to round: %w", fileID, err)
		}
	}
	return nil
}

// rateReviewer converts a 0-100 quality score into the host's 0-10 rating.
func rateReviewer(c *transport.Context, assignment *gormModels.ReviewAssignment, score float64) error {
	rating := int(math.Round(math.Max(0, math.Min(100, score)) / 10))
	row := gormModels.ReviewerRating{AssignmentID: assignment.ID}
	err := c.Tx().Where(row).
		Assign(gormModels.ReviewerRating{RaterID: assignment.EditorID, Rating: rating}).
		FirstOrCreate(&row).Error
	if err != nil {
		return fmt.Errorf("failed to rate reviewer: %w", err)
	}
	return nil
}
