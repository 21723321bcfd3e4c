package constants

// Article workflow stages as stored by the host.
const (
	StageUnsubmitted       = "Unsubmitted"
	StageUnassigned        = "Unassigned"
	StageAssigned          = "Assigned"
	StageUnderReview       = "Under Review"
	StageUnderRevision     = "Under Revision"
	StageRejected          = "Rejected"
	StageAccepted          = "Accepted"
	StageEditorCopyediting = "Editor Copyediting"
	StageAuthorCopyediting = "Author Copyediting"
	StageTypesetting       = "Typesetting"
	StageProofing          = "Proofing"
	StagePublished         = "Published"
)

// Review decisions.
const (
	DecisionAccept         = "accept"
	DecisionMinorRevisions = "minor_revisions"
	DecisionMajorRevisions = "major_revisions"
	DecisionReject         = "reject"
	DecisionWithdrawn      = "withdrawn"
	DecisionNone           = "none"
)
