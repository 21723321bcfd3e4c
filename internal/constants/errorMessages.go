package constants

const (
	MsgValidationFailed   = "Validation failed"
	MsgNotFound           = "Not found"
	MsgMethodNotAllowed   = "Deleting resources through the transporter is not allowed"
	MsgInvalidBody        = "Invalid request body"
	MsgImportFailed       = "Unable to import record"
	MsgRecordCreated      = "Record created"
	MsgRecordExists       = "Record already exists"
	MsgFieldRequired      = "This field is required."
	MsgFieldNull          = "This field may not be null."
	MsgFieldBlank         = "This field may not be blank."
	MsgNoFileSubmitted    = "No file was submitted."
	MsgUnauthorizedKey    = "Unauthorized. Invalid API Key"
	MsgUnauthorizedToken  = "Unauthorized. Invalid token"
	MsgUnauthorizedAbsent = "Authentication credentials were not provided."
)
