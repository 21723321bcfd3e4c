package constants

type (
	RequestSource string
	APIStatus     string
	CachePrefix   string
)

const (
	RequestSourceAPIKey RequestSource = "API_KEY"
	RequestSourceJWT    RequestSource = "JWT"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixRecordKey CachePrefix = "RK_"
)

// SettingGroupGeneral is the settings group journal metadata is written to.
const SettingGroupGeneral = "general"
