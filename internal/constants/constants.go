package constants

// Session
const (
	SessionCookieName = "mfg_session"
	SessionKeyUserID  = "user_id"
	SessionMaxAge     = 86400 * 7
)

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUser      = "current_user"
	ContextKeyRequestID = "request_id"
)

// Flash categories
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Bootstrap admin
const (
	DefaultAdminEmployeeID = "admin"
	DefaultAdminPassword   = "admin123"
	DefaultAdminUsername   = "Administrator"
)

// CSV
const (
	DefaultCSVName     = "sample_data.csv"
	DefaultDBName      = "mfg_tools.db"
	DefaultUploadLimit = 10 << 20
)
