package domain

// RevocationReason records why a session token was added to the blacklist.
type RevocationReason string

const (
	RevokeLogout          RevocationReason = "logout"
	RevokeLogoutAll       RevocationReason = "logout_all_devices"
	RevokeUserNotFound    RevocationReason = "user_not_found"
	RevokePasswordChanged RevocationReason = "password_changed"
	RevokeUserDeleted     RevocationReason = "user_deleted"
)
