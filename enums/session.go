package enums

type SessionEvent string

const (
	SessionEventLogin        SessionEvent = "login"
	SessionEventLogout       SessionEvent = "logout"
	SessionEventRestore      SessionEvent = "restore"
	SessionEventUnauthorized SessionEvent = "unauthorized"
)
