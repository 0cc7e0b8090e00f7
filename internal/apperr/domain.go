package apperr

// Domain errors raised by the auth, store and handler layers.
var (
	ErrMissingToken   = Unauthenticated("authentication required")
	ErrTokenRevoked   = Unauthenticated("token has been revoked")
	ErrTokenExpired   = Unauthenticated("session expired, please log in again")
	ErrStaleToken     = Unauthenticated("session invalidated, please log in again")
	ErrMalformedToken = InvalidCredential("invalid session token")
	ErrBadCredentials = Unauthenticated("invalid username or password")
	ErrAccountLocked  = Unauthenticated("account temporarily locked, try again later")
	ErrVersionMissing = Internal("token version record missing")
	ErrUsernameTaken  = AlreadyExists("username is already taken")
	ErrFutureMonth    = InvalidArg("cannot lock or unlock future months")
	ErrMonthLocked    = Forbidden("month is locked for editing")
	ErrNotAccountant  = Forbidden("accountant role required")
	ErrInvalidMonth   = InvalidArg("month must be between 1 and 12")
	ErrInvalidYear    = InvalidArg("year is out of range")
)
