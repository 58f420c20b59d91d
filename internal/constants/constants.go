package constants

// Context keys set by the auth middleware
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "user"
)

// Authorization header scheme, e.g. "Token 9944b09199c62bcf..."
const TokenScheme = "Token"

// TokenKeyBytes is the number of random bytes behind a token key.
// Hex-encoded this yields a 40 character key.
const TokenKeyBytes = 20

const MinPasswordLength = 6

// DefaultContactColor is applied when a contact payload omits the color.
const DefaultContactColor = "#FF7A00"

const SessionCookieName = "join_session"

// SessionKeyCSRF is the session key under which /set-csrf/ stores its token.
const SessionKeyCSRF = "csrf_token"
