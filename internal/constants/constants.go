package constants

const (
	// ContextKeyUserID is the gin context / session key for the
	// authenticated user's id.
	ContextKeyUserID = "user_id"

	// ContextKeyBoard holds the board loaded by RequireBoardAccess.
	ContextKeyBoard = "board"

	// ContextKeyBoardAccess holds the caller's access row for that board.
	ContextKeyBoardAccess = "board_access"

	// SessionName is the cookie name for the HTTP session.
	SessionName = "board_session"

	// MinPasswordLength is the minimum accepted password length on signup.
	MinPasswordLength = 8
)
