package social

import Errors "errors"

// Error kinds produced by the core. The HTTP layer translates these into
// responses; anything not matching one of them is a generic storage failure.
var (
	// ErrNotAuthenticated when an operation runs without a caller identity
	ErrNotAuthenticated = Errors.New("social: not authenticated")

	// ErrAccountNotFound when no account exists for an email
	ErrAccountNotFound = Errors.New("social: account not found")

	// ErrAccountExists when registering an email that is already taken
	ErrAccountExists = Errors.New("social: account exists")

	// ErrSelfRequest when an account friend-requests itself
	ErrSelfRequest = Errors.New("social: self request")

	// ErrDuplicateRelationship when re-requesting an existing friend or pending target
	ErrDuplicateRelationship = Errors.New("social: duplicate relationship")

	// ErrNoSuchRequest when accepting/declining with no matching pending request
	ErrNoSuchRequest = Errors.New("social: no such request")

	// ErrInvalidMessage when text is empty or the sender is not a participant
	ErrInvalidMessage = Errors.New("social: invalid message")

	// ErrConversationNotFound when no conversation exists for a pair key
	ErrConversationNotFound = Errors.New("social: conversation not found")

	// ErrConversationExists when creating a conversation that already exists
	ErrConversationExists = Errors.New("social: conversation exists")
)
