package social

import (
	"context"
	"strings"
	"time"
)

// Account is one registered person: identity, credential hash and the three
// relationship lists. Relationship lists hold lower-cased emails of other
// accounts and behave as sets.
type Account struct {
	Email        string
	Name         string
	PasswordHash string
	Created      time.Time
	Friends      []string
	Requests     []string // incoming requests awaiting this account's decision
	Pending      []string // outgoing requests awaiting the target's decision
}

// Message is one entry of a conversation's ordered history.
type Message struct {
	Sender  string
	Body    string
	Created time.Time
}

// Conversation is the message history between two accounts, keyed by the
// order-independent pair key of their emails.
type Conversation struct {
	PairKey  string
	Created  time.Time
	Messages []Message
}

// Store is the persistence collaborator. It must enforce uniqueness on
// Account.Email and Conversation.PairKey; CreateAccount and CreateConversation
// report violations as ErrAccountExists/ErrConversationExists.
type Store interface {
	Account(ctx context.Context, email string) (*Account, error)
	Accounts(ctx context.Context, emails []string) ([]*Account, error)
	CreateAccount(ctx context.Context, account *Account) error
	SaveAccount(ctx context.Context, account *Account) error
	SearchByName(ctx context.Context, name string) ([]*Account, error)
	Conversation(ctx context.Context, pairKey string) (*Conversation, error)
	CreateConversation(ctx context.Context, pairKey string, seed ...Message) error
	AppendMessage(ctx context.Context, pairKey string, message Message) error
}

// NormalizeEmail lower-cases an email for storage and comparison
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Contains reports explicit set membership of an email in a relationship list
func Contains(set []string, email string) bool {
	for _, member := range set {
		if member == email {
			return true
		}
	}
	return false
}

// remove returns the list without email, preserving order of the rest
func remove(set []string, email string) []string {
	kept := set[:0]
	for _, member := range set {
		if member != email {
			kept = append(kept, member)
		}
	}
	return kept
}

// clone copies the account including its relationship lists, so an operation
// can mutate a working copy and still revert the stored record on a partial
// write failure
func (a *Account) clone() *Account {
	copied := *a
	copied.Friends = append([]string(nil), a.Friends...)
	copied.Requests = append([]string(nil), a.Requests...)
	copied.Pending = append([]string(nil), a.Pending...)
	return &copied
}
