package storage

import (
	"context"
	"time"

	"AMALGAM_server/social"

	"github.com/gocql/gocql"
)

// ScyllaStore implements social.Store on top of a gocql session. Uniqueness of
// accounts.email and conversations.pair_key is enforced with lightweight
// IF NOT EXISTS inserts.
type ScyllaStore struct {
	session *gocql.Session
}

// NewScyllaStore returns a store over the given cql session
func NewScyllaStore(session *gocql.Session) *ScyllaStore {
	return &ScyllaStore{session: session}
}

// Account loads one account record by email
func (s *ScyllaStore) Account(ctx context.Context, email string) (*social.Account, error) {

	account := &social.Account{Email: email}

	err := s.session.Query(`
		SELECT name, password_hash, created, friends, frequests, pendingreq
		FROM accounts WHERE email = ? LIMIT 1;`,
		email,
	).WithContext(ctx).Scan(
		&account.Name,
		&account.PasswordHash,
		&account.Created,
		&account.Friends,
		&account.Requests,
		&account.Pending,
	)

	if err != nil {
		if err == gocql.ErrNotFound {
			return nil, social.ErrAccountNotFound
		}
		return nil, err
	}

	return account, nil
}

// Accounts loads the account records of a list of emails
func (s *ScyllaStore) Accounts(ctx context.Context, emails []string) ([]*social.Account, error) {

	if len(emails) == 0 {
		return nil, nil
	}

	iter := s.session.Query(`
		SELECT email, name, password_hash, created, friends, frequests, pendingreq
		FROM accounts WHERE email IN ?;`,
		emails,
	).WithContext(ctx).Iter()

	var accounts []*social.Account
	for {
		account := &social.Account{}
		if !iter.Scan(
			&account.Email,
			&account.Name,
			&account.PasswordHash,
			&account.Created,
			&account.Friends,
			&account.Requests,
			&account.Pending,
		) {
			break
		}
		accounts = append(accounts, account)
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return accounts, nil
}

// CreateAccount inserts a new account; the email must not be taken
func (s *ScyllaStore) CreateAccount(ctx context.Context, account *social.Account) error {

	applied, err := s.session.Query(`
		INSERT INTO accounts (email,name,password_hash,created,friends,frequests,pendingreq)
		VALUES(?,?,?,?,?,?,?)
		IF NOT EXISTS;`,
		account.Email,
		account.Name,
		account.PasswordHash,
		account.Created,
		account.Friends,
		account.Requests,
		account.Pending,
	).WithContext(ctx).MapScanCAS(make(map[string]interface{}))

	if err != nil {
		return err
	}
	if !applied {
		return social.ErrAccountExists
	}

	return s.session.Query(`
		INSERT INTO accounts_by_name (name,email)
		VALUES(?,?);`,
		account.Name,
		account.Email,
	).WithContext(ctx).Exec()
}

// SaveAccount overwrites the mutable fields of an existing account record
func (s *ScyllaStore) SaveAccount(ctx context.Context, account *social.Account) error {

	return s.session.Query(`
		UPDATE accounts
		SET
		name = ?,
		password_hash = ?,
		friends = ?,
		frequests = ?,
		pendingreq = ?
		WHERE email = ?;`,
		account.Name,
		account.PasswordHash,
		account.Friends,
		account.Requests,
		account.Pending,
		account.Email,
	).WithContext(ctx).Exec()
}

// SearchByName finds accounts through the accounts_by_name lookup table
func (s *ScyllaStore) SearchByName(ctx context.Context, name string) ([]*social.Account, error) {

	iter := s.session.Query(`
		SELECT email FROM accounts_by_name WHERE name = ?;`,
		name,
	).WithContext(ctx).Iter()

	var (
		email  string
		emails []string
	)
	for iter.Scan(&email) {
		emails = append(emails, email)
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return s.Accounts(ctx, emails)
}

// Conversation loads a conversation record and its ordered message history
func (s *ScyllaStore) Conversation(ctx context.Context, pairKey string) (*social.Conversation, error) {

	conversation := &social.Conversation{PairKey: pairKey}

	err := s.session.Query(`
		SELECT created FROM conversations WHERE pair_key = ? LIMIT 1;`,
		pairKey,
	).WithContext(ctx).Scan(&conversation.Created)

	if err != nil {
		if err == gocql.ErrNotFound {
			return nil, social.ErrConversationNotFound
		}
		return nil, err
	}

	iter := s.session.Query(`
		SELECT message_id, sender, body FROM conversation_messages WHERE pair_key = ?;`,
		pairKey,
	).WithContext(ctx).Iter()

	var (
		messageID gocql.UUID
		message   social.Message
	)
	for iter.Scan(&messageID, &message.Sender, &message.Body) {
		message.Created = messageID.Time().UTC()
		conversation.Messages = append(conversation.Messages, message)
	}

	if err = iter.Close(); err != nil {
		return nil, err
	}
	return conversation, nil
}

// CreateConversation inserts a new conversation record for a pair key,
// optionally seeded with initial messages. A lost creation race surfaces as
// social.ErrConversationExists so the caller can retry as a lookup.
func (s *ScyllaStore) CreateConversation(ctx context.Context, pairKey string, seed ...social.Message) error {

	applied, err := s.session.Query(`
		INSERT INTO conversations (pair_key,created)
		VALUES(?,?)
		IF NOT EXISTS;`,
		pairKey,
		time.Now().UTC(),
	).WithContext(ctx).MapScanCAS(make(map[string]interface{}))

	if err != nil {
		return err
	}
	if !applied {
		return social.ErrConversationExists
	}

	for _, message := range seed {
		if err = s.AppendMessage(ctx, pairKey, message); err != nil {
			return err
		}
	}
	return nil
}

// AppendMessage appends one message row; the timeuuid clustering column keeps
// history in arrival order
func (s *ScyllaStore) AppendMessage(ctx context.Context, pairKey string, message social.Message) error {

	return s.session.Query(`
		INSERT INTO conversation_messages (pair_key,message_id,sender,body)
		VALUES(?,?,?,?);`,
		pairKey,
		gocql.UUIDFromTime(message.Created),
		message.Sender,
		message.Body,
	).WithContext(ctx).Exec()
}
