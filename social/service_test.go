package social

import (
	"context"
	Errors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for exercising the state machine, with
// per-email save failure injection and creation-race simulation
type memStore struct {
	accounts      map[string]*Account
	conversations map[string]*Conversation
	saveErr       map[string]error
	saveOrder     []string
	createRaces   int
}

func newMemStore() *memStore {
	return &memStore{
		accounts:      make(map[string]*Account),
		conversations: make(map[string]*Conversation),
		saveErr:       make(map[string]error),
	}
}

func (m *memStore) addAccount(email string, name string) {
	m.accounts[email] = &Account{
		Email:   email,
		Name:    name,
		Created: time.Now().UTC(),
	}
}

func (m *memStore) Account(ctx context.Context, email string) (*Account, error) {
	account, ok := m.accounts[email]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account.clone(), nil
}

func (m *memStore) Accounts(ctx context.Context, emails []string) ([]*Account, error) {
	var accounts []*Account
	for _, email := range emails {
		if account, ok := m.accounts[email]; ok {
			accounts = append(accounts, account.clone())
		}
	}
	return accounts, nil
}

func (m *memStore) CreateAccount(ctx context.Context, account *Account) error {
	if _, ok := m.accounts[account.Email]; ok {
		return ErrAccountExists
	}
	m.accounts[account.Email] = account.clone()
	return nil
}

func (m *memStore) SaveAccount(ctx context.Context, account *Account) error {
	if err := m.saveErr[account.Email]; err != nil {
		return err
	}
	m.saveOrder = append(m.saveOrder, account.Email)
	m.accounts[account.Email] = account.clone()
	return nil
}

func (m *memStore) SearchByName(ctx context.Context, name string) ([]*Account, error) {
	var accounts []*Account
	for _, account := range m.accounts {
		if account.Name == name {
			accounts = append(accounts, account.clone())
		}
	}
	return accounts, nil
}

func (m *memStore) Conversation(ctx context.Context, pairKey string) (*Conversation, error) {
	conversation, ok := m.conversations[pairKey]
	if !ok {
		return nil, ErrConversationNotFound
	}
	copied := *conversation
	copied.Messages = append([]Message(nil), conversation.Messages...)
	return &copied, nil
}

func (m *memStore) CreateConversation(ctx context.Context, pairKey string, seed ...Message) error {
	if m.createRaces > 0 {
		m.createRaces--
		m.conversations[pairKey] = &Conversation{PairKey: pairKey, Created: time.Now().UTC()}
		return ErrConversationExists
	}
	if _, ok := m.conversations[pairKey]; ok {
		return ErrConversationExists
	}
	m.conversations[pairKey] = &Conversation{
		PairKey:  pairKey,
		Created:  time.Now().UTC(),
		Messages: append([]Message(nil), seed...),
	}
	return nil
}

func (m *memStore) AppendMessage(ctx context.Context, pairKey string, message Message) error {
	conversation, ok := m.conversations[pairKey]
	if !ok {
		return ErrConversationNotFound
	}
	conversation.Messages = append(conversation.Messages, message)
	return nil
}

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	store.addAccount("alice@x.com", "Alice")
	store.addAccount("bob@x.com", "Bob")
	store.addAccount("carol@x.com", "Carol")
	store.addAccount("dave@x.com", "Dave")
	return NewService(store), store
}

func TestSendRequestRecordsPendingOnBothSides(t *testing.T) {
	service, store := newTestService()

	result, err := service.SendRequest(context.Background(), "alice@x.com", "bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, RequestPending, result)

	alice := store.accounts["alice@x.com"]
	bob := store.accounts["bob@x.com"]
	assert.True(t, Contains(alice.Pending, "bob@x.com"))
	assert.True(t, Contains(bob.Requests, "alice@x.com"))
	assert.False(t, Contains(alice.Friends, "bob@x.com"))
	assert.False(t, Contains(bob.Friends, "alice@x.com"))

	_, ok := store.conversations[DerivePairKey("alice@x.com", "bob@x.com")]
	assert.False(t, ok, "plain request must not open a conversation")
}

func TestSendRequestSelfFails(t *testing.T) {
	service, store := newTestService()

	_, err := service.SendRequest(context.Background(), "alice@x.com", "Alice@X.com")
	assert.Equal(t, ErrSelfRequest, err)
	assert.Empty(t, store.accounts["alice@x.com"].Pending)
	assert.Empty(t, store.accounts["alice@x.com"].Requests)
}

func TestSendRequestDuplicates(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.SendRequest(ctx, "alice@x.com", "bob@x.com")
	require.NoError(t, err)

	_, err = service.SendRequest(ctx, "alice@x.com", "bob@x.com")
	assert.Equal(t, ErrDuplicateRelationship, err, "re-requesting a pending target")

	require.NoError(t, service.AcceptRequest(ctx, "bob@x.com", "alice@x.com"))

	_, err = service.SendRequest(ctx, "alice@x.com", "bob@x.com")
	assert.Equal(t, ErrDuplicateRelationship, err, "requesting an existing friend")
}

func TestSendRequestUnknownAccount(t *testing.T) {
	service, _ := newTestService()

	_, err := service.SendRequest(context.Background(), "alice@x.com", "nobody@x.com")
	assert.Equal(t, ErrAccountNotFound, err)
}

func TestSendRequestMutualBecomesFriends(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	_, err := service.SendRequest(ctx, "bob@x.com", "alice@x.com")
	require.NoError(t, err)

	result, err := service.SendRequest(ctx, "alice@x.com", "bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, RequestAccepted, result)

	alice := store.accounts["alice@x.com"]
	bob := store.accounts["bob@x.com"]
	assert.True(t, Contains(alice.Friends, "bob@x.com"))
	assert.True(t, Contains(bob.Friends, "alice@x.com"))
	assert.Empty(t, alice.Requests)
	assert.Empty(t, alice.Pending)
	assert.Empty(t, bob.Requests)
	assert.Empty(t, bob.Pending)

	conversation := store.conversations[DerivePairKey("alice@x.com", "bob@x.com")]
	require.NotNil(t, conversation, "mutual request opens the conversation")
	require.Len(t, conversation.Messages, 1)
	assert.Equal(t, "bob@x.com", conversation.Messages[0].Sender)
}

func TestAcceptRequestScenario(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	_, err := service.SendRequest(ctx, "alice@x.com", "bob@x.com")
	require.NoError(t, err)
	assert.True(t, Contains(store.accounts["bob@x.com"].Requests, "alice@x.com"))

	require.NoError(t, service.AcceptRequest(ctx, "bob@x.com", "alice@x.com"))

	alice := store.accounts["alice@x.com"]
	bob := store.accounts["bob@x.com"]
	assert.True(t, Contains(alice.Friends, "bob@x.com"))
	assert.True(t, Contains(bob.Friends, "alice@x.com"))
	assert.False(t, Contains(bob.Requests, "alice@x.com"))
	assert.False(t, Contains(alice.Pending, "bob@x.com"))

	conversation, err := service.FindOrCreateConversation(ctx, "alice@x.com", "bob@x.com")
	require.NoError(t, err)
	require.Len(t, conversation.Messages, 1, "acceptance seeds the conversation")
	assert.Equal(t, "alice@x.com", conversation.Messages[0].Sender)

	_, err = service.AppendMessage(ctx, conversation.PairKey, "alice@x.com", "hi")
	require.NoError(t, err)

	conversation, err = service.FindOrCreateConversation(ctx, "bob@x.com", "alice@x.com")
	require.NoError(t, err)
	require.Len(t, conversation.Messages, 2)
	assert.Equal(t, "alice@x.com", conversation.Messages[1].Sender)
	assert.Equal(t, "hi", conversation.Messages[1].Body)
}

func TestAcceptRequestIdempotentConversation(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	_, err := service.SendRequest(ctx, "alice@x.com", "bob@x.com")
	require.NoError(t, err)
	require.NoError(t, service.AcceptRequest(ctx, "bob@x.com", "alice@x.com"))

	pairKey := DerivePairKey("alice@x.com", "bob@x.com")
	_, err = service.AppendMessage(ctx, pairKey, "bob@x.com", "how are you")
	require.NoError(t, err)

	// re-opening the pair's conversation must leave existing history untouched
	require.NoError(t, service.ensureConversation(ctx, "bob@x.com", "alice@x.com"))

	assert.Len(t, store.conversations[pairKey].Messages, 2)
}

func TestAcceptRequestWithoutPending(t *testing.T) {
	service, _ := newTestService()

	err := service.AcceptRequest(context.Background(), "bob@x.com", "alice@x.com")
	assert.Equal(t, ErrNoSuchRequest, err)
}

func TestDeclineRequestCleansBothSides(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	_, err := service.SendRequest(ctx, "carol@x.com", "dave@x.com")
	require.NoError(t, err)

	require.NoError(t, service.DeclineRequest(ctx, "dave@x.com", "carol@x.com"))

	carol := store.accounts["carol@x.com"]
	dave := store.accounts["dave@x.com"]
	assert.Empty(t, carol.Friends)
	assert.Empty(t, carol.Pending)
	assert.Empty(t, carol.Requests)
	assert.Empty(t, dave.Friends)
	assert.Empty(t, dave.Pending)
	assert.Empty(t, dave.Requests)

	_, ok := store.conversations[DerivePairKey("carol@x.com", "dave@x.com")]
	assert.False(t, ok, "decline must not create a conversation")
}

func TestDeclineRequestWithoutPending(t *testing.T) {
	service, _ := newTestService()

	err := service.DeclineRequest(context.Background(), "dave@x.com", "carol@x.com")
	assert.Equal(t, ErrNoSuchRequest, err)
}

func TestSavePairFixedOrderAndRevert(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	_, err := service.SendRequest(ctx, "bob@x.com", "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@x.com", "bob@x.com"}, store.saveOrder,
		"writes go out in lexicographic email order")

	// second write of the pair fails: the error surfaces and the first
	// record is reverted
	store.saveOrder = nil
	boom := Errors.New("scylla down")
	store.saveErr["dave@x.com"] = boom

	_, err = service.SendRequest(ctx, "dave@x.com", "carol@x.com")
	assert.Equal(t, boom, err)
	assert.Empty(t, store.accounts["carol@x.com"].Requests, "first record reverted")
	assert.Empty(t, store.accounts["dave@x.com"].Pending)
}

func TestFindOrCreateConversationIdempotent(t *testing.T) {
	service, store := newTestService()
	ctx := context.Background()

	first, err := service.FindOrCreateConversation(ctx, "alice@x.com", "bob@x.com")
	require.NoError(t, err)

	second, err := service.FindOrCreateConversation(ctx, "bob@x.com", "alice@x.com")
	require.NoError(t, err)

	assert.Equal(t, first.PairKey, second.PairKey)
	assert.Len(t, store.conversations, 1)
}

func TestFindOrCreateConversationLostRace(t *testing.T) {
	service, store := newTestService()
	store.createRaces = 1

	conversation, err := service.FindOrCreateConversation(context.Background(), "alice@x.com", "bob@x.com")
	require.NoError(t, err, "losing the creation race resolves as a lookup")
	assert.Equal(t, DerivePairKey("alice@x.com", "bob@x.com"), conversation.PairKey)
}

func TestAppendMessageGuards(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	conversation, err := service.FindOrCreateConversation(ctx, "alice@x.com", "bob@x.com")
	require.NoError(t, err)

	_, err = service.AppendMessage(ctx, conversation.PairKey, "alice@x.com", "")
	assert.Equal(t, ErrInvalidMessage, err)

	_, err = service.AppendMessage(ctx, conversation.PairKey, "carol@x.com", "let me in")
	assert.Equal(t, ErrInvalidMessage, err, "sender must be a participant of the pair")

	message, err := service.AppendMessage(ctx, conversation.PairKey, "Alice@X.com", "hello")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", message.Sender)
}
