package social

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/fasthash/fnv1a"
)

// seedMessageBody is the first message of a conversation opened on acceptance
const seedMessageBody = "Hey!"

// pairLockCount stripes the per-pair creation locks
const pairLockCount = 64

// RequestResult reports how SendRequest resolved
type RequestResult string

const (
	// RequestPending when the request now awaits the target's decision
	RequestPending RequestResult = "pending"
	// RequestAccepted when the target had already requested the caller, so
	// both transitioned straight to friends
	RequestAccepted RequestResult = "friends"
)

// Service runs the relationship state machine and the conversation lifecycle
// over a Store. Every operation re-loads the authoritative records; nothing is
// cached between calls.
type Service struct {
	store     Store
	pairLocks [pairLockCount]sync.Mutex
}

// NewService returns a Service over the given store
func NewService(store Store) *Service {
	return &Service{store: store}
}

// pairLock serializes conversation creation per pair key locally; the store's
// uniqueness constraint covers creation races across processes
func (s *Service) pairLock(pairKey string) *sync.Mutex {
	return &s.pairLocks[fnv1a.HashString64(pairKey)%pairLockCount]
}

// loadPair loads both accounts of an operation
func (s *Service) loadPair(ctx context.Context, emailA string, emailB string) (*Account, *Account, error) {
	a, err := s.store.Account(ctx, emailA)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.store.Account(ctx, emailB)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// savePair persists both mutated records in a fixed order (lexicographic by
// email) so two operations on the same pair cannot write in opposite orders.
// A failure on the second write reverts the first record best-effort and is
// surfaced either way, never swallowed.
func (s *Service) savePair(ctx context.Context, a *Account, b *Account, aPrev *Account, bPrev *Account) error {
	first, second, firstPrev := a, b, aPrev
	if second.Email < first.Email {
		first, second, firstPrev = b, a, bPrev
	}
	if err := s.store.SaveAccount(ctx, first); err != nil {
		return err
	}
	if err := s.store.SaveAccount(ctx, second); err != nil {
		if revertErr := s.store.SaveAccount(ctx, firstPrev); revertErr != nil {
			return fmt.Errorf("saving %s failed (%v), reverting %s failed: %w",
				second.Email, err, first.Email, revertErr)
		}
		return err
	}
	return nil
}

// SendRequest records a friend request from requester to target. Requesting an
// existing friend or an already-requested target is a duplicate; if the target
// had already requested the requester, both transition straight to friends and
// the conversation is opened (mutual acceptance).
func (s *Service) SendRequest(ctx context.Context, requester string, target string) (RequestResult, error) {

	requester = NormalizeEmail(requester)
	target = NormalizeEmail(target)

	if requester == target {
		return "", ErrSelfRequest
	}

	requesterAcct, targetAcct, err := s.loadPair(ctx, requester, target)
	if err != nil {
		return "", err
	}

	if Contains(requesterAcct.Friends, target) || Contains(requesterAcct.Pending, target) {
		return "", ErrDuplicateRelationship
	}

	if Contains(requesterAcct.Requests, target) {
		if err = s.accept(ctx, requesterAcct, targetAcct); err != nil {
			return "", err
		}
		return RequestAccepted, nil
	}

	requesterPrev := requesterAcct.clone()
	targetPrev := targetAcct.clone()

	requesterAcct.Pending = append(requesterAcct.Pending, target)
	targetAcct.Requests = append(targetAcct.Requests, requester)

	if err = s.savePair(ctx, requesterAcct, targetAcct, requesterPrev, targetPrev); err != nil {
		return "", err
	}
	return RequestPending, nil
}

// AcceptRequest confirms a pending request from requester sitting in
// accepter's incoming list: both records become friends, the pending entries
// are cleared on both sides, and a conversation is opened for the pair.
func (s *Service) AcceptRequest(ctx context.Context, accepter string, requester string) error {

	accepter = NormalizeEmail(accepter)
	requester = NormalizeEmail(requester)

	accepterAcct, requesterAcct, err := s.loadPair(ctx, accepter, requester)
	if err != nil {
		return err
	}

	return s.accept(ctx, accepterAcct, requesterAcct)
}

// accept applies the acceptance transition to loaded records. The requester
// must currently be in the accepter's incoming list.
func (s *Service) accept(ctx context.Context, accepterAcct *Account, requesterAcct *Account) error {

	if !Contains(accepterAcct.Requests, requesterAcct.Email) {
		return ErrNoSuchRequest
	}

	accepterPrev := accepterAcct.clone()
	requesterPrev := requesterAcct.clone()

	accepterAcct.Requests = remove(accepterAcct.Requests, requesterAcct.Email)
	requesterAcct.Pending = remove(requesterAcct.Pending, accepterAcct.Email)
	if !Contains(accepterAcct.Friends, requesterAcct.Email) {
		accepterAcct.Friends = append(accepterAcct.Friends, requesterAcct.Email)
	}
	if !Contains(requesterAcct.Friends, accepterAcct.Email) {
		requesterAcct.Friends = append(requesterAcct.Friends, accepterAcct.Email)
	}

	if err := s.savePair(ctx, accepterAcct, requesterAcct, accepterPrev, requesterPrev); err != nil {
		return err
	}

	return s.ensureConversation(ctx, accepterAcct.Email, requesterAcct.Email)
}

// DeclineRequest drops a pending request from requester on both sides:
// requester leaves decliner's incoming list and decliner leaves requester's
// outgoing list. No conversation side effect.
func (s *Service) DeclineRequest(ctx context.Context, decliner string, requester string) error {

	decliner = NormalizeEmail(decliner)
	requester = NormalizeEmail(requester)

	declinerAcct, requesterAcct, err := s.loadPair(ctx, decliner, requester)
	if err != nil {
		return err
	}

	if !Contains(declinerAcct.Requests, requester) {
		return ErrNoSuchRequest
	}

	declinerPrev := declinerAcct.clone()
	requesterPrev := requesterAcct.clone()

	declinerAcct.Requests = remove(declinerAcct.Requests, requester)
	requesterAcct.Pending = remove(requesterAcct.Pending, decliner)

	return s.savePair(ctx, declinerAcct, requesterAcct, declinerPrev, requesterPrev)
}

// ensureConversation opens the pair's conversation with the seed message from
// the requester if absent, and leaves existing history untouched
func (s *Service) ensureConversation(ctx context.Context, accepter string, requester string) error {

	pairKey := DerivePairKey(accepter, requester)

	lock := s.pairLock(pairKey)
	lock.Lock()
	defer lock.Unlock()

	_, err := s.store.Conversation(ctx, pairKey)
	if err == nil {
		return nil
	}
	if err != ErrConversationNotFound {
		return err
	}

	seed := Message{Sender: requester, Body: seedMessageBody, Created: time.Now().UTC()}
	if err = s.store.CreateConversation(ctx, pairKey, seed); err != nil && err != ErrConversationExists {
		return err
	}
	return nil
}

// FindOrCreateConversation locates the conversation of two accounts, creating
// an empty record if none exists yet. A creation race against another caller
// resolves by retrying the lookup, so both callers see the same record.
func (s *Service) FindOrCreateConversation(ctx context.Context, emailA string, emailB string) (*Conversation, error) {

	pairKey := DerivePairKey(emailA, emailB)

	lock := s.pairLock(pairKey)
	lock.Lock()
	defer lock.Unlock()

	conversation, err := s.store.Conversation(ctx, pairKey)
	if err == nil {
		return conversation, nil
	}
	if err != ErrConversationNotFound {
		return nil, err
	}

	if err = s.store.CreateConversation(ctx, pairKey); err != nil && err != ErrConversationExists {
		return nil, err
	}

	return s.store.Conversation(ctx, pairKey)
}

// AppendMessage appends one text entry to the pair's conversation. The text
// must be non-empty and the sender must be one of the two participants of the
// pair key.
func (s *Service) AppendMessage(ctx context.Context, pairKey string, sender string, text string) (Message, error) {

	sender = NormalizeEmail(sender)

	if len(text) == 0 {
		return Message{}, ErrInvalidMessage
	}

	participantA, participantB := PairKeyParticipants(pairKey)
	if sender != participantA && sender != participantB {
		return Message{}, ErrInvalidMessage
	}

	message := Message{Sender: sender, Body: text, Created: time.Now().UTC()}
	if err := s.store.AppendMessage(ctx, pairKey, message); err != nil {
		return Message{}, err
	}
	return message, nil
}
