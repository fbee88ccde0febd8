package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	aipkg "github.com/adopour/backend/internal/ai"
	eventpkg "github.com/adopour/backend/internal/event"
	ormpkg "github.com/adopour/backend/internal/orm"
)

type message struct {
	event string
	data  string
}

type channelConsumer struct {
	messages chan message
}

func (c *channelConsumer) ReadMessage(ctx context.Context) (string, string, error) {
	select {
	case <-ctx.Done():
		return "", "", ctx.Err()
	case m := <-c.messages:
		return m.event, m.data, nil
	}
}

type sentMail struct {
	to      string
	subject string
	content string
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *recordingMailer) SendHTML(to string, subject string, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, content: content})
	return nil
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type memoryStore struct {
	profiles map[string]*ormpkg.Profile
	contacts map[string]*ormpkg.ContactRequest

	mu     sync.Mutex
	pruned []time.Duration
}

func (s *memoryStore) DeleteStaleSessions(maxIdle time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruned = append(s.pruned, maxIdle)
	return 1, nil
}

func (s *memoryStore) SelectProfileByID(id string) (*ormpkg.Profile, error) {
	profile, ok := s.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (s *memoryStore) SelectContactRequestByID(id string) (*ormpkg.ContactRequest, error) {
	request, ok := s.contacts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return request, nil
}

type moderator struct {
	analysis *aipkg.PostAnalysis
	err      error
	postIDs  []string
}

func (m *moderator) ModeratePost(ctx context.Context, postID string) (*aipkg.PostAnalysis, error) {
	m.postIDs = append(m.postIDs, postID)
	return m.analysis, m.err
}

type notifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *notifier) record(call string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, call)
	return nil
}

func (n *notifier) NotifyPostLiked(ctx context.Context, postID string, userID string) error {
	return n.record("liked:" + postID + ":" + userID)
}

func (n *notifier) NotifyCommentCreated(ctx context.Context, commentID string) error {
	return n.record("comment:" + commentID)
}

func (n *notifier) NotifyFriendRequested(ctx context.Context, friendshipID string) error {
	return n.record("friend:" + friendshipID)
}

type fixture struct {
	worker    *Worker
	consumer  *channelConsumer
	mailer    *recordingMailer
	store     *memoryStore
	moderator *moderator
	notifier  *notifier
}

func newFixture() *fixture {
	f := &fixture{
		consumer: &channelConsumer{messages: make(chan message, 8)},
		mailer:   &recordingMailer{},
		store: &memoryStore{
			profiles: map[string]*ormpkg.Profile{},
			contacts: map[string]*ormpkg.ContactRequest{},
		},
		moderator: &moderator{analysis: &aipkg.PostAnalysis{IsSafe: true}},
		notifier:  &notifier{},
	}
	f.worker = NewWorker(
		zap.NewNop(),
		f.consumer,
		f.mailer,
		f.store,
		f.moderator,
		f.notifier,
		&Config{
			VerificationURL: "https://adopour.test/verify",
			SalesEmail:      "sales@adopour.test",
			SessionMaxIdle:  time.Hour,
			CleanupInterval: 5 * time.Millisecond,
		},
	)
	return f
}

func TestAuthorizationRegisterHandler(t *testing.T) {
	f := newFixture()
	profile := &ormpkg.Profile{
		ID:                uuid.New(),
		Email:             "ana@example.com",
		DisplayName:       "Ana",
		VerificationToken: "token-1",
	}
	f.store.profiles[profile.ID.String()] = profile

	err := f.worker.AuthorizationRegisterHandler(context.Background(), []byte(`{"id":"`+profile.ID.String()+`"}`))
	require.NoError(t, err)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "ana@example.com", f.mailer.sent[0].to)
	assert.Contains(t, f.mailer.sent[0].content, "https://adopour.test/verify?token=token-1")

	profile.EmailConfirmed = true
	err = f.worker.AuthorizationRegisterHandler(context.Background(), []byte(`{"id":"`+profile.ID.String()+`"}`))
	require.NoError(t, err)
	assert.Len(t, f.mailer.sent, 1)

	err = f.worker.AuthorizationRegisterHandler(context.Background(), []byte(`{"id":"nope"}`))
	assert.Error(t, err)
}

func TestBusinessContactHandler(t *testing.T) {
	f := newFixture()
	request := &ormpkg.ContactRequest{
		ID:        uuid.New(),
		Name:      "Ana",
		Email:     "ana@acme.io",
		Company:   "Acme",
		Message:   "We want ads",
		CreatedAt: time.Now(),
	}
	f.store.contacts[request.ID.String()] = request

	err := f.worker.BusinessContactHandler(context.Background(), []byte(`{"id":"`+request.ID.String()+`"}`))
	require.NoError(t, err)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "sales@adopour.test", f.mailer.sent[0].to)
	assert.Equal(t, "Business inquiry from Acme", f.mailer.sent[0].subject)
	assert.Contains(t, f.mailer.sent[0].content, "We want ads")

	err = f.worker.BusinessContactHandler(context.Background(), []byte(`{"id":"`+uuid.NewString()+`"}`))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostCreatedHandler(t *testing.T) {
	f := newFixture()
	postID := uuid.NewString()

	require.NoError(t, f.worker.PostCreatedHandler(context.Background(), []byte(`{"id":"`+postID+`"}`)))
	assert.Equal(t, []string{postID}, f.moderator.postIDs)

	f.moderator.err = status.Errorf(codes.NotFound, "post not found")
	assert.NoError(t, f.worker.PostCreatedHandler(context.Background(), []byte(`{"id":"`+postID+`"}`)))

	f.moderator.err = status.Errorf(codes.Unavailable, "model unavailable")
	assert.Error(t, f.worker.PostCreatedHandler(context.Background(), []byte(`{"id":"`+postID+`"}`)))
}

func TestRouterJoinsHandlerErrors(t *testing.T) {
	first := errors.New("first")
	calls := 0
	router := NewRouter(map[string][]EventHandler{
		"EVENT": {
			func(ctx context.Context, data []byte) error { calls++; return first },
			func(ctx context.Context, data []byte) error { calls++; return nil },
		},
	})

	err := router.Handle(context.Background(), "EVENT", nil)
	assert.ErrorIs(t, err, first)
	assert.Equal(t, 2, calls)

	assert.NoError(t, router.Handle(context.Background(), "OTHER", nil))
	assert.False(t, router.Handles("OTHER"))
}

func TestWorkerConsumesEvents(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.worker.Start())

	f.consumer.messages <- message{event: eventpkg.POST_LIKED, data: `{"post_id":"p1","user_id":"u1"}`}
	f.consumer.messages <- message{event: "UNKNOWN", data: `{}`}
	f.consumer.messages <- message{event: eventpkg.COMMENT_CREATED, data: `{"id":"c1"}`}
	f.consumer.messages <- message{event: eventpkg.FRIEND_REQUESTED, data: `{"id":"f1"}`}

	assert.Eventually(t, func() bool {
		f.notifier.mu.Lock()
		defer f.notifier.mu.Unlock()
		return len(f.notifier.calls) == 3
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, f.worker.Stop())
	assert.Equal(t, []string{"liked:p1:u1", "comment:c1", "friend:f1"}, f.notifier.calls)
	assert.Zero(t, f.mailer.count())
}

func TestWorkerPrunesSessions(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.worker.Start())

	assert.Eventually(t, func() bool {
		f.store.mu.Lock()
		defer f.store.mu.Unlock()
		return len(f.store.pruned) > 0
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, f.worker.Stop())
	assert.Equal(t, time.Hour, f.store.pruned[0])
}
