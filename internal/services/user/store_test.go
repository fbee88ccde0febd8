package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	ormpkg "github.com/adopour/backend/internal/orm"
)

type publishedEvent struct {
	name    string
	message any
}

type recordingPublisher struct {
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) WriteMessage(_ context.Context, event string, message any) error {
	p.events = append(p.events, publishedEvent{name: event, message: message})
	return p.err
}

type passwordChecker struct {
	pwned map[string]bool
	err   error
}

func (c passwordChecker) IsPasswordPwned(_ context.Context, password string) (bool, error) {
	return c.pwned[password], c.err
}

type friendKey struct {
	userID   uuid.UUID
	friendID uuid.UUID
}

// memoryStore backs both the authorization and the profile services.
type memoryStore struct {
	profiles    map[uuid.UUID]*ormpkg.Profile
	sessions    map[uuid.UUID]*ormpkg.Session
	friendships map[friendKey]*ormpkg.Friendship
	posts       []*ormpkg.Post
	postLikes   int64
	comments    int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		profiles:    map[uuid.UUID]*ormpkg.Profile{},
		sessions:    map[uuid.UUID]*ormpkg.Session{},
		friendships: map[friendKey]*ormpkg.Friendship{},
	}
}

func (m *memoryStore) find(match func(*ormpkg.Profile) bool) (*ormpkg.Profile, error) {
	for _, profile := range m.profiles {
		if match(profile) {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryStore) SelectProfileByID(id string) (*ormpkg.Profile, error) {
	return m.find(func(p *ormpkg.Profile) bool { return p.ID.String() == id })
}

func (m *memoryStore) SelectProfileByEmail(email string) (*ormpkg.Profile, error) {
	return m.find(func(p *ormpkg.Profile) bool { return p.Email == email })
}

func (m *memoryStore) SelectProfileByUsername(username string) (*ormpkg.Profile, error) {
	return m.find(func(p *ormpkg.Profile) bool { return p.Username == username })
}

func (m *memoryStore) SelectProfileByVerificationToken(token string) (*ormpkg.Profile, error) {
	return m.find(func(p *ormpkg.Profile) bool { return p.VerificationToken != "" && p.VerificationToken == token })
}

func (m *memoryStore) CountProfiles() (int64, error) {
	return int64(len(m.profiles)), nil
}

func (m *memoryStore) InsertProfile(profile *ormpkg.Profile) error {
	profile.ID = uuid.New()
	m.profiles[profile.ID] = profile
	return nil
}

func (m *memoryStore) UpdateProfileFields(id uuid.UUID, fields map[string]any) error {
	profile, ok := m.profiles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range fields {
		switch column {
		case "display_name":
			profile.DisplayName = value.(string)
		case "bio":
			profile.Bio = value.(string)
		case "avatar_url":
			profile.AvatarURL = value.(string)
		case "email_confirmed":
			profile.EmailConfirmed = value.(bool)
		case "verification_token":
			profile.VerificationToken = value.(string)
		case "is_admin":
			profile.IsAdmin = value.(bool)
		case "is_verified":
			profile.IsVerified = value.(bool)
		default:
			return errors.New("unknown column " + column)
		}
	}
	return nil
}

func (m *memoryStore) SelectSessionByID(id string) (*ormpkg.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (m *memoryStore) InsertSession(session *ormpkg.Session) error {
	session.ID = uuid.New()
	m.sessions[session.ID] = session
	return nil
}

func (m *memoryStore) TouchSession(*ormpkg.Session) error {
	return nil
}

func (m *memoryStore) DeleteSession(session *ormpkg.Session) error {
	delete(m.sessions, session.ID)
	return nil
}

func (m *memoryStore) SelectPosts(filter ormpkg.PostFilter, _ uuid.UUID, _ string, limit int) ([]*ormpkg.Post, error) {
	var posts []*ormpkg.Post
	for _, post := range m.posts {
		if filter.AuthorID != nil && post.AuthorID != *filter.AuthorID {
			continue
		}
		posts = append(posts, post)
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (m *memoryStore) CountPostsByAuthor(authorID uuid.UUID) (int64, error) {
	posts, _ := m.SelectPosts(ormpkg.PostFilter{AuthorID: &authorID}, uuid.Nil, "", len(m.posts))
	return int64(len(posts)), nil
}

func (m *memoryStore) CountFriends(userID uuid.UUID) (int64, error) {
	var count int64
	for key, friendship := range m.friendships {
		if key.userID == userID && friendship.Status == ormpkg.FriendshipStatusAccepted {
			count++
		}
	}
	return count, nil
}

func (m *memoryStore) SelectFriendship(userID, friendID uuid.UUID) (*ormpkg.Friendship, error) {
	friendship, ok := m.friendships[friendKey{userID, friendID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *friendship
	return &copied, nil
}

func (m *memoryStore) SelectFriendshipByID(id string) (*ormpkg.Friendship, error) {
	for _, friendship := range m.friendships {
		if friendship.ID.String() == id {
			copied := *friendship
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryStore) InsertFriendship(friendship *ormpkg.Friendship) (bool, error) {
	key := friendKey{friendship.UserID, friendship.FriendID}
	if _, exists := m.friendships[key]; exists {
		return false, nil
	}
	friendship.ID = uuid.New()
	m.friendships[key] = friendship
	return true, nil
}

func (m *memoryStore) AcceptFriendship(friendship *ormpkg.Friendship) error {
	m.friendships[friendKey{friendship.UserID, friendship.FriendID}].Status = ormpkg.FriendshipStatusAccepted
	reverse := friendKey{friendship.FriendID, friendship.UserID}
	if existing, ok := m.friendships[reverse]; ok {
		existing.Status = ormpkg.FriendshipStatusAccepted
		return nil
	}
	m.friendships[reverse] = &ormpkg.Friendship{
		ID:       uuid.New(),
		UserID:   friendship.FriendID,
		FriendID: friendship.UserID,
		Status:   ormpkg.FriendshipStatusAccepted,
	}
	return nil
}

func (m *memoryStore) CountPostLikesByAuthor(uuid.UUID) (int64, error)    { return m.postLikes, nil }
func (m *memoryStore) CountCommentsByAuthor(uuid.UUID) (int64, error)     { return m.comments, nil }
func (m *memoryStore) CountPostLikesInCommunity(uuid.UUID) (int64, error) { return 0, nil }
func (m *memoryStore) CountCommentsInCommunity(uuid.UUID) (int64, error)  { return 0, nil }
