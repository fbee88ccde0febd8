package response

import (
	"time"

	"github.com/adopour/backend/internal/orm"
)

type Author struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	IsVerified  bool   `json:"is_verified"`
}

func NewAuthor(profile *orm.Profile) Author {
	return Author{
		ID:          profile.ID.String(),
		Username:    profile.Username,
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.AvatarURL,
		IsVerified:  profile.IsVerified,
	}
}

type Profile struct {
	Author
	Bio         string    `json:"bio"`
	IsAdmin     bool      `json:"is_admin"`
	IsDeveloper bool      `json:"is_developer"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProfile(profile *orm.Profile) Profile {
	return Profile{
		Author:      NewAuthor(profile),
		Bio:         profile.Bio,
		IsAdmin:     profile.IsAdmin,
		IsDeveloper: profile.IsDeveloper,
		CreatedAt:   profile.CreatedAt,
	}
}

// PrivateProfile is a profile as seen by its owner or a developer.
type PrivateProfile struct {
	Profile
	Email          string `json:"email"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

func NewPrivateProfile(profile *orm.Profile) PrivateProfile {
	return PrivateProfile{
		Profile:        NewProfile(profile),
		Email:          profile.Email,
		EmailConfirmed: profile.EmailConfirmed,
	}
}

func NewPrivateProfiles(profiles []*orm.Profile) []PrivateProfile {
	result := make([]PrivateProfile, 0, len(profiles))
	for _, profile := range profiles {
		result = append(result, NewPrivateProfile(profile))
	}
	return result
}

type CommunitySummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type Post struct {
	ID            string            `json:"id"`
	Content       string            `json:"content"`
	ImageURL      string            `json:"image_url,omitempty"`
	Author        Author            `json:"author"`
	Community     *CommunitySummary `json:"community,omitempty"`
	LikesCount    int64             `json:"likes_count"`
	CommentsCount int64             `json:"comments_count"`
	IsLiked       bool              `json:"is_liked"`
	CreatedAt     time.Time         `json:"created_at"`
}

func NewPost(post *orm.Post) Post {
	result := Post{
		ID:            post.ID.String(),
		Content:       post.Content,
		ImageURL:      post.ImageURL,
		Author:        NewAuthor(&post.Author),
		LikesCount:    post.LikesCount,
		CommentsCount: post.CommentsCount,
		IsLiked:       post.IsLiked,
		CreatedAt:     post.CreatedAt,
	}
	if post.Community != nil {
		result.Community = &CommunitySummary{
			ID:          post.Community.ID.String(),
			Name:        post.Community.Name,
			DisplayName: post.Community.DisplayName,
		}
	}
	return result
}

func NewPosts(posts []*orm.Post) []Post {
	result := make([]Post, 0, len(posts))
	for _, post := range posts {
		result = append(result, NewPost(post))
	}
	return result
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

func NewComment(comment *orm.Comment) Comment {
	return Comment{
		ID:        comment.ID.String(),
		PostID:    comment.PostID.String(),
		Content:   comment.Content,
		Author:    NewAuthor(&comment.Author),
		CreatedAt: comment.CreatedAt,
	}
}

func NewComments(comments []*orm.Comment) []Comment {
	result := make([]Comment, 0, len(comments))
	for _, comment := range comments {
		result = append(result, NewComment(comment))
	}
	return result
}

type Community struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	BannerURL   string    `json:"banner_url,omitempty"`
	Creator     Author    `json:"creator"`
	MemberCount int       `json:"member_count"`
	PostCount   int       `json:"post_count"`
	IsJoined    bool      `json:"is_joined"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewCommunity(community *orm.Community) Community {
	return Community{
		ID:          community.ID.String(),
		Name:        community.Name,
		DisplayName: community.DisplayName,
		Description: community.Description,
		AvatarURL:   community.AvatarURL,
		BannerURL:   community.BannerURL,
		Creator:     NewAuthor(&community.Creator),
		MemberCount: community.MemberCount,
		PostCount:   community.PostCount,
		IsJoined:    community.IsJoined,
		CreatedAt:   community.CreatedAt,
	}
}

func NewCommunities(communities []*orm.Community) []Community {
	result := make([]Community, 0, len(communities))
	for _, community := range communities {
		result = append(result, NewCommunity(community))
	}
	return result
}

type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Actor     Author    `json:"actor"`
	PostID    *string   `json:"post_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotifications(notifications []*orm.Notification) []Notification {
	result := make([]Notification, 0, len(notifications))
	for _, notification := range notifications {
		item := Notification{
			ID:        notification.ID.String(),
			Type:      notification.Type,
			Actor:     NewAuthor(&notification.Actor),
			Read:      notification.IsRead,
			CreatedAt: notification.CreatedAt,
		}
		if notification.PostID != nil {
			postID := notification.PostID.String()
			item.PostID = &postID
		}
		result = append(result, item)
	}
	return result
}

type Friendship struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FriendID  string    `json:"friend_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func NewFriendship(friendship *orm.Friendship) Friendship {
	return Friendship{
		ID:        friendship.ID.String(),
		UserID:    friendship.UserID.String(),
		FriendID:  friendship.FriendID.String(),
		Status:    friendship.Status,
		CreatedAt: friendship.CreatedAt,
	}
}
