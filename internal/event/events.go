package event

const (
	AUTHORIZATION_REGISTER = "AUTHORIZATION_REGISTER"
	AUTHORIZATION_LOGIN    = "AUTHORIZATION_LOGIN"
	POST_CREATED           = "POST_CREATED"
	POST_LIKED             = "POST_LIKED"
	COMMENT_CREATED        = "COMMENT_CREATED"
	FRIEND_REQUESTED       = "FRIEND_REQUESTED"
	BUSINESS_CONTACT       = "BUSINESS_CONTACT"
)

type AuthorizationRegisterMessage struct {
	ID string `json:"id"`
}

type AuthorizationLoginMessage struct {
	ID string `json:"id"`
}

type PostCreatedMessage struct {
	ID string `json:"id"`
}

type PostLikedMessage struct {
	PostID string `json:"post_id"`
	UserID string `json:"user_id"`
}

type CommentCreatedMessage struct {
	ID string `json:"id"`
}

type FriendRequestedMessage struct {
	ID string `json:"id"`
}

type BusinessContactMessage struct {
	ID string `json:"id"`
}
