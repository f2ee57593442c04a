package model

type Friend struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	PhotoURL  string `json:"photo_url"`
}

type GetFriendsRequest struct{}

type GetFriendsResponse struct {
	Friends []Friend `json:"friends"`
}

type CreateFriendInviteRequest struct{}

type CreateFriendInviteResponse struct {
	Code      string `json:"code"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

type AcceptFriendInviteRequest struct {
	Code string `json:"code"`
}

type AcceptFriendInviteResponse struct {
	Friend Friend `json:"friend"`
}

type RemoveFriendRequest struct {
	FriendID string `json:"friend_id"`
}

type RemoveFriendResponse struct{}

type GetFriendProfileRequest struct {
	FriendID string `json:"friend_id"`
}

type GetFriendProfileResponse struct {
	Friend Friend `json:"friend"`
}
