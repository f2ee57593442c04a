package model

type Activity struct {
	ID           string            `json:"id"`
	HabitID      string            `json:"habit_id,omitempty"`
	UserID       string            `json:"user_id"`
	UserName     string            `json:"user_name"`
	UserPhotoURL string            `json:"user_photo_url"`
	Mine         bool              `json:"mine"`
	Type         string            `json:"type"`
	Message      string            `json:"message"`
	CreatedAt    string            `json:"created_at"`
	Reactions    []ReactionSummary `json:"reactions"`
}

type GetFeedRequest struct{}

type GetFeedResponse struct {
	Activities []Activity `json:"activities"`
}
