package model

type User struct {
	ID         string `json:"id"`
	TelegramID int64  `json:"telegram_id,omitempty"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	PhotoURL   string `json:"photo_url"`
	Language   string `json:"language"`
}

type GetMeRequest struct{}

type GetMeResponse struct {
	User User `json:"user"`
}

type UpdateLanguageRequest struct {
	Language string `json:"language"`
}

type UpdateLanguageResponse struct {
	User User `json:"user"`
}
