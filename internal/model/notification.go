package model

type Notification struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Message       string `json:"message"`
	IsRead        bool   `json:"is_read"`
	ActivityID    string `json:"activity_id,omitempty"`
	ActorID       string `json:"actor_id"`
	ActorName     string `json:"actor_name"`
	ActorPhotoURL string `json:"actor_photo_url"`
	CreatedAt     string `json:"created_at"`
}

type GetNotificationsRequest struct{}

type GetNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

type GetUnreadNotificationCountRequest struct{}

type GetUnreadNotificationCountResponse struct {
	Count int64 `json:"count"`
}

type MarkNotificationReadRequest struct {
	ID string `json:"id"`
}

type MarkNotificationReadResponse struct{}

type MarkAllNotificationsReadRequest struct{}

type MarkAllNotificationsReadResponse struct{}
