package model

type ReactionSummary struct {
	Emoji string `json:"emoji"`
	Count int64  `json:"count"`
	Mine  bool   `json:"mine"`
}

type GetActivityReactionsRequest struct {
	ActivityID string `json:"activity_id"`
}

type GetActivityReactionsResponse struct {
	Reactions []ReactionSummary `json:"reactions"`
}

type ToggleActivityReactionRequest struct {
	ActivityID string `json:"activity_id"`
	Emoji      string `json:"emoji"`
}

type ToggleActivityReactionResponse struct {
	Reactions []ReactionSummary `json:"reactions"`
}

type RemoveActivityReactionRequest struct {
	ActivityID string `json:"activity_id"`
	Emoji      string `json:"emoji"`
}

type RemoveActivityReactionResponse struct {
	Reactions []ReactionSummary `json:"reactions"`
}

type GetHabitReactionsRequest struct {
	FriendID string `json:"friend_id"`
	HabitID  string `json:"habit_id"`
}

type GetHabitReactionsResponse struct {
	Reactions []ReactionSummary `json:"reactions"`
}

type ToggleHabitReactionRequest struct {
	FriendID string `json:"friend_id"`
	HabitID  string `json:"habit_id"`
	Emoji    string `json:"emoji"`
}

type ToggleHabitReactionResponse struct {
	Reactions []ReactionSummary `json:"reactions"`
}

type RemoveHabitReactionRequest struct {
	FriendID string `json:"friend_id"`
	HabitID  string `json:"habit_id"`
	Emoji    string `json:"emoji"`
}

type RemoveHabitReactionResponse struct {
	Reactions []ReactionSummary `json:"reactions"`
}
