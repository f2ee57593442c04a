package model

type Habit struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Type          string `json:"type"`
	TimesPerWeek  *int   `json:"times_per_week,omitempty"`
	Color         string `json:"color"`
	Icon          string `json:"icon"`
	Archived      bool   `json:"archived"`
	CurrentStreak int    `json:"current_streak"`
	BestStreak    int    `json:"best_streak"`
	CreatedAt     string `json:"created_at"`
}

type HabitStats struct {
	CompletedWeek  int `json:"completed_week"`
	TargetWeek     int `json:"target_week"`
	CompletedMonth int `json:"completed_month"`
	TargetMonth    int `json:"target_month"`
	WeekPercent    int `json:"week_percent"`
	MonthPercent   int `json:"month_percent"`
	CurrentStreak  int `json:"current_streak"`
	BestStreak     int `json:"best_streak"`
}

type Completion struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

type CreateHabitRequest struct {
	Title        string `json:"title"`
	Type         string `json:"type"`
	TimesPerWeek *int   `json:"times_per_week"`
	Color        string `json:"color"`
	Icon         string `json:"icon"`
	Archived     bool   `json:"archived"`
}

type CreateHabitResponse Habit

type UpdateHabitRequest struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Type         string `json:"type"`
	TimesPerWeek *int   `json:"times_per_week"`
	Color        string `json:"color"`
	Icon         string `json:"icon"`
	Archived     bool   `json:"archived"`
}

type UpdateHabitResponse Habit

type DeleteHabitRequest struct {
	ID string `json:"id"`
}

type DeleteHabitResponse struct{}

type GetHabitsRequest struct{}

type GetHabitsResponse struct {
	Habits []Habit `json:"habits"`
}

type GetFriendHabitsRequest struct {
	FriendID string `json:"friend_id"`
}

type GetFriendHabitsResponse struct {
	Habits []Habit `json:"habits"`
}

type GetHabitStatsRequest struct {
	ID string `json:"id"`
}

type GetHabitStatsResponse HabitStats

type GetFriendHabitStatsRequest struct {
	FriendID string `json:"friend_id"`
	HabitID  string `json:"habit_id"`
}

type GetFriendHabitStatsResponse HabitStats

type CompleteHabitRequest struct {
	ID string `json:"id"`
}

type CompleteHabitResponse Completion

type UncompleteHabitRequest struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

type UncompleteHabitResponse struct{}

type GetHabitHistoryRequest struct {
	ID string `json:"id"`
}

type GetHabitHistoryResponse struct {
	Completions []Completion `json:"completions"`
}
