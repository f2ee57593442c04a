package entity

import "database/sql"

type User struct {
	Base
	TelegramID sql.NullInt64 `gorm:"unique"`
	Username   string
	FirstName  string
	LastName   string
	PhotoURL   string
	Language   string `gorm:"default:en"`
}

// DisplayName is what feed entries and notifications call the user.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}

	if u.Username != "" {
		return "@" + u.Username
	}

	return "User"
}
