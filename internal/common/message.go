package common

import (
	"fmt"
	"strings"
)

const (
	LanguageEN = "en"
	LanguageRU = "ru"
)

func isRussian(language string) bool {
	return strings.EqualFold(language, LanguageRU)
}

func CompletedMessage(language, habitTitle string) string {
	if isRussian(language) {
		return fmt.Sprintf("Выполнена привычка: %s", habitTitle)
	}

	return fmt.Sprintf("Completed habit: %s", habitTitle)
}

func StreakMessage(language, habitTitle string, current int) string {
	if isRussian(language) {
		return fmt.Sprintf("Серия %d дней для %s", current, habitTitle)
	}

	return fmt.Sprintf("%d days streak for %s", current, habitTitle)
}

func RecordMessage(language, habitTitle string, best int) string {
	if isRussian(language) {
		return fmt.Sprintf("Новый рекорд: %d для %s", best, habitTitle)
	}

	return fmt.Sprintf("New record: %d for %s", best, habitTitle)
}

func ReactionMessage(language, actorName, emoji string) string {
	if isRussian(language) {
		return fmt.Sprintf("%s отреагировал(а) %s на вашу активность", actorName, emoji)
	}

	return fmt.Sprintf("%s reacted %s to your activity", actorName, emoji)
}

func ReminderMessage(language string, pending int64) string {
	if isRussian(language) {
		return fmt.Sprintf("Напоминание: сегодня осталось отметить %d привычк(и).", pending)
	}

	return fmt.Sprintf("Reminder: you still have %d habit(s) to complete today.", pending)
}
