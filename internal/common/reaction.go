package common

import "golang.org/x/exp/slices"

// AllowedEmojis is the closed set of reactions the clients can send.
var AllowedEmojis = []string{"🔥", "💪", "👏", "❤️", "🎯", "🚀"}

func IsAllowedEmoji(emoji string) bool {
	return slices.Contains(AllowedEmojis, emoji)
}
