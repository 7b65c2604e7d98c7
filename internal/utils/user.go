package utils

import (
	"math/rand"
)

// GetUserLevel returns the badge for a reputation score.
func GetUserLevel(reputation int) (name string, icon string) {
	switch {
	case reputation >= 1000:
		return "Guru", "🏆"
	case reputation >= 200:
		return "Expert", "🎓"
	case reputation >= 50:
		return "Contributor", "💡"
	case reputation >= 10:
		return "Learner", "📘"
	default:
		return "Newcomer", "🌱"
	}
}

// GetRandomEmoji 返回一个随机 emoji 用于默认头像
func GetRandomEmoji() string {
	emojis := []string{"🌱", "🌿", "🍃", "🦉", "🐼", "🦊", "🐨", "🐸", "🧑‍💻", "💡", "🚀", "🎯"}
	return emojis[rand.Intn(len(emojis))]
}
