package formatting

// Pluralize выбирает форму слова по количеству
func Pluralize(count int, one, many string) string {
	if count == 1 {
		return one
	}
	return many
}

// PluralizeSessions "session" или "sessions"
func PluralizeSessions(count int) string {
	return Pluralize(count, "session", "sessions")
}
