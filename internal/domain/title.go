package domain

// TitleMaxLength is the number of characters kept from the first message.
const TitleMaxLength = 50

// TitleFromMessage derives a conversation title from its first user message.
// Lengths are counted in characters, not bytes.
func TitleFromMessage(message string) string {
	runes := []rune(message)
	if len(runes) <= TitleMaxLength {
		return message
	}
	return string(runes[:TitleMaxLength]) + "..."
}
