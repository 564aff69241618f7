package chat

// QuickPrompts are the canned market questions offered to a user starting a
// conversation.
var QuickPrompts = []string{
	"Compare Wakad vs Baner absorption last 2 years",
	"Show price trend for Akurdi since 2020",
	"Where is office supply heating up in 2024?",
}
