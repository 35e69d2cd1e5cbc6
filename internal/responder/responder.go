// Package responder produces scripted assistant replies from user input.
// Generation is a pure function over the input text: no state, no I/O,
// and it never fails.
package responder

import "strings"

// Canned replies, one per rule.
const (
	GreetingReply = "Hello! How can I assist you today?"
	HelpReply     = "I'm here to help! What do you need assistance with?"
	QuestionReply = "That's an interesting question. Let me think about that..."
	ThanksReply   = "You're welcome! Is there anything else I can help with?"
	DefaultReply  = "I understand. Can you tell me more about that?"
)

var (
	greetingTokens = []string{"hello", "hi", "hey"}
	helpTokens     = []string{"help", "support"}
	thanksTokens   = []string{"thank"}
)

// Generate returns the reply for the given message text. Rules are evaluated
// in order and the first match wins: greeting, help, question mark, thanks,
// then a generic continuation.
func Generate(text string) string {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, greetingTokens):
		return GreetingReply
	case containsAny(lower, helpTokens):
		return HelpReply
	case strings.Contains(text, "?"):
		return QuestionReply
	case containsAny(lower, thanksTokens):
		return ThanksReply
	default:
		return DefaultReply
	}
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
