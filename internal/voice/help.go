package voice

// HelpGroup is one intent of the help catalogue with example phrases.
type HelpGroup struct {
	Intent   string   `json:"intent" yaml:"intent"`
	Examples []string `json:"examples" yaml:"examples"`
}

// HelpCatalogue returns the phrases shown for show_help.
func HelpCatalogue() []HelpGroup {
	return []HelpGroup{
		{Intent: "Add Expense", Examples: []string{"Add expense 50 for lunch", "Spent 25 on groceries", "Paid 30 for gas"}},
		{Intent: "Add Income", Examples: []string{"Add income 1000 from salary", "Received 500 from freelance", "Got 50 from gift"}},
		{Intent: "Check Balance", Examples: []string{"What is my balance?", "How much money do I have?", "Show my balance"}},
		{Intent: "View Transactions", Examples: []string{"Show my transactions", "View transaction list", "What did I spend today"}},
		{Intent: "Filter", Examples: []string{"Show food expenses", "Filter by shopping", "View travel transactions"}},
		{Intent: "Delete (Security Required)", Examples: []string{"Delete last transaction", "Remove all food expenses", "Clear shopping transactions"}},
		{Intent: "Navigation", Examples: []string{"Go to dashboard", "Take me to the dashboard"}},
		{Intent: "Help", Examples: []string{"What can I say?", "Show commands", "Help with voice"}},
		{Intent: "Stop", Examples: []string{"Stop listening", "Exit voice mode"}},
	}
}

// SpeechErrorMessage maps a recognizer error code to a user message.
func SpeechErrorMessage(code string) string {
	switch code {
	case "no-speech":
		return "No speech detected. Please try again."
	case "audio-capture":
		return "No microphone found. Please check your microphone."
	case "not-allowed":
		return "Microphone access denied. Please allow microphone access."
	case "network":
		return "Network error. Please check your internet connection."
	default:
		return "Error: " + code
	}
}
