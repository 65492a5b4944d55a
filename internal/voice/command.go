// Package voice turns spoken transcripts into finance commands. It holds the
// ordered pattern table, the confirmation gate for destructive commands, the
// executor that applies commands to the transaction store, and the capture
// session state machine that ties them together per user.
package voice

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CommandType identifies what a recognized command does.
type CommandType string

const (
	CommandAddExpense     CommandType = "add_expense"
	CommandAddIncome      CommandType = "add_income"
	CommandNavigate       CommandType = "navigate"
	CommandScrollTo       CommandType = "scroll_to"
	CommandFilter         CommandType = "filter"
	CommandFilterDate     CommandType = "filter_date"
	CommandGetBalance     CommandType = "get_balance"
	CommandDeleteLast     CommandType = "delete_last"
	CommandDeleteCategory CommandType = "delete_category"
	CommandShowHelp       CommandType = "show_help"
	CommandStopListening  CommandType = "stop_listening"
)

// Fixed user-facing messages.
const (
	UnknownCommandMessage = "I didn't understand that. Try saying 'help' to see available commands."
	SecurityCheckMessage  = "This action requires security confirmation. Please confirm to proceed."
	SecurityPromptSpoken  = "This action requires confirmation. Please confirm to proceed."
	SecurityCancelMessage = "Security check cancelled"
)

// Command is the structured result of matching a transcript. Only the fields
// relevant to Type are set.
type Command struct {
	Type             CommandType     `json:"type" yaml:"type"`
	Amount           decimal.Decimal `json:"amount" yaml:"amount"`
	Category         string          `json:"category,omitempty" yaml:"category,omitempty"`
	Description      string          `json:"description,omitempty" yaml:"description,omitempty"`
	Route            string          `json:"route,omitempty" yaml:"route,omitempty"`
	Element          string          `json:"element,omitempty" yaml:"element,omitempty"`
	Date             string          `json:"date,omitempty" yaml:"date,omitempty"`
	RequiresSecurity bool            `json:"requiresSecurity" yaml:"requires_security"`
}

// ResponseMessage is the acknowledgement shown as soon as a command is
// recognized, before it runs.
func (c Command) ResponseMessage(currency string) string {
	switch c.Type {
	case CommandAddExpense:
		return fmt.Sprintf("Adding %s%s expense for %s", currency, c.Amount.String(), c.Category)
	case CommandAddIncome:
		return fmt.Sprintf("Adding %s%s income for %s", currency, c.Amount.String(), c.Category)
	case CommandNavigate:
		return "Navigating to dashboard"
	case CommandFilter:
		return fmt.Sprintf("Filtering by %s", c.Category)
	case CommandGetBalance:
		return "Checking your balance"
	case CommandDeleteLast:
		return "Please confirm to delete the last transaction"
	case CommandDeleteCategory:
		return fmt.Sprintf("Please confirm to delete all %s expenses", c.Category)
	case CommandShowHelp:
		return "Showing available commands"
	case CommandStopListening:
		return "Stopping voice recognition"
	default:
		return fmt.Sprintf("Executing: %s", c.Type)
	}
}
