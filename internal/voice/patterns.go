package voice

import (
	"regexp"

	"fjacquet/finsight/internal/currencyutils"
	"fjacquet/finsight/internal/textutils"
)

// Classifier is the category lookup the pattern table needs.
type Classifier interface {
	ClassifyExpense(text string) string
	ClassifyIncome(text string) string
	Normalize(name string) string
}

type buildFunc func(groups []string, c Classifier) (Command, bool)

// definition is one row of the command table. Its patterns are tried in order.
type definition struct {
	Type     CommandType
	Patterns []*regexp.Regexp
	Build    buildFunc
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile("(?i)" + e)
	}
	return out
}

// commandTable returns the definitions in matching order. Order is part of
// the behaviour: the generic "<amount> for <thing>" expense pattern shadows
// income phrasings such as "received 500 for freelance project", and the
// filter definition shadows "show today's transactions". Both are pinned by
// tests and must not be reordered.
func commandTable() []definition {
	return []definition{
		{
			Type: CommandAddExpense,
			Patterns: patterns(
				`add (?:an? )?(?:expense|spending|purchase|payment) (?:of )?(\d+(?:\.\d+)?)(?:\s*dollars?)?(?:\s+for|\s+on)?\s+(.+)`,
				`(?:i )?(?:spent|paid|bought|purchased) (?:about )?(\d+(?:\.\d+)?)(?:\s*dollars?)?(?:\s+on|\s+for)?\s+(.+)`,
				`(?:add|record|log) (?:expense|spending) (\d+(?:\.\d+)?)\s+(.+)`,
				`(\d+(?:\.\d+)?)\s+(?:dollars? )?(?:for|on) (.+)`,
			),
			Build: buildAmount(CommandAddExpense),
		},
		{
			Type: CommandAddIncome,
			Patterns: patterns(
				`add (?:an? )?(?:income|money|salary|payment) (?:of )?(\d+(?:\.\d+)?)(?:\s*dollars?)?(?:\s+from|\s+for)?\s+(.+)`,
				`(?:i )?(?:received|got|earned|made) (?:about )?(\d+(?:\.\d+)?)(?:\s*dollars?)?(?:\s+from|\s+for)?\s+(.+)`,
				`(?:add|record|log) (?:income|deposit) (\d+(?:\.\d+)?)\s+(.+)`,
			),
			Build: buildAmount(CommandAddIncome),
		},
		{
			Type: CommandNavigate,
			Patterns: patterns(
				`(?:show|go to|open|view) (?:the )?dashboard`,
				`(?:take me to|navigate to) (?:the )?dashboard`,
			),
			Build: fixed(Command{Type: CommandNavigate, Route: "/"}),
		},
		{
			Type: CommandScrollTo,
			Patterns: patterns(
				`(?:show|view|list) (?:all )?(?:my )?transactions`,
				`(?:show|view) (?:transaction )?list`,
			),
			Build: fixed(Command{Type: CommandScrollTo, Element: "transactions"}),
		},
		{
			Type: CommandFilter,
			Patterns: patterns(
				`(?:show|view|filter) (?:all )?(.+?) (?:expenses|transactions)`,
				`filter (?:by )?(?:category )?(.+)`,
			),
			Build: buildCategory(CommandFilter, false),
		},
		{
			Type: CommandFilterDate,
			Patterns: patterns(
				`(?:show|view) (?:today[']?s?) (?:transactions|spending|expenses)`,
				`what (?:did|have) i (?:spend|spent) today`,
			),
			Build: fixed(Command{Type: CommandFilterDate, Date: "today"}),
		},
		{
			Type: CommandGetBalance,
			Patterns: patterns(
				`what (?:is|'s) my (?:current )?balance`,
				`how much money (?:do|does) i have`,
				`check (?:my )?balance`,
				`show (?:my )?balance`,
			),
			Build: fixed(Command{Type: CommandGetBalance}),
		},
		{
			Type: CommandDeleteLast,
			Patterns: patterns(
				`delete (?:the )?last transaction`,
				`remove (?:the )?last transaction`,
				`undo (?:the )?last (?:transaction|entry)`,
			),
			Build: fixed(Command{Type: CommandDeleteLast, RequiresSecurity: true}),
		},
		{
			Type: CommandDeleteCategory,
			Patterns: patterns(
				`delete (?:all )?(.+?) (?:expenses|transactions)`,
				`remove (?:all )?(.+?) (?:expenses|transactions)`,
				`clear (?:all )?(.+?) (?:expenses|transactions)`,
			),
			Build: buildCategory(CommandDeleteCategory, true),
		},
		{
			Type: CommandShowHelp,
			Patterns: patterns(
				`what can i (?:say|do)`,
				`help (?:with )?(?:commands|voice)`,
				`show (?:available )?commands`,
				`how (?:do|can) i use (?:this|voice commands)`,
			),
			Build: fixed(Command{Type: CommandShowHelp}),
		},
		{
			Type: CommandStopListening,
			Patterns: patterns(
				`stop (?:listening|voice)`,
				`turn (?:the )?(?:microphone|voice) (?:off|on)`,
				`exit voice (?:mode|command)`,
			),
			Build: fixed(Command{Type: CommandStopListening}),
		},
	}
}

func fixed(cmd Command) buildFunc {
	return func([]string, Classifier) (Command, bool) {
		return cmd, true
	}
}

func buildAmount(typ CommandType) buildFunc {
	return func(groups []string, c Classifier) (Command, bool) {
		amount, err := currencyutils.ParseAmount(groups[1])
		if err != nil {
			return Command{}, false
		}
		text := groups[2]
		category := c.ClassifyExpense(text)
		if typ == CommandAddIncome {
			category = c.ClassifyIncome(text)
		}
		return Command{
			Type:        typ,
			Amount:      amount,
			Category:    category,
			Description: textutils.CleanDescription(text),
		}, true
	}
}

func buildCategory(typ CommandType, security bool) buildFunc {
	return func(groups []string, c Classifier) (Command, bool) {
		return Command{
			Type:             typ,
			Category:         c.Normalize(groups[1]),
			RequiresSecurity: security,
		}, true
	}
}
