package voice

import (
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/textutils"
)

// Matcher maps transcripts onto commands using the fixed, ordered command
// table. The first pattern of the first matching definition wins. A Matcher
// holds no per-session state and may be shared between sessions.
type Matcher struct {
	table      []definition
	classifier Classifier
	logger     logging.Logger
}

// NewMatcher creates a matcher that resolves categories with classifier.
func NewMatcher(classifier Classifier, logger logging.Logger) *Matcher {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Matcher{
		table:      commandTable(),
		classifier: classifier,
		logger:     logger.WithField(logging.FieldComponent, "voice.matcher"),
	}
}

// Match lower-cases and trims transcript and returns the command it names.
// The boolean is false when no pattern matches.
func (m *Matcher) Match(transcript string) (Command, bool) {
	cleaned := textutils.NormalizeTranscript(transcript)
	if cleaned == "" {
		return Command{}, false
	}

	for _, def := range m.table {
		for i, re := range def.Patterns {
			groups := re.FindStringSubmatch(cleaned)
			if groups == nil {
				continue
			}
			cmd, ok := def.Build(groups, m.classifier)
			if !ok {
				continue
			}
			m.logger.Debug("Matched voice command",
				logging.F(logging.FieldCommand, string(cmd.Type)),
				logging.F("pattern", i),
				logging.F(logging.FieldTranscript, cleaned))
			return cmd, true
		}
	}

	m.logger.Info("Unrecognized voice command", logging.F(logging.FieldTranscript, cleaned))
	return Command{}, false
}

// CommandTypes lists the command types in matching order.
func (m *Matcher) CommandTypes() []CommandType {
	out := make([]CommandType, len(m.table))
	for i, def := range m.table {
		out[i] = def.Type
	}
	return out
}
