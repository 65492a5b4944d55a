package voice_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	cmdvoice "fjacquet/finsight/cmd/voice"
	"fjacquet/finsight/internal/categorizer"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/models"
	"fjacquet/finsight/internal/store"
	"fjacquet/finsight/internal/voice"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, out *bytes.Buffer) (*voice.Session, *store.MemoryStore) {
	t.Helper()
	logger := logging.NewMockLogger()
	s := store.NewMemoryStore(logger)
	matcher := voice.NewMatcher(categorizer.NewDefaultClassifier(logger), logger)
	executor := voice.NewExecutor(s, cmdvoice.ConsoleUI{W: out}, logger)
	session := voice.NewSession("u1", voice.SessionDeps{Matcher: matcher, Executor: executor, Logger: logger}, time.Second)
	t.Cleanup(session.Close)
	return session, s
}

func TestVoiceCommand_Metadata(t *testing.T) {
	assert.Equal(t, "voice", cmdvoice.Cmd.Use)
	for _, name := range []string{"say", "yes", "speak"} {
		assert.NotNil(t, cmdvoice.Cmd.Flags().Lookup(name), name)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		opts      cmdvoice.Options
		wantLeft  int
		wantLines []string
	}{
		{
			name:      "add then quit",
			input:     "add expense 25 for lunch\nquit\nadd expense 99 for pizza\n",
			wantLeft:  2,
			wantLines: []string{"Added $25 expense for Food"},
		},
		{
			name:      "delete declined",
			input:     "delete last transaction\nno\n",
			wantLeft:  1,
			wantLines: []string{voice.SecurityCheckMessage, voice.SecurityCancelMessage},
		},
		{
			name:      "delete confirmed",
			input:     "delete last transaction\ny\n",
			wantLeft:  0,
			wantLines: []string{"Deleted the last transaction"},
		},
		{
			name:      "delete auto-confirmed",
			input:     "delete last transaction\n",
			opts:      cmdvoice.Options{AutoConfirm: true},
			wantLeft:  0,
			wantLines: []string{"Deleted the last transaction"},
		},
		{
			name:      "unknown and navigation",
			input:     "\nsing a song\ngo to dashboard\n",
			wantLeft:  1,
			wantLines: []string{voice.UnknownCommandMessage, "[navigate /]"},
		},
		{
			name:      "prompts",
			input:     "delete last transaction\nn\n",
			opts:      cmdvoice.Options{Prompt: true},
			wantLeft:  1,
			wantLines: []string{"> ", "Confirm? [y/N] "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			session, s := newSession(t, &out)
			ctx := context.Background()
			_, err := s.Create(ctx, models.Transaction{
				UserID: "u1", Type: models.TypeExpense, Amount: decimal.NewFromInt(10), Category: "Food", Date: "2024-01-01",
			})
			require.NoError(t, err)

			require.NoError(t, cmdvoice.Run(ctx, strings.NewReader(tt.input), &out, session, tt.opts))

			for _, line := range tt.wantLines {
				assert.Contains(t, out.String(), line)
			}
			txs, err := s.List(ctx, "u1")
			require.NoError(t, err)
			assert.Len(t, txs, tt.wantLeft)
		})
	}
}

func TestConsoleSpeaker(t *testing.T) {
	var buf bytes.Buffer
	cmdvoice.ConsoleSpeaker{W: &buf}.Speak("hello")
	assert.Equal(t, "(speaking) hello\n", buf.String())
}
