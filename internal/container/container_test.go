package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/finsight/internal/config"
	"fjacquet/finsight/internal/logging"
	"fjacquet/finsight/internal/voice"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Backend = backend
	switch backend {
	case "csv":
		cfg.Store.Path = filepath.Join(t.TempDir(), "tx.csv")
	case "sqlite":
		cfg.Store.Path = filepath.Join(t.TempDir(), "tx.db")
	}
	cfg.Voice.HistoryDir = filepath.Join(t.TempDir(), "history")
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      func(t *testing.T) *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      func(t *testing.T) *config.Config { return nil },
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "memory backend",
			config: func(t *testing.T) *config.Config { return testConfig(t, "memory") },
		},
		{
			name:   "csv backend",
			config: func(t *testing.T) *config.Config { return testConfig(t, "csv") },
		},
		{
			name:   "sqlite backend",
			config: func(t *testing.T) *config.Config { return testConfig(t, "sqlite") },
		},
		{
			name: "unknown backend",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig(t, "memory")
				cfg.Store.Backend = "redis"
				return cfg
			},
			expectError: true,
			errorMsg:    "failed to open transaction store",
		},
		{
			name: "missing categories file",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig(t, "memory")
				cfg.Voice.CategoriesFile = filepath.Join(t.TempDir(), "absent.yaml")
				return cfg
			},
			expectError: true,
			errorMsg:    "failed to load category tables",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config(t), WithLogger(logging.NewMockLogger()))
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetConfig())
			assert.NotNil(t, c.GetStore())
			assert.NotNil(t, c.GetClassifier())
			assert.NotNil(t, c.GetEngine())
			assert.NotNil(t, c.GetMatcher())
			assert.NotNil(t, c.GetExecutor())
			assert.NotNil(t, c.GetVoiceManager())
			assert.NoError(t, c.Close())
		})
	}
}

func TestContainer_CategoriesFileOverridesClassifier(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.Voice.CategoriesFile = filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(cfg.Voice.CategoriesFile, []byte(`
expense:
  - name: Pets
    keywords: [dog, cat, vet]
`), 0o600))

	c, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "Pets", c.GetClassifier().ClassifyExpense("vet visit"))
}

func TestContainer_VoiceFlowReachesStore(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.Insights.CurrencySymbol = "€"

	c, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	events, err := c.GetVoiceManager().Session("u1").Process(ctx, "add expense 25 for lunch")
	require.NoError(t, err)
	require.NotEmpty(t, events)

	txs, err := c.GetStore().List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Food", txs[0].Category)

	assert.Equal(t, "€", c.Profile("u1").Currency())
	_, ok := c.GetVoiceManager().Lookup("u1")
	assert.True(t, ok)
}

func TestContainer_ManagerOptionsForwarded(t *testing.T) {
	var got []voice.Event
	c, err := NewContainer(testConfig(t, "memory"),
		WithLogger(logging.NewMockLogger()),
		WithManagerOptions(voice.WithEventHandler(func(_ string, ev voice.Event) { got = append(got, ev) })),
	)
	require.NoError(t, err)
	defer c.Close()

	c.GetVoiceManager().Session("u1").StartCapture()
	require.NotEmpty(t, got)
	assert.Equal(t, voice.EventError, got[0].Type)
}
