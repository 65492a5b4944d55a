package serve_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fjacquet/finsight/cmd/serve"
	"fjacquet/finsight/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer blocks in Start until Shutdown is called, or fails at once.
type fakeServer struct {
	startErr error
	stopped  chan struct{}
	once     sync.Once
	shutdown bool
}

func newFakeServer(startErr error) *fakeServer {
	return &fakeServer{startErr: startErr, stopped: make(chan struct{})}
}

func (f *fakeServer) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return nil
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.once.Do(func() {
		f.shutdown = true
		close(f.stopped)
	})
	return nil
}

func TestServeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "serve", serve.Cmd.Use)
	assert.NotNil(t, serve.Cmd.Flags().Lookup("addr"))
}

func TestServe_StopsOnCancel(t *testing.T) {
	logger := logging.NewMockLogger()
	srv := newFakeServer(nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- serve.Serve(ctx, srv, logger) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
	assert.True(t, srv.shutdown)
	assert.True(t, logger.HasEntry("INFO", "Server stopped gracefully"))
}

func TestServe_StartFailure(t *testing.T) {
	boom := errors.New("address already in use")
	srv := newFakeServer(boom)

	err := serve.Serve(context.Background(), srv, logging.NewMockLogger())
	assert.ErrorIs(t, err, boom)
	assert.True(t, srv.shutdown, "the watcher shuts down after the group context is cancelled")
}
