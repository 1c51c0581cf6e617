package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/MissionIntelligence/internal/config"
)

func TestNewServer_UsesConfig(t *testing.T) {
	mux := http.NewServeMux()
	srv := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 8088, ReadTimeout: 5 * time.Second}, mux, nil)

	require.NotNil(t, srv)
	assert.Equal(t, "127.0.0.1:8088", srv.Addr())
	assert.Equal(t, 5*time.Second, srv.srv.ReadTimeout)
	assert.Equal(t, 30*time.Second, srv.shutdownTimeout)
	assert.Equal(t, http.Handler(mux), srv.Handler())
}

func TestServer_StartStop(t *testing.T) {
	srv := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: time.Second}, http.NewServeMux(), nil)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, srv.Stop(context.Background()))
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

//Personal.AI order the ending
