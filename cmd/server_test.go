package cmd

import (
	"context"
	"net"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"testing"
	"time"

	"dsc/core"

	"github.com/fox-one/pkg/property"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type propertyStub map[string]property.Value

func (s propertyStub) Get(ctx context.Context, key string) (property.Value, error) {
	return s[key], nil
}

func (s propertyStub) Save(ctx context.Context, key string, value interface{}) error {
	s[key] = property.Parse(value)
	return nil
}

func (s propertyStub) Expire(ctx context.Context, key string) error {
	delete(s, key)
	return nil
}

func (s propertyStub) List(ctx context.Context) (map[string]property.Value, error) {
	return s, nil
}

func TestCheckRegistry(t *testing.T) {
	ctx := context.Background()
	store := propertyStub{}
	assets := []core.Asset{"WETH", "WBTC"}

	require.NoError(t, checkRegistry(ctx, store, "fp-1", assets))
	assert.Equal(t, "fp-1", store[registryFingerprintKey].String())
	assert.Equal(t, "WETH,WBTC", store[registryAssetsKey].String())

	assert.NoError(t, checkRegistry(ctx, store, "fp-1", assets))

	err := checkRegistry(ctx, store, "fp-2", assets[:1])
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "WETH,WBTC")
	}
	assert.Equal(t, "fp-1", store[registryFingerprintKey].String())
}

func TestShutdownOnSignal(t *testing.T) {
	// keep the default action from killing the test binary
	caught := make(chan os.Signal, 8)
	ossignal.Notify(caught, syscall.SIGTERM)
	defer ossignal.Stop(caught)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := &http.Server{Handler: http.NotFoundHandler()}
	served := make(chan error, 1)
	go func() {
		served <- server.Serve(l)
	}()

	ctx, quit := shutdownOnSignal(context.Background(), server)
	defer quit()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()

	for ctx.Err() == nil {
		select {
		case <-tick.C:
			require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))
		case <-deadline:
			t.Fatal("context not canceled by SIGTERM")
		case <-ctx.Done():
		}
	}

	select {
	case err := <-served:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("server still serving after SIGTERM")
	}
}

func TestShutdownOnCancel(t *testing.T) {
	server := &http.Server{}
	ctx, quit := shutdownOnSignal(context.Background(), server)
	quit()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled by quit")
	}
}
