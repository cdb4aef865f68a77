package prober

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"uptime-api/internal/config"
	"uptime-api/internal/model"
	"uptime-api/internal/storage"
)

func newTestProber(t *testing.T) (*prober, *storage.Store) {
	t.Helper()
	store, err := storage.New(t.TempDir(), zaptest.NewLogger(t))
	assert.NoError(t, err)

	cfg := &config.Config{ProbeInterval: time.Hour}
	return New(cfg, store, zaptest.NewLogger(t)).(*prober), store
}

func createCheck(t *testing.T, store *storage.Store, id, target string, successCodes []int) model.Check {
	t.Helper()
	check := model.Check{
		ID:             id,
		UserPhone:      "5551234567",
		Protocol:       "http",
		URL:            target,
		Method:         "get",
		SuccessCodes:   successCodes,
		TimeoutSeconds: 2,
	}
	assert.NoError(t, store.Create(context.Background(), model.CollectionChecks, id, check))
	return check
}

func TestRunAllMarksUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p, store := newTestProber(t)
	createCheck(t, store, "upcheck0000000000000", srv.Listener.Addr().String(), []int{200})

	p.runAll(context.Background())

	var got model.Check
	assert.NoError(t, store.Read(context.Background(), model.CollectionChecks, "upcheck0000000000000", &got))
	assert.Equal(t, model.CheckStateUp, got.State)
	assert.NotZero(t, got.LastChecked)
}

func TestRunAllMarksDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p, store := newTestProber(t)
	createCheck(t, store, "downcheck00000000000", srv.Listener.Addr().String(), []int{200, 201})

	p.runAll(context.Background())

	var got model.Check
	assert.NoError(t, store.Read(context.Background(), model.CollectionChecks, "downcheck00000000000", &got))
	assert.Equal(t, model.CheckStateDown, got.State)
}

func TestRunAllUnreachableIsDown(t *testing.T) {
	p, store := newTestProber(t)
	// closed port: connection refused
	createCheck(t, store, "gonecheck00000000000", "127.0.0.1:1", []int{200})

	p.runAll(context.Background())

	var got model.Check
	assert.NoError(t, store.Read(context.Background(), model.CollectionChecks, "gonecheck00000000000", &got))
	assert.Equal(t, model.CheckStateDown, got.State)
}

func TestStartStop(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := storage.New(t.TempDir(), zaptest.NewLogger(t))
	assert.NoError(t, err)
	createCheck(t, store, "tickcheck00000000000", srv.Listener.Addr().String(), []int{200})

	cfg := &config.Config{ProbeInterval: 50 * time.Millisecond}
	p := New(cfg, store, zaptest.NewLogger(t))

	go p.Start()
	time.Sleep(300 * time.Millisecond)
	p.Stop()

	assert.Greater(t, atomic.LoadInt32(&hits), int32(0), "expected at least one probe")
}
