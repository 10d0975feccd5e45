package ratesource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fxdesk/remittance_backend/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v6/latest/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestGetLiveRate_CachesWithinTTL(t *testing.T) {
	srv, calls := newRateServer(t, http.StatusOK, `{"result":"success","base_code":"USD","rates":{"INR":110.5,"EUR":0.92}}`)
	c := NewClient(srv.URL+"/v6/", time.Second, time.Minute)

	rate, err := c.GetLiveRate(context.Background(), "usd", "inr")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("110.5")))

	_, err = c.GetLiveRate(context.Background(), "USD", "INR")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestGetLiveRate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"result":"error"}`},
		{"error payload", http.StatusOK, `{"result":"error","error-type":"unsupported-code"}`},
		{"missing pair", http.StatusOK, `{"result":"success","rates":{"EUR":0.92}}`},
		{"zero rate", http.StatusOK, `{"result":"success","rates":{"INR":0}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newRateServer(t, tt.status, tt.body)
			c := NewClient(srv.URL+"/v6", time.Second, time.Minute)

			rate, err := c.GetLiveRate(context.Background(), "USD", "INR")
			assert.ErrorIs(t, err, apperrors.ErrUpstream)
			assert.True(t, rate.IsZero())
		})
	}
}

func TestGetLiveRate_FailureIsNotCached(t *testing.T) {
	srv, calls := newRateServer(t, http.StatusBadGateway, `{}`)
	c := NewClient(srv.URL+"/v6", time.Second, time.Minute)

	_, err := c.GetLiveRate(context.Background(), "USD", "INR")
	assert.Error(t, err)
	_, err = c.GetLiveRate(context.Background(), "USD", "INR")
	assert.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestGetLiveRate_CancelledCallerDoesNotFailSharedLookup(t *testing.T) {
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived <- struct{}{}
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","rates":{"INR":110.5}}`))
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, 5*time.Second, time.Minute)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.GetLiveRate(firstCtx, "USD", "INR")
		firstErr <- err
	}()
	<-arrived

	type outcome struct {
		rate decimal.Decimal
		err  error
	}
	second := make(chan outcome, 1)
	go func() {
		rate, err := c.GetLiveRate(context.Background(), "USD", "INR")
		second <- outcome{rate, err}
	}()

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting on the shared lookup")
	}

	time.Sleep(50 * time.Millisecond)
	close(release)

	select {
	case got := <-second:
		require.NoError(t, got.err)
		assert.True(t, got.rate.Equal(decimal.RequireFromString("110.5")))
	case <-time.After(2 * time.Second):
		t.Fatal("second caller never received the rate")
	}
}
