package notify

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchgames/site/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNilDispatcherIsSafe(t *testing.T) {
	var d *Dispatcher
	// None of these may panic.
	d.ContactReceived(store.Contact{Name: "Alex"})
	d.ApplicationReceived(store.Application{Name: "Alex"})
	d.Close()

	assert.Nil(t, NewDispatcher("", testLogger()))
}

func TestContactReceivedDelivers(t *testing.T) {
	received := make(chan message, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg message
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		received <- msg
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, testLogger())
	d.ContactReceived(store.Contact{
		Name:    "Alex",
		Email:   "alex@example.com",
		Subject: "Hi",
		Message: "Love the games",
	})
	d.Close()

	select {
	case msg := <-received:
		require.Len(t, msg.Embeds, 1)
		e := msg.Embeds[0]
		assert.Equal(t, contactColor, e.Color)
		assert.Equal(t, "Switch Games Contact Form", e.Footer.Text)
		require.Len(t, e.Fields, 4)
		assert.Equal(t, "Alex", e.Fields[0].Value)
		assert.Equal(t, "Love the games", e.Fields[3].Value)
	case <-time.After(5 * time.Second):
		t.Fatal("webhook never delivered")
	}
}

func TestApplicationReceivedSkipsEmptyAnswers(t *testing.T) {
	received := make(chan message, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg message
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		received <- msg
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, testLogger())
	d.ApplicationReceived(store.Application{
		Position:   "Gameplay Programmer",
		Name:       "Alex",
		Email:      "alex@example.com",
		Experience: "Five years",
		Answers: []store.Answer{
			{Question: "Favorite engine?", Answer: "Our own"},
			{Question: "Unanswered", Answer: ""},
		},
	})
	d.Close()

	select {
	case msg := <-received:
		require.Len(t, msg.Embeds, 1)
		e := msg.Embeds[0]
		assert.Equal(t, applicationColor, e.Color)
		// Six standard fields plus the single answered question.
		require.Len(t, e.Fields, 7)
		assert.Equal(t, "Favorite engine?", e.Fields[6].Name)
		assert.Equal(t, "Not provided", e.Fields[3].Value, "empty discord handle")
	case <-time.After(5 * time.Second):
		t.Fatal("webhook never delivered")
	}
}

func TestSendRetriesOn5xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, testLogger())
	d.ContactReceived(store.Contact{Name: "Alex"})
	d.Close()

	assert.Equal(t, int32(2), calls.Load())
}

func TestSendDoesNotRetryOn4xx(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, testLogger())
	d.ContactReceived(store.Contact{Name: "Alex"})
	d.Close()

	assert.Equal(t, int32(1), calls.Load())
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 2000)
	got := truncate(long)
	assert.Len(t, got, fieldValueLimit)
	assert.True(t, strings.HasSuffix(got, "..."))

	short := "fits fine"
	assert.Equal(t, short, truncate(short))
}
