// Package notify posts contact and application summaries to a Discord
// webhook. Delivery is best-effort: failures are logged and swallowed,
// never surfaced to the submitter.
package notify

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// queueSize is the bounded channel capacity for outbound messages.
const queueSize = 256

// Dispatcher sends webhook payloads from a background goroutine.
// Messages are enqueued non-blockingly; when the queue is full they are
// dropped. A nil Dispatcher is valid and discards everything, which is
// how the webhook stays environment-gated.
type Dispatcher struct {
	url      string
	client   *http.Client
	logger   *slog.Logger
	messages chan message
	wg       sync.WaitGroup
}

// NewDispatcher creates a dispatcher and starts its background loop.
// An empty URL returns nil, disabling notifications.
func NewDispatcher(url string, logger *slog.Logger) *Dispatcher {
	if url == "" {
		return nil
	}
	d := &Dispatcher{
		url:      url,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
		messages: make(chan message, queueSize),
	}
	d.wg.Add(1)
	go d.loop()
	return d
}

// Close drains the queue and stops the background loop.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	close(d.messages)
	d.wg.Wait()
}

func (d *Dispatcher) enqueue(msg message) {
	if d == nil {
		return
	}
	select {
	case d.messages <- msg:
	default:
		d.logger.Warn("notify: queue full, dropping message")
	}
}

func (d *Dispatcher) loop() {
	defer d.wg.Done()
	for msg := range d.messages {
		d.send(msg)
	}
}

// send POSTs the message with one retry on 5xx responses.
func (d *Dispatcher) send(msg message) {
	body, err := json.Marshal(msg)
	if err != nil {
		d.logger.Warn("notify: marshal failed", "error", err)
		return
	}

	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			time.Sleep(1 * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, d.url, bytes.NewReader(body))
		if err != nil {
			d.logger.Warn("notify: request creation failed", "error", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := d.client.Do(req)
		if err != nil {
			d.logger.Warn("notify: request failed", "error", err, "attempt", attempt+1)
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return
		}
		if resp.StatusCode >= 500 {
			d.logger.Warn("notify: server error", "status", resp.StatusCode, "attempt", attempt+1)
			continue
		}
		d.logger.Warn("notify: client error", "status", resp.StatusCode)
		return
	}
}
