package mapping

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Call records one request handled by a Transport.
type Call struct {
	ID          string
	Time        time.Time
	Method      string
	URL         string
	Header      http.Header
	Body        []byte
	Origin      Origin
	Index       int
	StatusCode  int
	Passthrough bool
	// Err is set when dispatch failed; StatusCode is then zero.
	Err error
}

// Journal is an append-only log of calls.
type Journal struct {
	mu    sync.Mutex
	calls []Call
}

func (j *Journal) record(req *http.Request, body []byte, res *Resolution, err error) {
	c := Call{
		ID:     uuid.NewString(),
		Time:   time.Now(),
		Method: req.Method,
		Header: req.Header.Clone(),
		Body:   body,
		Origin: OriginNone,
		Index:  -1,
		Err:    err,
	}
	if req.URL != nil {
		c.URL = req.URL.String()
	}
	if res != nil {
		c.Origin = res.Origin
		c.Index = res.Index
		c.Passthrough = res.Passthrough
		if res.Response != nil {
			c.StatusCode = res.Response.StatusCode
		}
	}

	j.mu.Lock()
	j.calls = append(j.calls, c)
	j.mu.Unlock()
}

// Calls returns a copy of the recorded calls, oldest first.
func (j *Journal) Calls() []Call {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Call, len(j.calls))
	copy(out, j.calls)
	return out
}

// Len returns the number of recorded calls.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.calls)
}

// Reset discards all recorded calls.
func (j *Journal) Reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = nil
}
