package main

import (
	"fmt"
	"strings"
	"time"
)

var (
	statusBody   = []byte("Good Good")
	testModeBody = []byte("123\n")
)

// handleStatus answers GET with a fixed liveness body. Any other method is
// dropped: the connection closes with no status line at all. /task answers
// 405 instead; both behaviours are relied on by callers.
func handleStatus(w *Worker) stateFunc {
	if !strings.EqualFold(w.req.Method, "GET") {
		return closeSilently
	}
	return w.respondOK(statusBody, nil)
}

func handleTask(w *Worker) stateFunc {
	if !strings.EqualFold(w.req.Method, "POST") {
		w.res = ResponseMethodNotAllowed
		return sendResponse
	}

	headers := w.req.Headers
	// Test mode never touches the body.
	if headers.Has("x-test") && strings.EqualFold(headers.Get("x-test"), "true") {
		return w.respondOK(testModeBody, nil)
	}

	debug := false
	if headers.Has("x-debug") {
		v := strings.TrimSpace(headers.Get("x-debug"))
		w.logf("I", "X-Debug header value: %s", v)
		debug = strings.EqualFold(v, "true")
	}

	start := time.Now()
	body, err := w.readBody()
	if err != nil {
		w.logf("E", "%v", err)
		w.res = ResponseBadRequest
		return sendResponse
	}
	result, err := CalculateResponse(body)
	elapsed := time.Since(start)
	if err != nil {
		w.logf("E", "%v", err)
		w.res = NewResponse(400, []byte(err.Error()+"\n"))
		return sendResponse
	}

	var extra HTTPHeader
	if debug {
		extra = HTTPHeader{}
		extra.Set("X-Debug-Info", fmt.Sprintf("total time consumed %d ns", elapsed.Nanoseconds()))
	}
	return w.respondOK(result, extra)
}
