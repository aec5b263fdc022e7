package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	statusEndpoint = "/status"
	taskEndpoint   = "/task"

	// Bounds the drain of unread request bytes before close, so the
	// client sees the response instead of a reset.
	lingerTimeout = 100 * time.Millisecond
	lingerBytes   = 256 << 10
)

func contentLength(h HTTPHeader) (int, error) {
	cls := h.Get("content-length")
	if cls == "" {
		return 0, fmt.Errorf("no Content-Length")
	}
	cl, err := strconv.Atoi(cls)
	if err != nil || cl < 0 {
		return 0, fmt.Errorf("invalid Content-Length: %q", cls)
	}
	return cl, nil
}

// Worker serves a single connection: one request, one response (or none),
// then close.
type Worker struct {
	id     string
	conn   net.Conn
	reader *bufio.Reader
	req    *Request
	res    *Response
	wrote  bool
	closed bool
}

type stateFunc func(*Worker) stateFunc

func NewWorker() *Worker {
	return &Worker{id: uuid.NewString()[:8]}
}

// Start takes ownership of conn and returns once it is closed.
func (w *Worker) Start(conn net.Conn) {
	w.conn = conn
	w.reader = bufio.NewReader(conn)

	for state := waitForRequest; state != nil; {
		state = w.step(state)
	}
}

// step runs one state. A panic turns into a 500 when nothing has been
// written yet, otherwise the connection is just closed.
func (w *Worker) step(state stateFunc) (next stateFunc) {
	defer func() {
		if r := recover(); r != nil {
			w.logf("E", "panic: %v", r)
			switch {
			case w.closed:
				next = nil
			case w.wrote:
				next = finishWorker
			default:
				w.res = ResponseInternalError
				next = sendResponse
			}
		}
	}()
	return state(w)
}

func (w *Worker) logf(level, format string, args ...interface{}) {
	log.Printf("%s [%s] %s", level, w.id, fmt.Sprintf(format, args...))
}

func (w *Worker) requestReceived(req *Request) stateFunc {
	w.req = req
	w.logf("I", "%s -> %s %s", w.conn.RemoteAddr(), req.Method, req.URI)

	switch req.Path() {
	case statusEndpoint:
		return handleStatus
	case taskEndpoint:
		return handleTask
	}
	w.res = ResponseNotFound
	return sendResponse
}

// readBody reads the whole request body. A request with neither
// Transfer-Encoding nor Content-Length has no body.
func (w *Worker) readBody() ([]byte, error) {
	buf := new(bytes.Buffer)
	if te := w.req.Headers.Get("transfer-encoding"); te != "" {
		if !strings.EqualFold(te, "chunked") {
			return nil, fmt.Errorf("unsupported Transfer-Encoding: %q", te)
		}
		if _, err := io.Copy(buf, NewChunkedReader(w.reader)); err != nil {
			return nil, fmt.Errorf("read chunked body: %w", err)
		}
		return buf.Bytes(), nil
	}
	if !w.req.Headers.Has("content-length") {
		return nil, nil
	}
	cl, err := contentLength(w.req.Headers)
	if err != nil {
		return nil, err
	}
	if err := w.transferBody(NewFixedLengthBodyReader(w.reader, cl), buf); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *Worker) transferBody(reader BodyReader, writer io.Writer) error {
	reader.Start()
	for {
		select {
		case b, ok := <-reader.BodyReceived():
			if !ok {
				return nil
			}
			if _, err := writer.Write(b); err != nil {
				reader.Cancel()
				return err
			}
		case err := <-reader.ErrorOccurred():
			return err
		}
	}
}

// respondOK queues a 200 with body and any extra headers.
func (w *Worker) respondOK(body []byte, headers HTTPHeader) stateFunc {
	w.res = NewResponse(200, body)
	for k, vs := range headers {
		for _, v := range vs {
			w.res.Headers.Add(k, v)
		}
	}
	return sendResponse
}

// state funcs

func waitForRequest(w *Worker) stateFunc {
	r := NewRequestReader(w.reader)
	r.Start()
	select {
	case req := <-r.RequestReceived():
		return w.requestReceived(req)
	case err := <-r.ErrorOccurred():
		if errors.Is(err, io.EOF) {
			w.logf("W", "client closed before sending a request")
			return finishWorker
		}
		w.logf("E", "%v", err)
		w.res = ResponseBadRequest
		return sendResponse
	}
}

// sendResponse writes w.res in full and flushes it. The connection is
// closed by the next state.
func sendResponse(w *Worker) stateFunc {
	w.wrote = true
	if w.res.Status >= 400 {
		w.logf("E", "sending error response: %d %s", w.res.Status, w.res.Phrase)
	}
	bw := bufio.NewWriter(w.conn)
	if err := WriteResponse(bw, w.res); err != nil {
		w.logf("E", "write response: %v", err)
		return finishWorker
	}
	if err := bw.Flush(); err != nil {
		w.logf("E", "flush response: %v", err)
	}
	return finishWorker
}

// closeSilently ends the exchange without writing a single byte.
func closeSilently(w *Worker) stateFunc {
	w.logf("W", "%s %s rejected, closing without response", w.req.Method, w.req.URI)
	return finishWorker
}

func finishWorker(w *Worker) stateFunc {
	if w.closed {
		return nil
	}
	w.closed = true
	if cw, ok := w.conn.(interface{ CloseWrite() error }); ok {
		if err := cw.CloseWrite(); err == nil {
			w.conn.SetReadDeadline(time.Now().Add(lingerTimeout))
			io.CopyN(io.Discard, w.reader, lingerBytes)
		}
	}
	w.conn.Close()
	w.logf("I", "worker finished")
	return nil
}
