package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type baseReader struct {
	r     *bufio.Reader
	errCh chan error
}

func asBufioReader(r io.Reader) *bufio.Reader {
	if casted, ok := r.(*bufio.Reader); ok {
		return casted
	}
	return bufio.NewReader(r)
}

func (r *baseReader) ErrorOccurred() <-chan error {
	return r.errCh
}

// similar to readLineSlice() in net/textproto/reader.go
func (r *baseReader) readLine() (string, error) {
	var line []byte
	for {
		l, more, err := r.r.ReadLine()
		if err != nil {
			return "", err
		}
		if line == nil && !more {
			return string(l), nil
		}
		line = append(line, l...)
		if !more {
			break
		}
	}
	return string(line), nil
}

func (r *baseReader) readHeaders() (HTTPHeader, error) {
	headers := HTTPHeader{}
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, fmt.Errorf("failed to read headers: %w", err)
		}
		if len(line) == 0 {
			break
		}
		fs := strings.SplitN(line, ":", 2)
		if len(fs) != 2 || strings.TrimSpace(fs[0]) == "" {
			return nil, fmt.Errorf("invalid header format: %q", line)
		}
		headers.Add(strings.TrimSpace(fs[0]), strings.TrimSpace(fs[1]))
	}
	return headers, nil
}

// RequestReader reads HTTP/1.1 request header
type RequestReader struct {
	baseReader
	req   *Request
	reqCh chan *Request
}

func NewRequestReader(r io.Reader) *RequestReader {
	return &RequestReader{
		baseReader{asBufioReader(r), make(chan error, 1)},
		&Request{},
		make(chan *Request, 1),
	}
}

func (r *RequestReader) Start() {
	go func() {
		if err := r.readRequestLine(); err != nil {
			r.errCh <- err
			return
		}
		if err := r.readRequestHeaders(); err != nil {
			r.errCh <- err
			return
		}
		r.reqCh <- r.req
	}()
}

func (r *RequestReader) readRequestLine() error {
	rl, err := r.readLine()
	if err != nil {
		return fmt.Errorf("failed to read request line: %w", err)
	}
	fields := strings.Split(rl, " ")
	if len(fields) != 3 || fields[0] == "" || fields[1] == "" {
		return fmt.Errorf("invalid request line: %q", rl)
	}
	r.req.Method = fields[0]
	r.req.URI = fields[1]
	r.req.Version = fields[2]
	return nil
}

func (r *RequestReader) readRequestHeaders() error {
	headers, err := r.readHeaders()
	if err == nil {
		r.req.Headers = headers
	}
	return err
}

func (r *RequestReader) RequestReceived() <-chan *Request {
	return r.reqCh
}

// ResponseReader reads HTTP response headers. The server never reads
// responses; this is for clients of the server, such as its tests.
type ResponseReader struct {
	baseReader
	res   *Response
	resCh chan *Response
}

func NewResponseReader(r io.Reader) *ResponseReader {
	return &ResponseReader{
		baseReader{asBufioReader(r), make(chan error, 1)},
		&Response{},
		make(chan *Response, 1),
	}
}

func (r *ResponseReader) Start() {
	go func() {
		if err := r.readStatusLine(); err != nil {
			r.errCh <- err
			return
		}
		if err := r.readResponseHeaders(); err != nil {
			r.errCh <- err
			return
		}
		r.resCh <- r.res
	}()
}

func parseStatusCode(ss string) (int, error) {
	status, err := strconv.Atoi(ss)
	first := status / 100
	if err != nil || (first < 1 || first > 5) {
		return 0, fmt.Errorf("invalid status code: %s", ss)
	}
	return status, nil
}

func (r *ResponseReader) readStatusLine() error {
	sl, err := r.readLine()
	if err != nil {
		return fmt.Errorf("failed to read status line: %w", err)
	}
	fields := strings.Split(sl, " ")
	if len(fields) < 3 {
		return fmt.Errorf("invalid status line: %s", sl)
	}
	r.res.Version = fields[0]
	r.res.Status, err = parseStatusCode(fields[1])
	if err != nil {
		return err
	}
	r.res.Phrase = strings.Join(fields[2:], " ")
	return nil
}

func (r *ResponseReader) readResponseHeaders() error {
	headers, err := r.readHeaders()
	if err == nil {
		r.res.Headers = headers
	}
	return err
}

func (r *ResponseReader) ResponseReceived() <-chan *Response {
	return r.resCh
}

// BodyReader reads body of request or response
type BodyReader interface {
	Start()
	Cancel()
	BodyReceived() <-chan []byte
	ErrorOccurred() <-chan error
}

// FixedLengthBodyReader streams exactly contentLength bytes. BodyReceived is
// closed once they have all been delivered.
type FixedLengthBodyReader struct {
	r             io.Reader
	contentLength int
	bodyCh        chan []byte
	errCh         chan error
	done          chan struct{}
}

func NewFixedLengthBodyReader(r io.Reader, cl int) *FixedLengthBodyReader {
	return &FixedLengthBodyReader{
		r, cl, make(chan []byte), make(chan error, 1), make(chan struct{})}
}

func (r *FixedLengthBodyReader) Start() {
	go func() {
		buf := make([]byte, 4096)
		for total := 0; total < r.contentLength; {
			m := r.contentLength - total
			if m > len(buf) {
				m = len(buf)
			}
			n, err := r.r.Read(buf[:m])
			if n > 0 {
				tmp := make([]byte, n)
				copy(tmp, buf[:n])
				select {
				case r.bodyCh <- tmp:
				case <-r.done:
					return
				}
				total += n
			}
			if err == io.EOF && total < r.contentLength {
				r.errCh <- io.ErrUnexpectedEOF
				return
			}
			if err != nil && err != io.EOF {
				r.errCh <- err
				return
			}
		}
		close(r.bodyCh)
	}()
}

func (r *FixedLengthBodyReader) Cancel() {
	close(r.done)
}

func (r *FixedLengthBodyReader) BodyReceived() <-chan []byte {
	return r.bodyCh
}

func (r *FixedLengthBodyReader) ErrorOccurred() <-chan error {
	return r.errCh
}
