package main

import "strings"

// Keys are lower-cased header names. Values keep arrival order.
type HTTPHeader map[string][]string

func (h HTTPHeader) Add(name, value string) {
	k := strings.ToLower(name)
	h[k] = append(h[k], value)
}

func (h HTTPHeader) Set(name, value string) {
	h[strings.ToLower(name)] = []string{value}
}

// Get returns the first value for name, or "".
func (h HTTPHeader) Get(name string) string {
	vs := h[strings.ToLower(name)]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

func (h HTTPHeader) Has(name string) bool {
	_, ok := h[strings.ToLower(name)]
	return ok
}

type Request struct {
	Method  string
	URI     string
	Version string
	Headers HTTPHeader
}

// Path is the URI without its query string.
func (r *Request) Path() string {
	if i := strings.IndexByte(r.URI, '?'); i >= 0 {
		return r.URI[:i]
	}
	return r.URI
}

type Response struct {
	Version string
	Status  int
	Phrase  string
	Headers HTTPHeader
	Body    []byte
}

var statusPhrases = map[int]string{
	200: "OK",
	400: "Bad Request",
	404: "Not Found",
	405: "Method Not Allowed",
	500: "Internal Server Error",
}

func NewResponse(status int, body []byte) *Response {
	return &Response{
		Version: "HTTP/1.1",
		Status:  status,
		Phrase:  statusPhrases[status],
		Headers: HTTPHeader{},
		Body:    body,
	}
}

var ResponseInternalError = &Response{
	Version: "HTTP/1.1",
	Status:  500,
	Phrase:  "Internal Server Error",
}

var ResponseBadRequest = &Response{
	Version: "HTTP/1.1",
	Status:  400,
	Phrase:  "Bad Request",
}

var ResponseNotFound = &Response{
	Version: "HTTP/1.1",
	Status:  404,
	Phrase:  "Not Found",
}

var ResponseMethodNotAllowed = &Response{
	Version: "HTTP/1.1",
	Status:  405,
	Phrase:  "Method Not Allowed",
}
