package main

import (
	"bytes"
	"testing"
)

func TestCapitalizeHeader(t *testing.T) {
	ExpectEqual(t, "X-Debug-Info", capitalizeHeader("x-debug-info"))
	ExpectEqual(t, "Content-Length", capitalizeHeader("content-length"))
	ExpectEqual(t, "Host", capitalizeHeader("Host"))
}

func TestWriteRequest(t *testing.T) {
	req := &Request{
		Method:  "GET",
		URI:     "/",
		Version: "HTTP/1.1",
		Headers: HTTPHeader{
			"host": {"localhost"},
		},
	}
	expect := "GET / HTTP/1.1\r\nHost: localhost\r\n\r\n"
	w := new(bytes.Buffer)
	if err := WriteRequest(w, req, nil); err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, expect, w.String())
}

func TestWriteRequestWithBody(t *testing.T) {
	req := &Request{
		Method:  "POST",
		URI:     "/task",
		Version: "HTTP/1.1",
		Headers: HTTPHeader{
			"x-debug": {"true"},
			"host":    {"localhost"},
		},
	}
	expect := "POST /task HTTP/1.1\r\nHost: localhost\r\nX-Debug: true\r\nContent-Length: 3\r\n\r\n5,6"
	w := new(bytes.Buffer)
	if err := WriteRequest(w, req, []byte("5,6")); err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, expect, w.String())
}

func TestWriteResponse(t *testing.T) {
	res := &Response{
		Version: "HTTP/1.1",
		Status:  200,
		Phrase:  "OK",
		Headers: HTTPHeader{
			"x-debug-info": {"total time consumed 10 ns"},
			"host":         {"localhost"},
			// always recomputed from the body
			"content-length": {"999"},
		},
		Body: []byte("Good Good"),
	}
	expect := "HTTP/1.1 200 OK\r\n" +
		"Host: localhost\r\n" +
		"X-Debug-Info: total time consumed 10 ns\r\n" +
		"Content-Length: 9\r\n" +
		"Connection: close\r\n" +
		"\r\n" +
		"Good Good"
	w := new(bytes.Buffer)
	if err := WriteResponse(w, res); err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, expect, w.String())
}

func TestWriteResponseNoBody(t *testing.T) {
	w := new(bytes.Buffer)
	if err := WriteResponse(w, ResponseMethodNotAllowed); err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, "HTTP/1.1 405 Method Not Allowed\r\nContent-Length: 0\r\nConnection: close\r\n\r\n", w.String())
}
