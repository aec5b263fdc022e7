package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"unicode"
)

func capitalizeHeader(h string) string {
	ret := []rune(h)
	cap := true
	for i, r := range ret {
		if cap && unicode.IsLetter(r) {
			ret[i] = unicode.ToUpper(r)
			cap = false
		}
		if r == '-' {
			cap = true
		}
	}
	return string(ret)
}

// writeHeaders writes h sorted by name, one line per value, skipping names
// listed in skip.
func writeHeaders(w io.Writer, h HTTPHeader, skip ...string) error {
	keys := make([]string, 0, len(h))
outer:
	for k := range h {
		for _, s := range skip {
			if k == s {
				continue outer
			}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range h[k] {
			if _, err := fmt.Fprintf(w, "%s: %s\r\n", capitalizeHeader(k), v); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteRequest writes req followed by body. It is the client side of the
// exchange, used to drive the server in tests. A non-nil body gets a
// Content-Length header unless req already asks for chunked encoding.
func WriteRequest(w io.Writer, req *Request, body []byte) error {
	if _, err := fmt.Fprintf(w, "%s %s %s\r\n", req.Method, req.URI, req.Version); err != nil {
		return err
	}
	if err := writeHeaders(w, req.Headers); err != nil {
		return err
	}
	if body != nil && req.Headers.Get("transfer-encoding") == "" && !req.Headers.Has("content-length") {
		if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n", len(body)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

// WriteResponse writes res to w. Content-Length always matches len(res.Body)
// and is written before any body bytes. The connection never outlives one
// response, so Connection: close is always sent.
func WriteResponse(w io.Writer, res *Response) error {
	if _, err := fmt.Fprintf(w, "%s %d %s\r\n", res.Version, res.Status, res.Phrase); err != nil {
		return err
	}
	if err := writeHeaders(w, res.Headers, "content-length", "connection"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "Content-Length: "+strconv.Itoa(len(res.Body))+"\r\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "Connection: close\r\n\r\n"); err != nil {
		return err
	}
	_, err := w.Write(res.Body)
	return err
}
