package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func readChunkedAsString(s string) (string, error) {
	r := NewChunkedReader(strings.NewReader(s))
	buf := new(bytes.Buffer)
	_, err := io.Copy(buf, r)
	return buf.String(), err
}

func TestChunkedReader(t *testing.T) {
	actual, err := readChunkedAsString("6\r\nFooBar\r\n0\r\n\r\n")
	if err != nil {
		t.Error(err)
	}
	ExpectEqual(t, "FooBar", actual)
	actual, err = readChunkedAsString(
		"d\r\nThisIsChunked\r\n18\r\nAllYourBaseAreBelongToUs\r\n0\r\n\r\n")
	if err != nil {
		t.Error(err)
	}
	ExpectEqual(t, "ThisIsChunkedAllYourBaseAreBelongToUs", actual)
}

func TestChunkedReaderUpperCaseAndExtensions(t *testing.T) {
	payload := strings.Repeat("7,", 5) + "1"
	actual, err := readChunkedAsString("B;name=value\r\n" + payload + "\r\n0\r\nX-Trailer: yes\r\n\r\n")
	if err != nil {
		t.Error(err)
	}
	ExpectEqual(t, payload, actual)
}

func TestChunkedReaderErrors(t *testing.T) {
	for _, in := range []string{
		"zz\r\nFooBar\r\n0\r\n\r\n",
		"6\nFooBar\r\n0\r\n\r\n",
		"6\r\nFooBarBaz\r\n0\r\n\r\n",
		"6\r\nFoo",
		"6\r\nFooBar\r\n",
	} {
		if _, err := readChunkedAsString(in); err == nil {
			t.Errorf("%q is invalid, but no error reported", in)
		}
	}
}
