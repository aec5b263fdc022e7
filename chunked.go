package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ChunkedReader decodes a "Transfer-Encoding: chunked" body.
type ChunkedReader struct {
	r        *bufio.Reader
	chunkLen int // -1 means the beginning of the next chunk
	eof      bool
}

func NewChunkedReader(r io.Reader) *ChunkedReader {
	return &ChunkedReader{asBufioReader(r), -1, false}
}

func (r *ChunkedReader) readLine() (string, error) {
	b, err := r.r.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	if !strings.HasSuffix(b, "\r\n") {
		return "", fmt.Errorf("failed to read CRLF")
	}
	return b[:len(b)-2], nil
}

func (r *ChunkedReader) readChunkLength() error {
	line, err := r.readLine()
	if err != nil {
		return fmt.Errorf("failed to read chunk length: %w", err)
	}
	// chunk extensions are ignored
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" || len(line) > 8 {
		return fmt.Errorf("invalid chunk length: %q", line)
	}

	length := 0
	for _, v := range []byte(line) {
		switch {
		case v >= '0' && v <= '9':
			length = length*16 + int(v-'0')
		case v >= 'a' && v <= 'f':
			length = length*16 + int(v-'a') + 10
		case v >= 'A' && v <= 'F':
			length = length*16 + int(v-'A') + 10
		default:
			return fmt.Errorf("invalid chunk length: %q", line)
		}
	}
	r.chunkLen = length
	return nil
}

func (r *ChunkedReader) readCRLF() error {
	line, err := r.readLine()
	if err != nil {
		return err
	}
	if line != "" {
		return fmt.Errorf("failed to read CRLF")
	}
	return nil
}

// skipTrailers consumes trailer fields up to the terminating empty line.
func (r *ChunkedReader) skipTrailers() error {
	for {
		line, err := r.readLine()
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
	}
}

func (r *ChunkedReader) Read(b []byte) (int, error) {
	if r.eof {
		return 0, io.EOF
	}
	if r.chunkLen < 0 {
		if err := r.readChunkLength(); err != nil {
			return 0, err
		}
	}
	if r.chunkLen == 0 {
		if err := r.skipTrailers(); err != nil {
			return 0, err
		}
		r.eof = true
		return 0, io.EOF
	}

	n := min(r.chunkLen, len(b))
	m, err := r.r.Read(b[:n])
	r.chunkLen -= m
	if err == io.EOF {
		return m, io.ErrUnexpectedEOF
	}
	if r.chunkLen == 0 {
		r.chunkLen = -1
		err = r.readCRLF()
	}
	if err != nil {
		return m, err
	}

	return m, nil
}
