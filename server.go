package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultPort    = 8080
	DefaultWorkers = 5
)

// ErrServerClosed is returned by Serve once the listener has been closed.
var ErrServerClosed = errors.New("server closed")

type Config struct {
	// Port 0 binds an ephemeral port.
	Port int
	// Workers is the number of connections served at once. Zero means
	// DefaultWorkers.
	Workers int
}

// Server owns one listener and a fixed pool of workers for its lifetime.
type Server struct {
	cfg   Config
	ln    net.Listener
	conns chan net.Conn
}

func NewServer(cfg Config) *Server {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	return &Server{cfg: cfg, conns: make(chan net.Conn)}
}

// Listen binds 0.0.0.0:<port>.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen on port %d: %w", s.cfg.Port, err)
	}
	s.ln = ln
	return nil
}

func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve accepts connections until ctx is done or Close is called. Each
// accepted connection is handed to exactly one of the pool's workers; when
// all of them are busy the accept loop waits.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		return errors.New("server is not listening")
	}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		s.ln.Close()
		return nil
	})
	g.Go(func() error {
		defer close(s.conns)
		return s.acceptLoop(ctx)
	})
	for i := 0; i < s.cfg.Workers; i++ {
		g.Go(func() error {
			for conn := range s.conns {
				NewWorker().Start(conn)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	log.Printf("I listening on %s with %d workers", s.Addr(), s.cfg.Workers)
	return s.Serve(ctx)
}

func (s *Server) Close() error {
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return ErrServerClosed
			}
			log.Printf("W accept error: %v", err)
			time.Sleep(10 * time.Millisecond)
			continue
		}
		select {
		case s.conns <- conn:
		case <-ctx.Done():
			conn.Close()
			return ErrServerClosed
		}
	}
}
