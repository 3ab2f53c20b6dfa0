// Package server implements the TCP frontend: accept loop, one
// goroutine per connection, newline-framed request/reply over the
// line protocol (spec.md §5–§6).
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"

	"github.com/flashkv/flashkv/internal/engine"
	"github.com/flashkv/flashkv/internal/protocol"
)

// Config holds server configuration.
type Config struct {
	MaxClients int
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{MaxClients: 10000}
}

// Server is the TCP frontend around a KeyspaceDispatcher.
type Server struct {
	addr       string
	dispatcher *engine.Dispatcher
	config     Config

	mu        sync.Mutex
	listener  net.Listener
	closed    bool
	connCount int
	wg        sync.WaitGroup
}

// New creates a new Server with default configuration.
func New(addr string, d *engine.Dispatcher) *Server {
	return NewWithConfig(addr, d, DefaultConfig())
}

// NewWithConfig creates a new Server with the specified configuration.
func NewWithConfig(addr string, d *engine.Dispatcher, cfg Config) *Server {
	return &Server{addr: addr, dispatcher: d, config: cfg}
}

// Start listens on addr and accepts connections until ctx is
// cancelled or Close is called. It blocks.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	log.Printf("flashkv server listening on %s", s.addr)

	go func() {
		<-ctx.Done()
		s.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return nil
			}
			log.Printf("server: accept: %v", err)
			continue
		}

		s.mu.Lock()
		n := s.connCount
		s.mu.Unlock()
		if s.config.MaxClients > 0 && n >= s.config.MaxClients {
			conn.Close()
			log.Printf("server: max clients reached, rejecting %s", conn.RemoteAddr())
			continue
		}

		connID := protocol.NewConnID()
		s.mu.Lock()
		s.connCount++
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer func() {
				s.mu.Lock()
				s.connCount--
				s.mu.Unlock()
			}()
			s.handleConnection(ctx, connID, conn)
		}()
	}
}

// Close gracefully shuts down the server, waiting for in-flight
// connections to finish.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	listener := s.listener
	s.mu.Unlock()

	var err error
	if listener != nil {
		err = listener.Close()
	}
	s.wg.Wait()
	return err
}

// handleConnection processes one connection's request lines strictly
// in arrival order, serializing each through Dispatch and writing the
// reply before reading the next line (spec.md §5 "Ordering").
func (s *Server) handleConnection(ctx context.Context, connID protocol.ConnID, conn net.Conn) {
	defer conn.Close()

	reader := protocol.NewReader(conn)
	writer := protocol.NewWriter(conn)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := reader.ReadLine()
		if err != nil {
			if err != io.EOF && !errors.Is(err, net.ErrClosed) {
				log.Printf("server: connection %s read: %v", connID, err)
			}
			return
		}

		reply, ok := s.dispatcher.Dispatch(line)
		if !ok {
			continue
		}
		if err := writer.WriteLine(reply); err != nil {
			log.Printf("server: connection %s write: %v", connID, err)
			return
		}
	}
}
