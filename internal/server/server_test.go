package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashkv/flashkv/internal/engine"
	"github.com/flashkv/flashkv/internal/protocol"
)

func startTestServer(t *testing.T) string {
	d := engine.NewDispatcher()
	s := New("127.0.0.1:0", d)

	listener, err := net.Listen("tcp", s.addr)
	require.NoError(t, err)
	s.listener = listener

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go s.handleConnection(ctx, protocol.NewConnID(), conn)
		}
	}()

	t.Cleanup(func() {
		cancel()
		listener.Close()
	})

	return listener.Addr().String()
}

func sendLine(t *testing.T, conn net.Conn, line string) string {
	t.Helper()
	conn.SetDeadline(time.Now().Add(2 * time.Second))

	_, err := conn.Write([]byte(line + "\n"))
	require.NoError(t, err)

	reader := protocol.NewReader(conn)
	reply, err := reader.ReadLine()
	require.NoError(t, err)
	return reply
}

func TestServer_SetGetOverTCP(t *testing.T) {
	addr := startTestServer(t)
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, "OK", sendLine(t, conn, "SET foo bar"))
	assert.Equal(t, `"bar"`, sendLine(t, conn, "GET foo"))
	assert.Equal(t, "true", sendLine(t, conn, "EXISTS foo"))
}

func TestServer_RequestsFromOneConnectionProcessInOrder(t *testing.T) {
	addr := startTestServer(t)
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	defer conn.Close()

	require.Equal(t, "OK", sendLine(t, conn, "RPUSH l a"))
	require.Equal(t, "OK", sendLine(t, conn, "RPUSH l b"))
	require.Equal(t, "OK", sendLine(t, conn, "RPUSH l c"))
	assert.Equal(t, "1) a\n2) b\n3) c", sendLine(t, conn, "LRANGE l 0 -1"))
}

func TestServer_MultiLineReplyIsOneRecord(t *testing.T) {
	addr := startTestServer(t)
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	require.NoError(t, err)
	defer conn.Close()

	require.Equal(t, "OK", sendLine(t, conn, "SADD s x"))
	require.Equal(t, "OK", sendLine(t, conn, "SADD s y"))

	reader := protocol.NewReader(conn)
	conn.SetDeadline(time.Now().Add(2 * time.Second))
	_, err = conn.Write([]byte("SMEMBERS s\n"))
	require.NoError(t, err)
	reply, err := reader.ReadLine()
	require.NoError(t, err)
	assert.Contains(t, reply, "1) ")
	assert.Contains(t, reply, "2) ")
}

func TestServer_RejectsBeyondMaxClients(t *testing.T) {
	d := engine.NewDispatcher()
	s := NewWithConfig("127.0.0.1:0", d, Config{MaxClients: 1})
	listener, err := net.Listen("tcp", s.addr)
	require.NoError(t, err)
	s.listener = listener
	s.connCount = 1 // simulate one connection already accepted

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		n := s.connCount
		s.mu.Unlock()
		if s.config.MaxClients > 0 && n >= s.config.MaxClients {
			conn.Close()
			return
		}
		go s.handleConnection(ctx, protocol.NewConnID(), conn)
	}()

	conn, err := net.DialTimeout("tcp", listener.Addr().String(), 2*time.Second)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1)
	_, err = conn.Read(buf)
	assert.Error(t, err) // connection closed, not served
}
