package core

import (
	"errors"
	"net"
	"syscall"
	"time"

	"github.com/hasirciogluhq/colorserver/cmd/color/internal/logger"
)

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// Server is the generic TCP exchange server.
// It depends ONLY on interfaces, not concrete implementations.
type Server struct {
	Listener          net.Listener
	ConnectionHandler ConnectionHandler

	// Workers bounds the number of connections handled at once.
	// Zero starts one goroutine per accepted connection.
	Workers int
}

// Serve accepts connections until the listening socket becomes unusable.
// The returned error is always of kind KindListenerFatal.
func (s *Server) Serve() error {
	var conns chan net.Conn
	if s.Workers > 0 {
		conns = make(chan net.Conn)
		defer close(conns)
		for i := 0; i < s.Workers; i++ {
			go s.worker(conns)
		}
	}

	var delay time.Duration
	for {
		conn, err := s.Listener.Accept()
		if err != nil {
			if isFatalAcceptError(err) {
				return NewError(KindListenerFatal, "accept", err)
			}
			delay = nextAcceptDelay(delay)
			logger.Warn("Accept failed, retrying", "error", err, "retry_in", delay)
			time.Sleep(delay)
			continue
		}
		delay = 0

		if conns != nil {
			// Blocks while every worker is busy; pending clients wait in the OS backlog.
			conns <- conn
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) worker(conns <-chan net.Conn) {
	for conn := range conns {
		s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Connection handler panicked", "remote_addr", conn.RemoteAddr(), "panic", r)
			_ = conn.Close()
		}
	}()
	// Delegate the entire lifecycle to the handler
	s.ConnectionHandler.HandleConnection(conn)
}

func isFatalAcceptError(err error) bool {
	return errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.EBADF) ||
		errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.ENOTSOCK)
}

func nextAcceptDelay(d time.Duration) time.Duration {
	if d == 0 {
		return minAcceptDelay
	}
	d *= 2
	if d > maxAcceptDelay {
		d = maxAcceptDelay
	}
	return d
}
