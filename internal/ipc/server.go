package ipc

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"
)

// WindowReporter is the slice of the window manager the IPC server
// reads. Implemented by *xwm.Manager.
type WindowReporter interface {
	Snapshot() []WindowData
}

// Server handles IPC requests from clients.
type Server struct {
	socketPath string
	listener   net.Listener
	reporter   WindowReporter
	display    string
	startTime  time.Time
	logger     *slog.Logger

	shutdownMu   sync.Mutex
	shuttingDown bool
}

// NewServer creates an IPC server answering over the given socket.
func NewServer(socketPath string, reporter WindowReporter, display string, logger *slog.Logger) *Server {
	// Remove a stale socket from a previous run.
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		reporter:   reporter,
		display:    display,
		startTime:  time.Now(),
		logger:     logger,
	}
}

// Start begins listening for IPC connections.
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("ipc server listening", "socket", s.socketPath)

	go s.acceptLoop()
	return nil
}

// Stop closes the listener and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			down := s.shuttingDown
			s.shutdownMu.Unlock()
			if down {
				return
			}
			s.logger.Warn("ipc accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// One JSON request per line.
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("ipc read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.send(conn, NewErrorResponse(fmt.Sprintf("invalid request: %v", err)))
		return
	}

	s.send(conn, s.handleCommand(req))
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.respond(StatusData{
			DaemonRunning: true,
			Display:       s.display,
			WindowCount:   len(s.reporter.Snapshot()),
			UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		})
	case CommandGetWindows:
		windows := s.reporter.Snapshot()
		if windows == nil {
			windows = []WindowData{}
		}
		return s.respond(WindowsData{Windows: windows})
	default:
		return NewErrorResponse(fmt.Sprintf("unknown command %q", req.Command))
	}
}

func (s *Server) respond(data interface{}) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) send(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		s.logger.Warn("ipc marshal error", "error", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.logger.Warn("ipc write error", "error", err)
	}
}
