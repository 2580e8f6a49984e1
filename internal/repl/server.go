package repl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"strings"

	"github.com/google/uuid"
)

// Request is one line of the editor protocol. Exactly one of Code and
// File is meaningful, depending on Cmd. Ids are kept raw so numeric and
// string forms both round-trip unchanged.
type Request struct {
	ID   json.RawMessage `json:"id,omitempty"`
	Cmd  string          `json:"cmd"`
	Code string          `json:"code,omitempty"`
	File string          `json:"file,omitempty"`
}

// Response mirrors a request by ID.
type Response struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Status string          `json:"status"`
	Output string          `json:"output,omitempty"`
	Errors []ErrorInfo     `json:"errors,omitempty"`
}

// ErrorInfo locates one problem in a source file. Protocol-level errors
// carry only Message.
type ErrorInfo struct {
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func protocolError(msg string) []ErrorInfo {
	return []ErrorInfo{{Message: msg}}
}

// Server accepts editor connections and serves the line-JSON protocol:
// one request per line in, one response per line out.
type Server struct {
	interp   *Interp
	listener net.Listener
}

func NewServer(interp *Interp) *Server {
	return &Server{interp: interp}
}

// Listen binds the address and returns the bound address (useful with
// port 0).
func (s *Server) Listen(addr string) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = listener
	return listener.Addr().String(), nil
}

// Serve accepts connections until the listener closes. Each connection
// gets its own goroutine; the shared Interp serializes internally.
func (s *Server) Serve() error {
	if s.listener == nil {
		return fmt.Errorf("server is not listening")
	}
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if strings.Contains(err.Error(), "use of closed network connection") {
				return nil
			}
			return err
		}
		go s.handleConn(conn)
	}
}

// Close stops accepting new connections.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	connID := uuid.NewString()
	log.Printf("editor connected: %s (%s)", conn.RemoteAddr(), connID)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	writer := bufio.NewWriter(conn)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			writeResponse(writer, Response{
				Status: "error",
				Errors: protocolError("malformed request: " + err.Error()),
			})
			continue
		}

		resp := s.dispatch(req)
		if resp.Status == "closed" {
			writeResponse(writer, resp)
			break
		}
		writeResponse(writer, resp)
	}

	log.Printf("editor disconnected: %s", connID)
}

func (s *Server) dispatch(req Request) Response {
	resp := Response{ID: req.ID, Status: "ok"}

	switch req.Cmd {
	case "eval":
		out, err := s.interp.Eval(req.Code)
		if err != nil {
			resp.Status = "error"
			resp.Errors = protocolError(err.Error())
			break
		}
		resp.Output = out

	case "type":
		if ty, ok := s.interp.TypeOf(req.Code); ok {
			resp.Output = ty
		} else {
			resp.Status = "error"
			resp.Errors = protocolError("cannot infer type of " + strings.TrimSpace(req.Code))
		}

	case "load":
		if err := s.interp.LoadFile(req.File); err != nil {
			resp.Status = "error"
			resp.Errors = protocolError(err.Error())
			break
		}
		resp.Output = "loaded " + req.File

	case "compile":
		errs, err := s.interp.CompileFile(req.File)
		if err != nil {
			resp.Status = "error"
			resp.Errors = protocolError(err.Error())
			break
		}
		if len(errs) > 0 {
			resp.Status = "error"
			resp.Errors = errs
			break
		}
		resp.Output = "compiled " + req.File

	case "reload":
		if err := s.interp.ReloadFiles(); err != nil {
			resp.Status = "error"
			resp.Errors = protocolError(err.Error())
			break
		}
		resp.Output = "reloaded"

	case "status":
		resp.Output = s.interp.Status()

	case "quit":
		resp.Status = "closed"

	default:
		resp.Status = "error"
		resp.Errors = protocolError("unknown command: " + req.Cmd)
	}

	return resp
}

func writeResponse(w *bufio.Writer, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("marshal response: %v", err)
		return
	}
	w.Write(data)
	w.WriteByte('\n')
	w.Flush()
}
