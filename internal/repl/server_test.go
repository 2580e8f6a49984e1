package repl

import (
	"bufio"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func startServer(t *testing.T) (*Client, *Server) {
	t.Helper()

	server := NewServer(NewInterp())
	addr, err := server.Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	go server.Serve()
	t.Cleanup(func() { server.Close() })

	client, err := Dial(addr)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	return client, server
}

func TestServerEval(t *testing.T) {
	client, _ := startServer(t)

	resp, err := client.Send("eval", "x = 5", "")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("eval status = %q, errors = %v", resp.Status, resp.Errors)
	}
	if resp.Output != "x: Int" {
		t.Errorf("eval output = %q, want %q", resp.Output, "x: Int")
	}
	if len(resp.ID) == 0 {
		t.Error("response should echo a request ID")
	}
}

func TestServerStatePersistsAcrossRequests(t *testing.T) {
	client, _ := startServer(t)

	if _, err := client.Send("eval", "nums = [1, 2, 3]", ""); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	resp, err := client.Send("type", "nums.head()", "")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if resp.Status != "ok" || resp.Output != "Int" {
		t.Errorf("type response = %+v, want Int", resp)
	}
}

func TestServerTypeUnknown(t *testing.T) {
	client, _ := startServer(t)

	resp, err := client.Send("type", "mystery", "")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if resp.Status != "error" || len(resp.Errors) == 0 {
		t.Errorf("expected error response, got %+v", resp)
	}
}

func TestServerStatus(t *testing.T) {
	client, _ := startServer(t)

	resp, err := client.Send("status", "", "")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if resp.Status != "ok" || !strings.Contains(resp.Output, "input lines") {
		t.Errorf("status response = %+v", resp)
	}
}

func TestServerUnknownCommand(t *testing.T) {
	client, _ := startServer(t)

	resp, err := client.Send("dance", "", "")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if resp.Status != "error" {
		t.Errorf("expected error for unknown command, got %+v", resp)
	}
	if len(resp.Errors) == 0 || !strings.Contains(resp.Errors[0].Message, "unknown command") {
		t.Errorf("unexpected errors: %v", resp.Errors)
	}
}

func TestServerNumericID(t *testing.T) {
	_, server := startServer(t)
	addr := server.listener.Addr().String()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(`{"id":7,"cmd":"status"}` + "\n")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(line, `"id":7`) {
		t.Errorf("numeric ID not echoed back: %s", line)
	}
	if !strings.Contains(line, `"status":"ok"`) {
		t.Errorf("expected ok status: %s", line)
	}
}

func TestServerCompile(t *testing.T) {
	client, _ := startServer(t)

	dir := t.TempDir()
	good := filepath.Join(dir, "good.voss")
	if err := os.WriteFile(good, []byte("type Point = { x: Int }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	resp, err := client.Send("compile", "", good)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if resp.Status != "ok" || !strings.Contains(resp.Output, "compiled") {
		t.Errorf("compile response = %+v", resp)
	}

	resp, err = client.Send("type", "Point", "")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if resp.Output != "Point" {
		t.Errorf("compiled file not loaded into session: %+v", resp)
	}
}

func TestServerCompileReportsErrors(t *testing.T) {
	client, _ := startServer(t)

	broken := filepath.Join(t.TempDir(), "broken.voss")
	if err := os.WriteFile(broken, []byte("x = 1\nys = [1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	resp, err := client.Send("compile", "", broken)
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if resp.Status != "error" || len(resp.Errors) != 1 {
		t.Fatalf("compile response = %+v", resp)
	}

	e := resp.Errors[0]
	if e.File != broken || e.Line != 2 {
		t.Errorf("error location = %s:%d, want %s:2", e.File, e.Line, broken)
	}
	if !strings.Contains(e.Message, "unclosed") {
		t.Errorf("error message = %q", e.Message)
	}
}

func TestServerQuit(t *testing.T) {
	client, _ := startServer(t)

	resp, err := client.Send("quit", "", "")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if resp.Status != "closed" {
		t.Errorf("quit status = %q", resp.Status)
	}
}

func TestRunClient(t *testing.T) {
	_, server := startServer(t)
	addr := server.listener.Addr().String()

	in := strings.NewReader("x = 5\n:type x\n:quit\n")
	var out strings.Builder

	if err := RunClient(addr, in, &out); err != nil {
		t.Fatalf("RunClient failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "x: Int") {
		t.Errorf("expected eval output in %q", got)
	}
	if !strings.Contains(got, "Int") {
		t.Errorf("expected type output in %q", got)
	}
}

func TestRunClientCompileError(t *testing.T) {
	_, server := startServer(t)
	addr := server.listener.Addr().String()

	broken := filepath.Join(t.TempDir(), "broken.voss")
	if err := os.WriteFile(broken, []byte("xs = [1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	in := strings.NewReader(":compile " + broken + "\n:quit\n")
	var out strings.Builder

	if err := RunClient(addr, in, &out); err != nil {
		t.Fatalf("RunClient failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "error: "+broken+":1:") {
		t.Errorf("expected located error in %q", got)
	}
	if !strings.Contains(got, "unclosed") {
		t.Errorf("expected unclosed delimiter message in %q", got)
	}
}
