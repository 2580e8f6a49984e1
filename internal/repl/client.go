package repl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// Client talks to a running analysis server over the line-JSON protocol.
type Client struct {
	conn   net.Conn
	reader *bufio.Reader
	nextID int
}

func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	return &Client{conn: conn, reader: bufio.NewReader(conn)}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Send issues one request and waits for its response.
func (c *Client) Send(cmd, code, file string) (Response, error) {
	c.nextID++
	req := Request{
		ID:   json.RawMessage(strconv.Itoa(c.nextID)),
		Cmd:  cmd,
		Code: code,
		File: file,
	}

	data, err := json.Marshal(req)
	if err != nil {
		return Response{}, err
	}
	if _, err := c.conn.Write(append(data, '\n')); err != nil {
		return Response{}, fmt.Errorf("send request: %w", err)
	}

	line, err := c.reader.ReadString('\n')
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &resp); err != nil {
		return Response{}, fmt.Errorf("malformed response: %w", err)
	}
	return resp, nil
}

// RunClient forwards lines from in to the server at addr, printing each
// response to out. Lines starting with ":" map onto protocol commands.
func RunClient(addr string, in io.Reader, out io.Writer) error {
	client, err := Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	fmt.Fprintf(out, "connected to %s\n", addr)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, code, file := "eval", line, ""
		if strings.HasPrefix(line, ":") {
			name, arg, _ := strings.Cut(line[1:], " ")
			arg = strings.TrimSpace(arg)
			switch name {
			case "quit", "q":
				_, _ = client.Send("quit", "", "")
				return nil
			case "load":
				cmd, code, file = "load", "", arg
			case "compile":
				cmd, code, file = "compile", "", arg
			case "type":
				cmd, code = "type", arg
			case "reload", "status":
				cmd, code = name, ""
			default:
				fmt.Fprintf(out, "unknown command :%s\n", name)
				continue
			}
		}

		resp, err := client.Send(cmd, code, file)
		if err != nil {
			return err
		}

		if resp.Output != "" {
			fmt.Fprintln(out, resp.Output)
		}
		for _, e := range resp.Errors {
			if e.File != "" {
				fmt.Fprintf(out, "error: %s:%d: %s\n", e.File, e.Line, e.Message)
			} else {
				fmt.Fprintln(out, "error: "+e.Message)
			}
		}
	}

	return scanner.Err()
}
