package httpserver

import (
	"bufio"
	"fmt"
	"strings"
)

const (
	maxRequestLineLength = 8192
	maxHeaderFields      = 128
)

// Request is the inbound request descriptor consumed by response assembly.
// Path is the URL path only, without the query string.
type Request struct {
	Method string
	Path   string
	Proto  string
	Header Header
}

// ReadRequest parses a request line and header block from r. It does not
// read any body.
func ReadRequest(r *bufio.Reader) (*Request, error) {
	line, err := readRequestLine(r)
	if err != nil {
		return nil, err
	}

	var req Request

	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid request line %q", line)
	}

	req.Method = parts[0]
	req.Proto = parts[2]

	target := parts[1]
	if question := strings.IndexByte(target, '?'); question >= 0 {
		target = target[:question]
	}

	if target == "" || target[0] != '/' {
		return nil, fmt.Errorf("invalid request target %q", parts[1])
	}

	req.Path = target

	for {
		line, err := readRequestLine(r)
		if err != nil {
			return nil, err
		}

		if line == "" {
			break
		}

		if req.Header.Len() >= maxHeaderFields {
			return nil, fmt.Errorf("too many header fields")
		}

		name, value, found := strings.Cut(line, ":")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid header field %q", line)
		}

		req.Header.Set(name, strings.Trim(value, " \t"))
	}

	return &req, nil
}

func readRequestLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}

	if len(line) > maxRequestLineLength {
		return "", fmt.Errorf("line too long")
	}

	return strings.TrimRight(line, "\r\n"), nil
}
