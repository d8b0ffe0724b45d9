package httpserver

import (
	"encoding/json"
	"strconv"
	"time"

	"go.n16f.net/log"
)

const ServerIdentifier = "WeApRous/1.0"

// Response accumulates the state of a reply while a request is being handled
// and assembles the exact byte sequence to write back on the connection. A
// response belongs to a single request handling unit and must not be shared.
//
// A handler either attaches a structured payload, serialized as JSON at build
// time, or leaves the payload empty, in which case the body is resolved from
// the content store using the request path. A missing file degrades to an
// empty body with status 200, not to a 404; only a base directory resolution
// failure yields the fixed 404 response.
type Response struct {
	StatusCode int    // 0 until determined
	Reason     string // status line reason, "OK" when empty
	Payload    any    // pending JSON payload, nil for file-backed bodies
	Header     Header
	Cookies    Header
	Elapsed    time.Duration
	Request    *Request

	Store *ContentStore
	Log   *log.Logger

	content []byte
}

func NewResponse(store *ContentStore, logger *log.Logger) *Response {
	return &Response{
		Store: store,
		Log:   logger,
	}
}

// SetPayload attaches a structured value to be serialized as the JSON body
// of the response.
func (r *Response) SetPayload(value any) {
	r.Payload = value
}

func (r *Response) SetCookie(name, value string) {
	r.Cookies.Set(name, value)
}

// Build assembles the complete response for req: status line, header block
// and body. It never fails; after it returns, StatusCode is set and Reason
// is a plain string.
func (r *Response) Build(req *Request) []byte {
	r.Request = req

	if r.Payload != nil {
		return r.buildPayload()
	}

	return r.buildFile(req)
}

func (r *Response) buildPayload() []byte {
	data, err := json.Marshal(r.Payload)
	if err != nil {
		// A payload which cannot be serialized degrades to an empty body;
		// assembly must not fail this late.
		r.Log.Error("cannot encode payload: %v", err)
		data = nil
	}

	r.Payload = nil
	r.content = data

	if r.StatusCode == 0 {
		r.StatusCode = 200
	}

	r.Reason = "OK"

	r.Header.Set("Content-Type", MediaTypeJSON.String())
	r.Header.Set("Content-Length", strconv.Itoa(len(data)))

	return append(r.renderHeader(), r.content...)
}

func (r *Response) buildFile(req *Request) []byte {
	filePath := req.Path
	mediaType := GuessMediaType(filePath)

	var baseDir string

	switch filePath {
	case "/api/get-messages", "/api/get-message":
		filePath = "db/message.json"
		mediaType = MediaTypeJSON
		baseDir = "."

	case "/api/get-users":
		filePath = "db/user.json"
		mediaType = MediaTypeJSON
		baseDir = "."

	default:
		// Unknown content is assumed to be JSON, not binary
		if mediaType.Equal(MediaTypeOctetStream) {
			mediaType = MediaTypeJSON
		}

		r.Header.Set("Content-Type", mediaType.String())

		var err error
		baseDir, err = mediaType.BaseDirectory()
		if err != nil {
			r.Log.Error("cannot resolve base directory for %q: %v",
				mediaType.String(), err)
			return BuildNotFound()
		}
	}

	r.Log.Debug(1, "%s %s (%s)", req.Method, filePath, mediaType.String())

	length, content := r.Store.Load(filePath, baseDir)
	r.content = content

	r.Header.Set("Content-Type", mediaType.String())
	r.Header.Set("Content-Length", strconv.Itoa(length))

	if r.StatusCode == 0 {
		r.StatusCode = 200
		r.Reason = "OK"
	}

	return append(r.renderHeader(), r.content...)
}

// BuildNotFound returns the fixed 404 response. It does not depend on any
// response state and can be called at any time.
func BuildNotFound() []byte {
	return []byte("HTTP/1.1 404 Not Found\r\n" +
		"Content-Type: text/html\r\n" +
		"Content-Length: 13\r\n" +
		"Connection: close\r\n" +
		"\r\n" +
		"404 Not Found")
}

// BuildUnauthorized returns the fixed 401 response written when a caller
// rejects a request before response assembly.
func BuildUnauthorized() []byte {
	body := "401 Unauthorized"

	return []byte("HTTP/1.1 401 Unauthorized\r\n" +
		"Content-Type: text/plain\r\n" +
		"Content-Length: " + strconv.Itoa(len(body)) + "\r\n" +
		"Connection: close\r\n" +
		"\r\n" +
		body)
}
