package httpserver

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

const httpDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Header is an ordered set of fields with case-insensitive names. Setting a
// field whose name is already present replaces its value in place, so
// insertion order is preserved when rendering.
type Header struct {
	fields []HeaderField
}

type HeaderField struct {
	Name  string
	Value string
}

func (h *Header) Set(name, value string) {
	for i, field := range h.fields {
		if strings.EqualFold(field.Name, name) {
			h.fields[i].Value = value
			return
		}
	}

	h.fields = append(h.fields, HeaderField{Name: name, Value: value})
}

func (h *Header) Get(name string) string {
	for _, field := range h.fields {
		if strings.EqualFold(field.Name, name) {
			return field.Value
		}
	}

	return ""
}

func (h *Header) GetDefault(name, fallback string) string {
	for _, field := range h.fields {
		if strings.EqualFold(field.Name, name) {
			return field.Value
		}
	}

	return fallback
}

func (h *Header) Has(name string) bool {
	for _, field := range h.fields {
		if strings.EqualFold(field.Name, name) {
			return true
		}
	}

	return false
}

func (h *Header) Len() int {
	return len(h.fields)
}

func (h *Header) Fields() []HeaderField {
	return h.fields
}

// renderHeader produces the status line and the header block, including the
// terminating empty line. Every lookup has a default: rendering never fails,
// whatever the current state of the response.
func (r *Response) renderHeader() []byte {
	var reqHeader *Header
	if r.Request != nil {
		reqHeader = &r.Request.Header
	} else {
		reqHeader = &Header{}
	}

	reason := r.Reason
	if reason == "" {
		reason = "OK"
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "HTTP/1.1 %d %s\r\n", r.StatusCode, reason)

	writeField := func(name, value string) {
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.WriteString(value)
		buf.WriteString("\r\n")
	}

	writeField("Accept",
		reqHeader.GetDefault("Accept", "application/json"))
	writeField("Accept-Language",
		reqHeader.GetDefault("Accept-Language", "en-US,en;q=0.9"))
	writeField("Cache-Control", "no-cache")
	writeField("Content-Type",
		r.Header.GetDefault("Content-Type", "application/octet-stream"))
	writeField("Content-Length",
		r.Header.GetDefault("Content-Length", "0"))
	writeField("Date", time.Now().UTC().Format(httpDateLayout))
	writeField("Server", ServerIdentifier)
	writeField("Connection", "close")

	for _, cookie := range r.Cookies.Fields() {
		writeField("Set-Cookie", cookie.Name+"="+cookie.Value)
	}

	buf.WriteString("\r\n")

	return buf.Bytes()
}
