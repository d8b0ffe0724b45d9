package httpserver

import (
	"bytes"
	"fmt"
	"mime"
	"path"
	"strings"
)

var (
	MediaTypeText        = &MediaType{Type: "text", Subtype: "plain"}
	MediaTypeHTML        = &MediaType{Type: "text", Subtype: "html"}
	MediaTypeJSON        = &MediaType{Type: "application", Subtype: "json"}
	MediaTypeOctetStream = &MediaType{Type: "application", Subtype: "octet-stream"}
)

type MediaType struct {
	Type    string
	Subtype string
}

func (t *MediaType) String() string {
	var buf bytes.Buffer

	buf.WriteString(t.Type)
	buf.WriteByte('/')
	buf.WriteString(t.Subtype)

	return buf.String()
}

func (t *MediaType) Parse(s string) error {
	slash := strings.IndexByte(s, '/')
	if slash == -1 {
		return fmt.Errorf("missing '/' separator")
	}

	mtype := strings.Trim(s[:slash], " \t")
	if mtype == "" {
		return fmt.Errorf("invalid empty type")
	}

	t.Type = mtype
	s = s[slash+1:]

	// Parameters are irrelevant for storage resolution, drop them
	semicolon := strings.IndexByte(s, ';')
	end := semicolon
	if end == -1 {
		end = len(s)
	}

	subtype := strings.Trim(s[:end], " \t")
	if subtype == "" {
		return fmt.Errorf("invalid empty subtype")
	}

	t.Subtype = subtype

	return nil
}

func (t *MediaType) Equal(t2 *MediaType) bool {
	return t.Type == t2.Type && t.Subtype == t2.Subtype
}

// GuessMediaType maps a request path to a media type using its extension.
// Unknown or missing extensions yield application/octet-stream; it never
// fails.
func GuessMediaType(filePath string) *MediaType {
	ext := path.Ext(filePath)
	if ext == "" {
		return MediaTypeOctetStream
	}

	s := mime.TypeByExtension(ext)
	if s == "" {
		return MediaTypeOctetStream
	}

	var t MediaType
	if err := t.Parse(s); err != nil {
		return MediaTypeOctetStream
	}

	return &t
}

// BaseDirectory maps a media type to the storage directory its content is
// served from, relative to the content store root.
func (t *MediaType) BaseDirectory() (string, error) {
	if t.Type == "" || t.Subtype == "" {
		return "", fmt.Errorf("invalid media type %q", t.String())
	}

	var dirName string

	switch t.Type {
	case "text":
		switch t.Subtype {
		case "plain", "css", "csv", "xml":
			dirName = "static"
		case "html":
			dirName = "www"
		default:
			dirName = "static"
		}
	case "image":
		dirName = "static"
	case "application":
		dirName = "apps"
	case "video":
		dirName = "video"
	default:
		dirName = "static"
	}

	return dirName, nil
}
