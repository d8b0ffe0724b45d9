package httpserver

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTestRequest(t *testing.T, data string) (*Request, error) {
	t.Helper()
	return ReadRequest(bufio.NewReader(strings.NewReader(data)))
}

func TestReadRequest(t *testing.T) {
	assert := assert.New(t)

	req, err := parseTestRequest(t,
		"GET /index.html HTTP/1.1\r\n"+
			"Host: example.com\r\n"+
			"Accept: text/html\r\n"+
			"accept-language: fr-FR\r\n"+
			"\r\n")
	require.NoError(t, err)

	assert.Equal("GET", req.Method)
	assert.Equal("/index.html", req.Path)
	assert.Equal("HTTP/1.1", req.Proto)
	assert.Equal("example.com", req.Header.Get("host"))
	assert.Equal("text/html", req.Header.Get("Accept"))
	assert.Equal("fr-FR", req.Header.Get("Accept-Language"))
}

func TestReadRequestStripsQuery(t *testing.T) {
	assert := assert.New(t)

	req, err := parseTestRequest(t,
		"GET /search?q=hello&page=2 HTTP/1.1\r\n\r\n")
	require.NoError(t, err)

	assert.Equal("/search", req.Path)
}

func TestReadRequestInvalid(t *testing.T) {
	assert := assert.New(t)

	tests := []string{
		"\r\n\r\n",
		"GET\r\n\r\n",
		"GET /a\r\n\r\n",
		"GET /a HTTP/1.1 extra\r\n\r\n",
		"GET nopath HTTP/1.1\r\n\r\n",
		"GET /a HTTP/1.1\r\nbogus-header\r\n\r\n",
		"GET /a HTTP/1.1\r\n: empty-name\r\n\r\n",
		"GET /a HTTP/1.1\r\nHost: example.com\r\n", // truncated
	}

	for _, test := range tests {
		_, err := parseTestRequest(t, test)
		assert.Error(err, "%q", test)
	}
}
