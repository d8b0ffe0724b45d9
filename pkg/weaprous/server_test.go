package weaprous

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.n16f.net/weaprous/pkg/httpserver"
)

func startTestServer(t *testing.T, cfg ServerCfg) (*Server, string) {
	t.Helper()

	server, err := NewServer(cfg)
	require.NoError(t, err)

	require.NoError(t, server.Start())
	t.Cleanup(server.Stop)

	addr := server.Module.Listeners()[0].Address().String()
	return server, addr
}

func exchange(t *testing.T, addr, request string) string {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(request))
	require.NoError(t, err)

	data, err := io.ReadAll(conn)
	require.NoError(t, err)

	return string(data)
}

func TestServerServesContent(t *testing.T) {
	assert := assert.New(t)

	root := t.TempDir()
	filePath := filepath.Join(root, "www", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0700))
	require.NoError(t, os.WriteFile(filePath, []byte("<html>hi</html>"), 0600))

	cfg := ServerCfg{
		Server: &httpserver.ModuleCfg{
			Listeners: []*httpserver.ListenerCfg{{Address: "127.0.0.1:0"}},
			Root:      root,
		},
	}

	_, addr := startTestServer(t, cfg)

	data := exchange(t, addr,
		"GET /index.html HTTP/1.1\r\nHost: test\r\n\r\n")
	assert.True(strings.HasPrefix(data, "HTTP/1.1 200 OK\r\n"), data)
	assert.Contains(data, "Content-Type: text/html\r\n")
	assert.True(strings.HasSuffix(data, "<html>hi</html>"), data)

	// Dynamic routes serialize their payload as JSON
	data = exchange(t, addr, "GET /api/status HTTP/1.1\r\n\r\n")
	assert.True(strings.HasPrefix(data, "HTTP/1.1 200 OK\r\n"), data)
	assert.Contains(data, "Content-Type: application/json\r\n")
	assert.Contains(data, `"server":"WeApRous/1.0"`)

	// A request which cannot be parsed gets the fixed 404
	data = exchange(t, addr, "garbage\r\n\r\n")
	assert.True(strings.HasPrefix(data, "HTTP/1.1 404 Not Found\r\n"), data)
}

func TestServerAuthentication(t *testing.T) {
	assert := assert.New(t)

	sum := sha256.Sum256([]byte("sesame"))

	cfg := ServerCfg{
		Server: &httpserver.ModuleCfg{
			Listeners: []*httpserver.ListenerCfg{{Address: "127.0.0.1:0"}},
			Root:      t.TempDir(),
			Auth: &httpserver.AuthCfg{
				Basic: &httpserver.BasicAuthCfg{
					Credentials: []string{
						"bob:" + hex.EncodeToString(sum[:]),
					},
				},
			},
		},
	}

	_, addr := startTestServer(t, cfg)

	data := exchange(t, addr, "GET /index.html HTTP/1.1\r\n\r\n")
	assert.True(strings.HasPrefix(data, "HTTP/1.1 401 Unauthorized\r\n"), data)
	assert.True(strings.HasSuffix(data, "401 Unauthorized"), data)

	// base64("bob:sesame")
	data = exchange(t, addr,
		"GET /index.html HTTP/1.1\r\n"+
			"Authorization: Basic Ym9iOnNlc2FtZQ==\r\n"+
			"\r\n")
	assert.True(strings.HasPrefix(data, "HTTP/1.1 200 OK\r\n"), data)
}
