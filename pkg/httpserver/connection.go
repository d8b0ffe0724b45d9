package httpserver

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"go.n16f.net/log"
	"go.n16f.net/weaprous/pkg/netutils"
)

// Connection handles a single HTTP/1.1 exchange: one request read, one
// response written, then the connection is closed.
type Connection struct {
	Listener *Listener
	Log      *log.Logger

	conn net.Conn
}

func (c *Connection) Close() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *Connection) serve() {
	defer c.Listener.wg.Done()
	defer func() {
		c.Close()
		c.Listener.unregisterConnection(c)
	}()

	mod := c.Listener.Module
	start := time.Now()

	req, err := ReadRequest(bufio.NewReader(c.conn))
	if err != nil {
		err = netutils.UnwrapOpError(err, "read")

		if netutils.IsSilentIOError(err) {
			c.Log.Debug(1, "cannot read request: %v", err)
			return
		}

		c.Log.Error("cannot read request: %v", err)
		c.write(BuildNotFound())
		return
	}

	c.Log.Info("%s %s", req.Method, req.Path)

	if auth := mod.auth; auth != nil {
		if err := auth.AuthenticateRequest(req); err != nil {
			c.Log.Error("cannot authenticate request: %v", err)
			c.write(BuildUnauthorized())
			return
		}
	}

	resp := NewResponse(mod.Store, c.Log)

	if fn := mod.Routes.Lookup(req.Method, req.Path); fn != nil {
		fn(req, resp)
	}

	data := resp.Build(req)
	resp.Elapsed = time.Since(start)

	c.write(data)
}

func (c *Connection) write(data []byte) {
	if _, err := c.conn.Write(data); err != nil {
		err = netutils.UnwrapOpError(err, "write")
		c.abort(fmt.Errorf("cannot write response: %w", err))
	}
}

func (c *Connection) abort(err error) {
	if netutils.IsSilentIOError(err) {
		c.Log.Debug(1, "%v", err)
	} else {
		c.Log.Error("%v", err)
	}
}
