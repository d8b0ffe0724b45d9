package httpserver

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
	"go.n16f.net/ejson"
	"go.n16f.net/log"
	"go.n16f.net/weaprous/pkg/netutils"
)

type ListenerCfg struct {
	Address string `json:"address"`
}

func (cfg *ListenerCfg) ValidateJSON(v *ejson.Validator) {
	v.CheckNetworkAddress("address", cfg.Address)
}

type Listener struct {
	Module      *Module
	Cfg         ListenerCfg
	TCPListener *netutils.TCPListener

	connections      map[*Connection]struct{}
	connectionsMutex sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewListener(mod *Module, cfg ListenerCfg) (*Listener, error) {
	ctx, cancel := context.WithCancel(context.Background())

	l := Listener{
		Module: mod,
		Cfg:    cfg,

		connections: make(map[*Connection]struct{}),

		ctx:    ctx,
		cancel: cancel,
	}

	return &l, nil
}

func (l *Listener) Start() error {
	tcpCfg := netutils.TCPListenerCfg{
		Address: l.Cfg.Address,
		Log:     l.Module.Log,
	}

	tcpListener, err := netutils.NewTCPListener(tcpCfg)
	if err != nil {
		return err
	}

	if err := tcpListener.Start(); err != nil {
		return fmt.Errorf("cannot start TCP listener: %w", err)
	}

	l.TCPListener = tcpListener

	l.wg.Add(1)
	go l.listen()

	return nil
}

func (l *Listener) Stop() {
	l.TCPListener.Stop() // interrupt Accept

	l.cancel()

	l.connectionsMutex.Lock()
	for connection := range l.connections {
		connection.Close() // interrupt Read and Write
		delete(l.connections, connection)
	}
	l.connectionsMutex.Unlock()

	l.wg.Wait()
}

func (l *Listener) Address() net.Addr {
	return l.TCPListener.Listener.Addr()
}

func (l *Listener) CountConnections() int64 {
	l.connectionsMutex.Lock()
	n := len(l.connections)
	l.connectionsMutex.Unlock()

	return int64(n)
}

func (l *Listener) listen() {
	defer l.wg.Done()

	for {
		conn, err := l.TCPListener.Accept()
		if err != nil {
			select {
			case <-l.ctx.Done():
			default:
				l.Module.Log.Error("cannot accept connection: %v", err)
			}

			return
		}

		l.handleConnection(conn)
	}
}

func (l *Listener) handleConnection(conn net.Conn) {
	addr, port, err := netutils.ConnectionRemoteAddress(conn)
	if err != nil {
		l.Module.Log.Error("cannot identify connection remote address: %v",
			err)
		conn.Close()
		return
	}

	logData := log.Data{
		"connection": netutils.FormatNumericAddress(addr, port),
		"id":         uuid.NewString(),
	}

	logger := l.Module.Log.Child("", logData)

	c := Connection{
		Listener: l,
		Log:      logger,

		conn: conn,
	}

	l.registerConnection(&c)

	l.wg.Add(1)
	go c.serve()
}

func (l *Listener) registerConnection(c *Connection) {
	l.connectionsMutex.Lock()
	l.connections[c] = struct{}{}
	l.connectionsMutex.Unlock()
}

func (l *Listener) unregisterConnection(c *Connection) {
	l.connectionsMutex.Lock()
	delete(l.connections, c)
	l.connectionsMutex.Unlock()
}
