package netutils

import (
	"fmt"
	"net"

	"go.n16f.net/ejson"
	"go.n16f.net/log"
)

type TCPListenerCfg struct {
	Address string `json:"address"`

	Log *log.Logger `json:"-"` // provided by the caller of NewTCPListener
}

func (cfg *TCPListenerCfg) ValidateJSON(v *ejson.Validator) {
	v.CheckNetworkAddress("address", cfg.Address)
}

type TCPListener struct {
	Cfg TCPListenerCfg
	Log *log.Logger

	Listener net.Listener
}

func NewTCPListener(cfg TCPListenerCfg) (*TCPListener, error) {
	l := TCPListener{
		Cfg: cfg,
		Log: cfg.Log,
	}

	return &l, nil
}

func (l *TCPListener) Start() error {
	listener, err := net.Listen("tcp", l.Cfg.Address)
	if err != nil {
		return fmt.Errorf("cannot create TCP listener: %w", err)
	}

	l.Listener = listener

	l.Log.Info("listening on %q", l.Cfg.Address)

	return nil
}

func (l *TCPListener) Stop() {
	l.Listener.Close()
}

func (l *TCPListener) Accept() (net.Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, UnwrapOpError(err, "accept")
	}

	return conn, nil
}
