package weaprous

import (
	"fmt"
	"time"

	"go.n16f.net/log"
	"go.n16f.net/weaprous/pkg/httpserver"
)

type Server struct {
	Cfg ServerCfg
	Log *log.Logger

	Module *httpserver.Module
}

func NewServer(cfg ServerCfg) (*Server, error) {
	var logger *log.Logger
	if cfg.Logger == nil {
		logger = log.DefaultLogger("weaprous")
	} else {
		var err error
		logger, err = log.NewLogger("weaprous", *cfg.Logger)
		if err != nil {
			return nil, fmt.Errorf("cannot create logger: %w", err)
		}
	}

	if cfg.Server == nil {
		return nil, fmt.Errorf("missing server configuration")
	}

	mod, err := httpserver.NewModule(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("cannot create server module: %w", err)
	}

	s := Server{
		Cfg: cfg,
		Log: logger,

		Module: mod,
	}

	s.registerRoutes()

	return &s, nil
}

func (s *Server) Start() error {
	s.Log.Debug(1, "starting")

	logger := s.Log.Child("server", nil)

	if err := s.Module.Start(logger); err != nil {
		return err
	}

	s.Log.Debug(1, "running")

	return nil
}

func (s *Server) Stop() {
	s.Log.Debug(1, "stopping")

	s.Module.Stop()
}

type ServerStatus struct {
	Server  string `json:"server"`
	BuildId string `json:"build_id,omitempty"`
	Time    string `json:"time"`
}

func (s *Server) registerRoutes() {
	s.Module.Routes.Register("GET", "/api/status", s.hStatus)
}

func (s *Server) hStatus(req *httpserver.Request, resp *httpserver.Response) {
	status := ServerStatus{
		Server:  httpserver.ServerIdentifier,
		BuildId: s.Cfg.BuildId,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	resp.SetPayload(&status)
}
