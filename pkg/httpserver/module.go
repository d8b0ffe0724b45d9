package httpserver

import (
	"fmt"

	"go.n16f.net/ejson"
	"go.n16f.net/log"
)

type ModuleCfg struct {
	Listeners []*ListenerCfg `json:"listeners"`
	Root      string         `json:"root"`
	Auth      *AuthCfg       `json:"authentication,omitempty"`
}

func (cfg *ModuleCfg) ValidateJSON(v *ejson.Validator) {
	v.CheckArrayNotEmpty("listeners", cfg.Listeners)
	v.CheckObjectArray("listeners", cfg.Listeners)

	v.CheckStringNotEmpty("root", cfg.Root)

	v.CheckOptionalObject("authentication", cfg.Auth)
}

// Module is a WeApRous HTTP server: a set of listeners sharing a content
// store, a route table and an optional authentication gate.
type Module struct {
	Cfg    *ModuleCfg
	Log    *log.Logger
	Store  *ContentStore
	Routes *RouteTable

	auth      Auth
	listeners []*Listener
}

func NewModule(cfg *ModuleCfg) (*Module, error) {
	mod := Module{
		Cfg:    cfg,
		Routes: NewRouteTable(),
	}

	if cfg.Auth != nil {
		auth, err := NewAuth(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("cannot create authenticator: %w", err)
		}

		mod.auth = auth
	}

	mod.listeners = make([]*Listener, len(cfg.Listeners))
	for i, lCfg := range cfg.Listeners {
		listener, err := NewListener(&mod, *lCfg)
		if err != nil {
			return nil, fmt.Errorf("cannot create listener: %w", err)
		}

		mod.listeners[i] = listener
	}

	return &mod, nil
}

func (mod *Module) Start(logger *log.Logger) error {
	mod.Log = logger
	mod.Store = NewContentStore(mod.Cfg.Root, logger)

	for i, l := range mod.listeners {
		if err := l.Start(); err != nil {
			for j := range i {
				mod.listeners[j].Stop()
			}

			return fmt.Errorf("cannot start listener: %w", err)
		}
	}

	return nil
}

func (mod *Module) Stop() {
	for _, l := range mod.listeners {
		l.Stop()
	}
}

func (mod *Module) Listeners() []*Listener {
	return mod.listeners
}
