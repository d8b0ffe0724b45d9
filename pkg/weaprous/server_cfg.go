package weaprous

import (
	"fmt"
	"os"

	"go.n16f.net/ejson"
	"go.n16f.net/log"
	"go.n16f.net/weaprous/pkg/httpserver"
)

type ServerCfg struct {
	// Provided by the caller of NewServer
	BuildId string `json:"-"`

	Logger *log.LoggerCfg        `json:"logger,omitempty"`
	Server *httpserver.ModuleCfg `json:"server"`
}

func (cfg *ServerCfg) ValidateJSON(v *ejson.Validator) {
	if cfg.Server == nil {
		v.AddError(nil, "invalid_configuration",
			"missing server configuration")
	}

	v.CheckOptionalObject("server", cfg.Server)
}

func (cfg *ServerCfg) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("cannot read %q: %w", filePath, err)
	}

	if err := ejson.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("cannot parse %q: %w", filePath, err)
	}

	return nil
}
