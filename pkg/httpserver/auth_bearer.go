package httpserver

import (
	"errors"
	"fmt"
	"strings"

	"go.n16f.net/ejson"
)

type BearerAuthCfg struct {
	Tokens        []string `json:"tokens,omitempty"`
	TokenFilePath string   `json:"token_file_path,omitempty"`
}

func (cfg *BearerAuthCfg) ValidateJSON(v *ejson.Validator) {
	if cfg.TokenFilePath != "" && len(cfg.Tokens) > 0 {
		v.AddError(nil, "invalid_configuration",
			"cannot provide both a token file path and a list of tokens")
	}
}

type BearerAuth struct {
	Cfg    *AuthCfg
	Tokens map[string]struct{}
}

func (a *BearerAuth) Init(cfg *AuthCfg) error {
	a.Cfg = cfg

	bearerCfg := a.Cfg.Bearer

	if filePath := bearerCfg.TokenFilePath; filePath == "" {
		a.Tokens = make(map[string]struct{})
		for _, token := range bearerCfg.Tokens {
			a.Tokens[token] = struct{}{}
		}
	} else {
		tokens, err := loadAuthSecretFile(filePath)
		if err != nil {
			return fmt.Errorf("cannot load tokens: %w", err)
		}

		a.Tokens = tokens
	}

	return nil
}

func (a *BearerAuth) AuthenticateRequest(req *Request) error {
	authorization := req.Header.Get("Authorization")
	if authorization == "" {
		return errors.New("missing or empty Authorization header field")
	}

	space := strings.IndexByte(authorization, ' ')
	if space == -1 {
		return errors.New("invalid authorization format")
	}

	scheme := authorization[:space]

	if strings.ToLower(scheme) != "bearer" {
		return fmt.Errorf("invalid authorization scheme %q", scheme)
	}

	token := transformAuthSecret(authorization[space+1:], a.Cfg)

	if _, found := a.Tokens[token]; !found {
		return fmt.Errorf("invalid token")
	}

	return nil
}
