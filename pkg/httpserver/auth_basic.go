package httpserver

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"go.n16f.net/ejson"
)

type BasicAuthCfg struct {
	Credentials        []string `json:"credentials,omitempty"`
	CredentialFilePath string   `json:"credential_file_path,omitempty"`
}

func (cfg *BasicAuthCfg) ValidateJSON(v *ejson.Validator) {
	if cfg.CredentialFilePath != "" && len(cfg.Credentials) > 0 {
		v.AddError(nil, "invalid_configuration",
			"cannot provide both a credential file path and a list "+
				"of credentials")
	}
}

type BasicAuth struct {
	Cfg         *AuthCfg
	Credentials map[string]struct{}
}

func (a *BasicAuth) Init(cfg *AuthCfg) error {
	a.Cfg = cfg

	basicCfg := a.Cfg.Basic

	if filePath := basicCfg.CredentialFilePath; filePath == "" {
		a.Credentials = make(map[string]struct{})
		for _, c := range basicCfg.Credentials {
			a.Credentials[c] = struct{}{}
		}
	} else {
		credentials, err := loadAuthSecretFile(filePath)
		if err != nil {
			return fmt.Errorf("cannot load credentials: %w", err)
		}

		a.Credentials = credentials
	}

	return nil
}

func (a *BasicAuth) AuthenticateRequest(req *Request) error {
	authorization := req.Header.Get("Authorization")
	if authorization == "" {
		return errors.New("missing or empty Authorization header field")
	}

	space := strings.IndexByte(authorization, ' ')
	if space == -1 {
		return errors.New("invalid authorization format")
	}

	scheme := authorization[:space]

	if strings.ToLower(scheme) != "basic" {
		return fmt.Errorf("invalid authorization scheme %q", scheme)
	}

	credentialsData, err := base64.StdEncoding.DecodeString(
		authorization[space+1:])
	if err != nil {
		return fmt.Errorf("cannot decode base64-encoded credentials")
	}

	username, password, found := strings.Cut(string(credentialsData), ":")
	if !found {
		return fmt.Errorf("invalid authorization: missing ':' separator")
	}

	credentials := username + ":" + transformAuthSecret(password, a.Cfg)

	if _, found := a.Credentials[credentials]; !found {
		return fmt.Errorf("invalid credentials")
	}

	return nil
}
