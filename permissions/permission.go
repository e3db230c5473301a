package permissions

import (
	_ "embed"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var rawTable []byte

// Permission describes the access rule for a single route: which roles may
// call it, or skip=true for routes open without a token.
type Permission struct {
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Permissions []string `json:"permissions"`
	Skip        bool     `json:"skip"`
}

// PermissionData is the embedded endpoint table the auth middleware consults
// on every request.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions returns the rule for the given route pattern and method.
// An unknown route yields the zero Permission, which denies everyone.
func (d *PermissionData) FindPermissions(path, method string) Permission {
	for _, endpoint := range d.Endpoints {
		if endpoint.Path == path && endpoint.Method == method {
			return endpoint
		}
	}

	return Permission{}
}

func Get() *PermissionData {
	var table PermissionData

	if err := json.Unmarshal(rawTable, &table); err != nil {
		log.Err(err).Msg("failed to decode embedded permission table")

		return nil
	}

	log.Info().Int("endpoints", len(table.Endpoints)).Msg("permission table loaded")

	return &table
}
