package source

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	goPermit "github.com/MrEthical07/goPermit"
)

// ClaimNames maps Config fields to the token claims that carry them.
type ClaimNames struct {
	Permissions        string
	Roles              string
	RoleDefinitions    string
	Restrictions       string
	Sector             string
	SectorRestrictions string
}

// DefaultClaimNames are the claim names TokenSource reads when not
// overridden.
var DefaultClaimNames = ClaimNames{
	Permissions:        "permissions",
	Roles:              "roles",
	RoleDefinitions:    "roleDefinitions",
	Restrictions:       "restrictions",
	Sector:             "sector",
	SectorRestrictions: "sectorRestrictions",
}

// TokenSource seeds a configuration from the claims of a JWT access token.
// The token is decoded, not verified; see the package doc for why.
type TokenSource struct {
	token  string
	claims ClaimNames
}

// TokenOption configures a [TokenSource].
type TokenOption func(*TokenSource)

// WithClaimNames overrides the claim names. Empty fields keep their default.
func WithClaimNames(names ClaimNames) TokenOption {
	return func(s *TokenSource) {
		if names.Permissions != "" {
			s.claims.Permissions = names.Permissions
		}
		if names.Roles != "" {
			s.claims.Roles = names.Roles
		}
		if names.RoleDefinitions != "" {
			s.claims.RoleDefinitions = names.RoleDefinitions
		}
		if names.Restrictions != "" {
			s.claims.Restrictions = names.Restrictions
		}
		if names.Sector != "" {
			s.claims.Sector = names.Sector
		}
		if names.SectorRestrictions != "" {
			s.claims.SectorRestrictions = names.SectorRestrictions
		}
	}
}

// NewTokenSource creates a source decoding the given compact JWT.
func NewTokenSource(token string, opts ...TokenOption) *TokenSource {
	s := &TokenSource{
		token:  token,
		claims: DefaultClaimNames,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load decodes the token and maps its claims onto a Config. Missing claims
// leave their field empty; claim values of the wrong shape are skipped
// element-wise rather than failing the load.
func (s *TokenSource) Load() (goPermit.Config, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.token, claims); err != nil {
		return goPermit.Config{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	cfg := goPermit.Config{
		Permissions:  permissionList(claims[s.claims.Permissions]),
		Restrictions: permissionList(claims[s.claims.Restrictions]),
	}

	for _, r := range stringList(claims[s.claims.Roles]) {
		cfg.Roles = append(cfg.Roles, goPermit.Role(r))
	}
	if sector, ok := claims[s.claims.Sector].(string); ok {
		cfg.Sector = goPermit.Sector(sector)
	}

	if defs, ok := claims[s.claims.RoleDefinitions].(map[string]any); ok {
		cfg.RoleDefinitions = make(map[goPermit.Role][]goPermit.Permission, len(defs))
		for role, v := range defs {
			cfg.RoleDefinitions[goPermit.Role(role)] = permissionList(v)
		}
	}

	if sr, ok := claims[s.claims.SectorRestrictions].(map[string]any); ok {
		cfg.SectorRestrictions = make(map[goPermit.Sector][]goPermit.Permission, len(sr))
		for sector, v := range sr {
			cfg.SectorRestrictions[goPermit.Sector(sector)] = permissionList(v)
		}
	}

	return cfg, nil
}

func permissionList(v any) []goPermit.Permission {
	ss := stringList(v)
	if ss == nil {
		return nil
	}
	out := make([]goPermit.Permission, 0, len(ss))
	for _, s := range ss {
		out = append(out, goPermit.Permission(s))
	}
	return out
}

// stringList coerces the shapes JSON decoding produces for claim lists:
// []any of strings (non-strings skipped), []string, or a bare string treated
// as a one-element list.
func stringList(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case []string:
		return append([]string(nil), val...)
	case []any:
		var out []string
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
