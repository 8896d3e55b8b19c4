package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAdminRole is the authority label the backend issues to administrators.
const DefaultAdminRole = "ROLE_ADMIN"

// ErrDecode is returned for any credential that does not decode into a complete Identity.
var ErrDecode = errors.New("credential could not be decoded")

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Identity is the subject and role carried by a credential.
type Identity struct {
	Subject string
	Role    Role
}

// RoleAuthority is one entry of the backend's roles claim, e.g. {"authority":"ROLE_USER"}.
type RoleAuthority struct {
	Authority string `json:"authority"`
}

// Claims is the payload shape issued by the claims backend.
type Claims struct {
	Roles []RoleAuthority `json:"roles"`
	jwt.RegisteredClaims
}

// Decoder turns a raw credential into an Identity.
type Decoder interface {
	Decode(raw string) (Identity, error)
}

// Codec parses backend-issued JWTs without verifying their signature.
// Verification is the backend's job; the codec only reads the claims.
type Codec struct {
	adminRole string
	parser    *jwt.Parser
}

var _ Decoder = (*Codec)(nil)

func NewCodec(adminRole string) *Codec {
	if adminRole == "" {
		adminRole = DefaultAdminRole
	}
	return &Codec{
		adminRole: adminRole,
		parser:    jwt.NewParser(),
	}
}

// Decode parses raw and resolves the role from the first roles entry only.
// A user listing several roles is classified by whichever the backend put first.
func (c *Codec) Decode(raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, fmt.Errorf("%w: empty credential", ErrDecode)
	}

	claims := &Claims{}
	if _, _, err := c.parser.ParseUnverified(raw, claims); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrDecode)
	}
	if claims.Roles == nil {
		return Identity{}, fmt.Errorf("%w: missing roles", ErrDecode)
	}

	role := RoleUser
	if len(claims.Roles) > 0 && claims.Roles[0].Authority == c.adminRole {
		role = RoleAdmin
	}

	return Identity{Subject: claims.Subject, Role: role}, nil
}
