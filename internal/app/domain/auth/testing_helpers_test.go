package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// mintToken issues a backend-shaped credential. The signature is irrelevant to the codec.
func mintToken(t *testing.T, subject string, authorities ...string) string {
	t.Helper()
	roles := make([]RoleAuthority, 0, len(authorities))
	for _, a := range authorities {
		roles = append(roles, RoleAuthority{Authority: a})
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Roles:            roles,
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
	})
	signed, err := token.SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return signed
}

func mintRawClaims(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return signed
}

type countingDecoder struct {
	next  Decoder
	calls int
}

func (d *countingDecoder) Decode(raw string) (Identity, error) {
	d.calls++
	return d.next.Decode(raw)
}
