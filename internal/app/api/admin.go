package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

// AllClaims lists every claim in the system. Admin credential required.
func (c *Client) AllClaims(ctx context.Context) ([]models.ClaimSummary, error) {
	var claims []models.ClaimSummary
	err := c.do(ctx, request{
		op:     "admin_all_claims",
		method: http.MethodGet,
		path:   "/api/v1/admin/claims/all",
	}, &claims)
	return claims, err
}

// UpdateClaimStatus records an admin decision such as CLAIM_APPROVED.
func (c *Client) UpdateClaimStatus(ctx context.Context, claimID int64, status string) error {
	return c.do(ctx, request{
		op:     "admin_update_status",
		method: http.MethodPut,
		path:   "/api/v1/admin/claims/" + strconv.FormatInt(claimID, 10) + "/status",
		query:  url.Values{"status": []string{status}},
	}, nil)
}
