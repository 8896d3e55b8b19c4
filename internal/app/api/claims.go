package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

// Upload is a file sent as multipart form data.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (c *Client) CreateClaim(ctx context.Context, req models.ClaimRequest) (models.Claim, error) {
	body, err := jsonBody(req)
	if err != nil {
		return models.Claim{}, err
	}

	var claim models.Claim
	err = c.do(ctx, request{
		op:          "create_claim",
		method:      http.MethodPost,
		path:        "/api/v1/claims",
		body:        body,
		contentType: "application/json",
	}, &claim)
	return claim, err
}

// SubmitEstimate uploads the damage photo and returns the analysis and cost estimate.
func (c *Client) SubmitEstimate(ctx context.Context, claimID int64, image Upload) (models.FinalEstimate, error) {
	body, contentType, err := multipartBody("image", image)
	if err != nil {
		return models.FinalEstimate{}, err
	}

	var result models.FinalEstimate
	err = c.do(ctx, request{
		op:          "submit_estimate",
		method:      http.MethodPost,
		path:        "/api/v1/claims/" + strconv.FormatInt(claimID, 10) + "/estimate",
		body:        body,
		contentType: contentType,
	}, &result)
	return result, err
}

func (c *Client) GetClaim(ctx context.Context, claimID int64) (models.ClaimDetail, error) {
	var claim models.ClaimDetail
	err := c.do(ctx, request{
		op:     "get_claim",
		method: http.MethodGet,
		path:   "/api/v1/claims/" + strconv.FormatInt(claimID, 10),
	}, &claim)
	return claim, err
}

func (c *Client) UserDetails(ctx context.Context) (models.UserDetails, error) {
	var details models.UserDetails
	err := c.do(ctx, request{
		op:     "user_details",
		method: http.MethodGet,
		path:   "/api/v1/claims/user/details",
	}, &details)
	return details, err
}

func (c *Client) ClaimHistory(ctx context.Context) ([]models.ClaimSummary, error) {
	var claims []models.ClaimSummary
	err := c.do(ctx, request{
		op:     "claim_history",
		method: http.MethodGet,
		path:   "/api/v1/claims/history",
	}, &claims)
	return claims, err
}

func (c *Client) UploadProfilePicture(ctx context.Context, picture Upload) error {
	body, contentType, err := multipartBody("file", picture)
	if err != nil {
		return err
	}
	return c.do(ctx, request{
		op:          "upload_profile_picture",
		method:      http.MethodPost,
		path:        "/api/v1/claims/profile-picture",
		body:        body,
		contentType: contentType,
	}, nil)
}

func multipartBody(field string, up Upload) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	ct := up.ContentType
	if ct == "" {
		ct = http.DetectContentType(up.Data)
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, up.Filename))
	header.Set("Content-Type", ct)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(up.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write multipart part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
