package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-claims-templui/internal/app/api"
	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/claims"
	"github.com/FACorreiaa/go-claims-templui/internal/app/loader"
	"github.com/FACorreiaa/go-claims-templui/internal/app/middleware"
	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
	"github.com/FACorreiaa/go-claims-templui/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-claims-templui/internal/app/report"
	"github.com/FACorreiaa/go-claims-templui/internal/app/views"
)

// MaxImageSize bounds uploaded photos.
const MaxImageSize = 10 << 20

type ClaimsHandlers struct {
	*BaseHandler
	now     func() time.Time
	intakes *intakeCache
}

func NewClaimsHandlers(base *BaseHandler) *ClaimsHandlers {
	return &ClaimsHandlers{BaseHandler: base, now: time.Now, intakes: newIntakeCache(IntakeTTL)}
}

// subject identifies the signed-in user for per-user caches.
func subject(c *gin.Context) string {
	if sess := session(c); sess != nil {
		if id, ok := sess.Identity(); ok {
			return id.Subject
		}
	}
	return ""
}

func claimID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	if raw == "" {
		return 0, models.ErrMissingClaimID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", models.ErrNotFound, raw)
	}
	return id, nil
}

// ShowNewClaim renders intake step one, warning repeat claimants.
func (h *ClaimsHandlers) ShowNewClaim(c *gin.Context) {
	details, err := loader.Run(c.Request.Context(), binder(c), h.Backend.UserDetails)
	if errors.Is(err, loader.ErrStale) || errors.Is(err, api.ErrUnauthorized) {
		h.HandleLoadError(c, "New claim", err)
		return
	}
	if err != nil {
		h.Logger.Warn("Could not load previous claims", zap.Error(err))
	}

	h.RenderPage(c, "New claim - AI Claims", "New Claim", views.NewClaimPage(views.ClaimFormProps{
		Warning: claims.WarningFor(details.ClaimCount()),
	}))
}

func validateClaim(req models.ClaimRequest) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"registration number", req.VehicleRegistrationNumber},
		{"make and model", req.VehicleMakeModel},
		{"first name", req.FirstName},
		{"last name", req.LastName},
		{"policy number", req.PolicyNumber},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", models.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// CreateClaim submits intake step one and moves on to the photo upload.
func (h *ClaimsHandlers) CreateClaim(c *gin.Context) {
	var req models.ClaimRequest
	bindErr := c.ShouldBind(&req)
	if bindErr == nil {
		bindErr = validateClaim(req)
	}
	if bindErr != nil {
		h.RenderPageStatus(c, http.StatusBadRequest, "New claim - AI Claims", "New Claim", views.NewClaimPage(views.ClaimFormProps{
			Form:    req,
			Warning: claims.WarningFor(0),
			Error:   "Please check the form: " + bindErr.Error(),
		}))
		return
	}

	claim, err := h.Backend.CreateClaim(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			h.HandleLoadError(c, "New claim", err)
			return
		}
		h.Logger.Warn("Claim creation failed", zap.Error(err))
		h.RenderPageStatus(c, http.StatusBadGateway, "New claim - AI Claims", "New Claim", views.NewClaimPage(views.ClaimFormProps{
			Form:    req,
			Warning: claims.WarningFor(0),
			Error:   errorMessage(err),
		}))
		return
	}

	h.Logger.Info("Claim created", zap.Int64("claim_id", claim.ID), zap.String("status", claim.Status))
	h.intakes.saveRequest(subject(c), claim.ID, req)
	middleware.Redirect(c, fmt.Sprintf("/new-claim/%d/upload", claim.ID))
}

func (h *ClaimsHandlers) ShowUpload(c *gin.Context) {
	id, err := claimID(c)
	if err != nil {
		h.HandleLoadError(c, "Upload photo", err)
		return
	}
	h.RenderPage(c, "Upload photo - AI Claims", "New Claim", views.UploadPage(views.UploadProps{ClaimID: id}))
}

// readImage loads an uploaded photo, rejecting anything that is not an image.
func readImage(fh *multipart.FileHeader) (api.Upload, error) {
	if fh.Size > MaxImageSize {
		return api.Upload{}, fmt.Errorf("%w: file is larger than 10 MB", models.ErrInvalidImage)
	}
	f, err := fh.Open()
	if err != nil {
		return api.Upload{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return api.Upload{}, fmt.Errorf("failed to read upload: %w", err)
	}
	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return api.Upload{}, models.ErrInvalidImage
	}
	return api.Upload{Filename: fh.Filename, ContentType: ct, Data: data}, nil
}

// SubmitEstimate uploads the damage photo and shows the analysis.
func (h *ClaimsHandlers) SubmitEstimate(c *gin.Context) {
	id, err := claimID(c)
	if err != nil {
		h.HandleLoadError(c, "Upload photo", err)
		return
	}
	failed := func(status int, msg string) {
		h.RenderPageStatus(c, status, "Upload photo - AI Claims", "New Claim", views.UploadPage(views.UploadProps{ClaimID: id, Error: msg}))
	}

	fh, err := c.FormFile("image")
	if err != nil {
		failed(http.StatusBadRequest, models.ErrInvalidImage.Error())
		return
	}
	upload, err := readImage(fh)
	if err != nil {
		failed(http.StatusBadRequest, models.ErrInvalidImage.Error())
		return
	}

	estimate, err := loader.Run(c.Request.Context(), binder(c), func(ctx context.Context) (models.FinalEstimate, error) {
		return h.Backend.SubmitEstimate(ctx, id, upload)
	})
	if err != nil {
		if errors.Is(err, loader.ErrStale) || errors.Is(err, api.ErrUnauthorized) {
			h.HandleLoadError(c, "Upload photo", err)
			return
		}
		h.Logger.Warn("Estimate failed", zap.Int64("claim_id", id), zap.Error(err))
		failed(http.StatusBadGateway, errorMessage(err))
		return
	}

	h.intakes.saveEstimate(subject(c), id, estimate)
	h.RenderPage(c, "Your estimate - AI Claims", "New Claim", views.ResultsPage(views.ResultsProps{
		ClaimID:  id,
		Estimate: estimate,
		Heatmap:  claims.HeatmapFor(estimate.Estimate.LineItems),
	}))
}

func (h *ClaimsHandlers) ListClaims(c *gin.Context) {
	list, err := loader.Run(c.Request.Context(), binder(c), h.Backend.ClaimHistory)
	if err != nil {
		h.HandleLoadError(c, "My claims", err)
		return
	}
	h.RenderPage(c, "My claims - AI Claims", "My Claims", views.ClaimsListPage(list))
}

func (h *ClaimsHandlers) loadClaim(c *gin.Context) (models.ClaimDetail, bool) {
	id, err := claimID(c)
	if err != nil {
		h.HandleLoadError(c, "Claim", err)
		return models.ClaimDetail{}, false
	}
	detail, err := loader.Run(c.Request.Context(), binder(c), func(ctx context.Context) (models.ClaimDetail, error) {
		return h.Backend.GetClaim(ctx, id)
	})
	if err != nil {
		h.HandleLoadError(c, "Claim", err)
		return models.ClaimDetail{}, false
	}
	return detail, true
}

func (h *ClaimsHandlers) ShowClaim(c *gin.Context) {
	detail, ok := h.loadClaim(c)
	if !ok {
		return
	}
	h.RenderPage(c, fmt.Sprintf("Claim #%d - AI Claims", detail.ID), "", views.ClaimDetailPage(views.ClaimDetailProps{
		Claim:     detail,
		Breakdown: claims.BreakdownFor(detail.Status, detail.EstimatedTotal),
		Heatmap:   claims.HeatmapFor(detail.LineItems),
	}))
}

// DownloadReport streams the PDF report for an analysed claim.
func (h *ClaimsHandlers) DownloadReport(c *gin.Context) {
	detail, ok := h.loadClaim(c)
	if !ok {
		return
	}
	if !claims.ReportReady(detail.Status) {
		h.HandleLoadError(c, "Claim report", fmt.Errorf("%w: report not ready", models.ErrNotFound))
		return
	}

	data, err := report.FromClaimDetail(detail, h.now())
	if err == nil {
		var pdf []byte
		pdf, err = report.Render(data)
		if err == nil {
			h.recordReport(c, "success")
			c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.Filename(detail.ID)))
			c.Data(http.StatusOK, "application/pdf", pdf)
			return
		}
	}

	h.recordReport(c, "error")
	if errors.Is(err, report.ErrNoAnalysis) {
		err = fmt.Errorf("%w: %w", models.ErrNotFound, err)
	}
	h.HandleLoadError(c, "Claim report", err)
}

// DownloadEstimateReport builds the PDF for an estimate just shown on the
// results page. Once the estimate has expired the stored claim's report is used.
func (h *ClaimsHandlers) DownloadEstimateReport(c *gin.Context) {
	id, err := claimID(c)
	if err != nil {
		h.HandleLoadError(c, "Claim report", err)
		return
	}
	in, ok := h.intakes.get(subject(c), id)
	if !ok || in.Estimate == nil {
		middleware.Redirect(c, fmt.Sprintf("/claim/%d/report.pdf", id))
		return
	}

	pdf, err := report.Render(report.FromEstimate(id, in.Request, *in.Estimate, h.now()))
	if err != nil {
		h.recordReport(c, "error")
		h.HandleLoadError(c, "Claim report", err)
		return
	}
	h.recordReport(c, "success")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.Filename(id)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *ClaimsHandlers) recordReport(c *gin.Context, outcome string) {
	metrics.Get().ReportRendersTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))
}
