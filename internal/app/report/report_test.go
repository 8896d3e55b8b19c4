package report

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

func jpegBase64(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for x := 0; x < 8; x++ {
		for y := 0; y < 6; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x * 20), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

var reportDate = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func sampleEstimate(image string) models.FinalEstimate {
	return models.FinalEstimate{
		Analysis: models.Analysis{
			IsDamaged:        true,
			DamageConfidence: 0.91,
			DamageSeverity:   models.DamageSeverity{SeverityLabel: "moderate"},
			PlottedImage:     image,
		},
		Estimate: models.Estimate{
			LineItems: []models.LineItem{
				{Part: "Front Bumper", DamageType: "Dent", Action: "Repair", Amount: 4000},
				{Part: "Bonnet", DamageType: "Scratch", Action: "Paint", Amount: 1400},
			},
			Total: 5832,
		},
	}
}

func TestFromEstimate(t *testing.T) {
	req := models.ClaimRequest{
		FirstName:                 "Asha",
		LastName:                  "Rao",
		VehicleMakeModel:          "Maruti Swift",
		VehicleRegistrationNumber: "KA01AB1234",
	}

	data := FromEstimate(17, req, sampleEstimate(""), reportDate)

	assert.Equal(t, int64(17), data.ClaimID)
	assert.Equal(t, "Asha Rao", data.Client)
	assert.Equal(t, "Maruti Swift (KA01AB1234)", data.Vehicle)
	assert.InDelta(t, 5400.0, data.Subtotal, 1e-9)
	assert.Equal(t, "moderate", data.Severity)
	assert.Len(t, data.LineItems, 2)
}

func TestFromClaimDetail(t *testing.T) {
	_, err := FromClaimDetail(models.ClaimDetail{ID: 3}, reportDate)
	assert.ErrorIs(t, err, ErrNoAnalysis)

	data, err := FromClaimDetail(models.ClaimDetail{
		ID:               3,
		VehicleMakeModel: "Honda City",
		EstimatedTotal:   1080,
		AnalysisResponse: &models.Analysis{IsDamaged: true, DamageConfidence: 0.5},
	}, reportDate)
	require.NoError(t, err)
	assert.Equal(t, "Honda City", data.Vehicle)
	assert.True(t, data.DamageDetected)
	assert.InDelta(t, 1000.0, data.Subtotal, 1e-9)
}

func TestRender(t *testing.T) {
	t.Run("with visual evidence", func(t *testing.T) {
		data := FromEstimate(1, models.ClaimRequest{FirstName: "Asha"}, sampleEstimate(jpegBase64(t)), reportDate)

		out, err := Render(data)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	})

	t.Run("data url image", func(t *testing.T) {
		data := FromEstimate(1, models.ClaimRequest{}, sampleEstimate("data:image/jpeg;base64,"+jpegBase64(t)), reportDate)

		out, err := Render(data)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	})

	t.Run("without damage", func(t *testing.T) {
		out, err := Render(Data{ClaimID: 2, Generated: reportDate})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	})

	t.Run("invalid image", func(t *testing.T) {
		data := FromEstimate(1, models.ClaimRequest{}, sampleEstimate("not base64!"), reportDate)

		_, err := Render(data)
		assert.ErrorIs(t, err, models.ErrInvalidImage)
	})
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Claim_Report_42.pdf", Filename(42))
}
