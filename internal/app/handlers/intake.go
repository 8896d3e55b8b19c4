package handlers

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

// IntakeTTL is how long a fresh estimate stays downloadable from the results page.
const IntakeTTL = 30 * time.Minute

// intake is what the two intake steps learned about one claim.
type intake struct {
	Request  models.ClaimRequest
	Estimate *models.FinalEstimate
}

// intakeCache keeps intake results per user until the stored claim takes over.
type intakeCache struct {
	items *cache.Cache
}

func newIntakeCache(ttl time.Duration) *intakeCache {
	return &intakeCache{items: cache.New(ttl, ttl/3)}
}

func intakeKey(subject string, claimID int64) string {
	return fmt.Sprintf("%s:%d", subject, claimID)
}

func (ic *intakeCache) get(subject string, claimID int64) (intake, bool) {
	v, ok := ic.items.Get(intakeKey(subject, claimID))
	if !ok {
		return intake{}, false
	}
	return v.(intake), true
}

func (ic *intakeCache) saveRequest(subject string, claimID int64, req models.ClaimRequest) {
	ic.items.SetDefault(intakeKey(subject, claimID), intake{Request: req})
}

func (ic *intakeCache) saveEstimate(subject string, claimID int64, fe models.FinalEstimate) {
	in, _ := ic.get(subject, claimID)
	in.Estimate = &fe
	ic.items.SetDefault(intakeKey(subject, claimID), in)
}
