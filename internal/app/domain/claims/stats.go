package claims

import (
	"sort"

	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

// UserClaims is the number of claims filed by one account.
type UserClaims struct {
	Name  string
	Email string
	Count int
}

// DashboardStats summarises every claim for the admin dashboard.
type DashboardStats struct {
	Total       int
	Completed   int
	Pending     int
	UniqueUsers int
	PerUser     []UserClaims
}

// Summarise computes dashboard metrics. Users are keyed by email and sorted by
// claim count, most active first.
func Summarise(all []models.ClaimSummary) DashboardStats {
	stats := DashboardStats{Total: len(all)}
	byUser := make(map[string]*UserClaims)

	for _, c := range all {
		if IsDecided(c.Status) {
			stats.Completed++
		} else {
			stats.Pending++
		}

		key := c.UserEmail
		if key == "" {
			key = c.UserName
		}
		u, ok := byUser[key]
		if !ok {
			u = &UserClaims{Name: c.UserName, Email: c.UserEmail}
			byUser[key] = u
		}
		u.Count++
	}

	stats.UniqueUsers = len(byUser)
	stats.PerUser = make([]UserClaims, 0, len(byUser))
	for _, u := range byUser {
		stats.PerUser = append(stats.PerUser, *u)
	}
	sort.Slice(stats.PerUser, func(i, j int) bool {
		if stats.PerUser[i].Count != stats.PerUser[j].Count {
			return stats.PerUser[i].Count > stats.PerUser[j].Count
		}
		return stats.PerUser[i].Email < stats.PerUser[j].Email
	})
	return stats
}
