package models

// UserDetails is the signed-in user's account summary.
type UserDetails struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	ProfilePictureURL string  `json:"profilePictureUrl"`
	ClaimIDs          []int64 `json:"claimIds"`
}

// ClaimCount is the number of claims the user has already filed.
func (u UserDetails) ClaimCount() int {
	return len(u.ClaimIDs)
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type AuthResponse struct {
	JWT string `json:"jwt"`
}
