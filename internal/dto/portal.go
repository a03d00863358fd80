package dto

import "time"

// PortalLoginRequest defines portal login credentials: a client's email plus
// the access code handed over by their attorney.
type PortalLoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	AccessCode string `json:"accessCode" binding:"required"`
}

// PortalLoginResponse carries a freshly issued portal session token.
type PortalLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	ClientID  string    `json:"clientID"`
}

// PortalProfileResponse is what a portal session sees about itself.
type PortalProfileResponse struct {
	ClientID    string `json:"clientID"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName,omitempty"`
	Email       string `json:"email,omitempty"`
}
