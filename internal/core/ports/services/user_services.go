package services

import (
	"context"
	"time"

	"github.com/atticuslegal/practice_mgmt_app/internal/core/domain"
	"github.com/atticuslegal/practice_mgmt_app/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// UserSvcFacade defines operations on staff users.
type UserSvcFacade interface {
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	// FindOrCreateGoogleUser returns the user linked to the given Google
	// subject, creating one on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, providerID string, email string, name string) (*domain.User, error)
}

// TokenSvcFacade issues signed session tokens for staff and portal clients.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GeneratePortalToken(ctx context.Context, client *domain.Client) (string, time.Time, error)
}

// GoogleOAuthSvcFacade wraps the Google OAuth code-exchange flow used for
// staff sign-in.
type GoogleOAuthSvcFacade interface {
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
}
