package services

import (
	portsrepo "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/services"
	"github.com/atticuslegal/practice_mgmt_app/internal/platform/config"
)

// NewServiceContainer wires all services with their repository dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)
	container.Client = NewClientService(repos.ClientRepo)
	container.Matter = NewMatterService(repos.MatterRepo, repos.ClientRepo)
	container.Party = NewPartyService(repos.PartyRepo)
	container.Conflict = NewConflictService(repos.ConflictRepo, repos.PartyRepo, repos.ClientRepo, repos.MatterRepo)
	container.Trust = NewTrustService(repos.TrustRepo, repos.ClientRepo)
	container.Portal = NewPortalService(repos.ClientRepo, repos.MatterRepo, repos.TrustRepo)

	return container
}
