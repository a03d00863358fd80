package services

// ServiceContainer bundles all service facades for dependency injection into
// the HTTP layer.
type ServiceContainer struct {
	User        UserSvcFacade
	Token       TokenSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
	Client      ClientSvcFacade
	Matter      MatterSvcFacade
	Party       PartySvcFacade
	Conflict    ConflictSvcFacade
	Trust       TrustSvcFacade
	Portal      PortalSvcFacade
}
