package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/services"
	"github.com/atticuslegal/practice_mgmt_app/internal/dto"
	"github.com/atticuslegal/practice_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// portalHandler handles the client-portal surface. Portal sessions are
// read-only: clients see their own matters and trust balances, nothing else.
type portalHandler struct {
	portalService portssvc.PortalSvcFacade
	tokenService  portssvc.TokenSvcFacade
}

// registerPortalLoginRoute sets up the public portal login endpoint,
// rate limited per client IP.
func registerPortalLoginRoute(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := &portalHandler{portalService: services.Portal, tokenService: services.Token}

	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)

	r.POST("/portal/login", middleware.RateLimit(ipLimiter), h.login)
}

// registerPortalRoutes sets up the authenticated portal routes.
func registerPortalRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &portalHandler{portalService: services.Portal, tokenService: services.Token}

	rg.GET("/me", h.getProfile)
	rg.GET("/matters", h.listMatters)
	rg.GET("/ledgers", h.listLedgers)
}

// login godoc
// @Summary Portal login
// @Description Authenticates a client with their email and access code and returns a portal session token.
// @Tags portal
// @Accept json
// @Produce json
// @Param login body dto.PortalLoginRequest true "Portal credentials"
// @Success 200 {object} dto.PortalLoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Failure 500 {object} ErrorResponse
// @Router /portal/login [post]
func (h *portalHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PortalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	client, err := h.portalService.AuthenticatePortalClient(c.Request.Context(), req.Email, req.AccessCode)
	if err != nil {
		// Same message whether the email or the code was wrong.
		logger.Warn("Portal login failed", slog.String("email", req.Email))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or access code"})
		return
	}

	token, expiresAt, err := h.tokenService.GeneratePortalToken(c.Request.Context(), client)
	if err != nil {
		logger.Error("Failed to generate portal token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.PortalLoginResponse{Token: token, ExpiresAt: expiresAt, ClientID: client.ClientID})
}

// getProfile godoc
// @Summary Portal profile
// @Description Returns the authenticated portal client's own profile.
// @Tags portal
// @Produce json
// @Success 200 {object} dto.PortalProfileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /portal/me [get]
func (h *portalHandler) getProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pc, ok := middleware.GetPortalClientFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	client, err := h.portalService.GetPortalProfile(c.Request.Context(), pc.ClientID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve profile")
		return
	}

	c.JSON(http.StatusOK, dto.PortalProfileResponse{
		ClientID:    client.ClientID,
		Name:        client.Name,
		CompanyName: client.CompanyName,
		Email:       client.Email,
	})
}

// listMatters godoc
// @Summary Portal matters
// @Description Lists the authenticated client's own matters.
// @Tags portal
// @Produce json
// @Success 200 {array} dto.MatterResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /portal/matters [get]
func (h *portalHandler) listMatters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pc, ok := middleware.GetPortalClientFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	matters, err := h.portalService.ListPortalMatters(c.Request.Context(), pc.ClientID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list matters")
		return
	}

	c.JSON(http.StatusOK, dto.ToListMatterResponse(matters))
}

// listLedgers godoc
// @Summary Portal trust balances
// @Description Lists the authenticated client's trust ledgers and balances.
// @Tags portal
// @Produce json
// @Success 200 {array} dto.LedgerResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /portal/ledgers [get]
func (h *portalHandler) listLedgers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pc, ok := middleware.GetPortalClientFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	ledgers, err := h.portalService.ListPortalLedgers(c.Request.Context(), pc.ClientID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list trust balances")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerResponse(ledgers))
}
