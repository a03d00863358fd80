package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/services"
	"github.com/atticuslegal/practice_mgmt_app/internal/dto"
	"github.com/atticuslegal/practice_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// conflictHandler handles HTTP requests for conflict screening.
type conflictHandler struct {
	conflictService portssvc.ConflictSvcFacade
}

func registerConflictRoutes(rg *gin.RouterGroup, conflictService portssvc.ConflictSvcFacade) {
	h := &conflictHandler{conflictService: conflictService}

	checks := rg.Group("/conflict-checks")
	{
		checks.POST("", h.runCheck)
		checks.GET("/:id", h.getCheck)
		checks.GET("", h.listChecks)
		checks.POST("/:id/waivers", h.createWaiver)
		checks.GET("/:id/waivers", h.listWaivers)
	}
}

// runCheck godoc
// @Summary Run a conflict check
// @Description Screens the given names and companies against the firm-wide party and client records. Every run writes a new immutable check record with its disposition.
// @Tags conflict-checks
// @Accept json
// @Produce json
// @Param check body dto.RunConflictCheckRequest true "Candidate names and companies"
// @Success 201 {object} dto.ConflictCheckResponse
// @Failure 400 {object} ErrorResponse "No usable search terms"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Referenced client or matter not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /conflict-checks [post]
func (h *conflictHandler) runCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RunConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	check, err := h.conflictService.RunConflictCheck(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to run conflict check")
		return
	}

	logger.Info("Conflict check completed",
		slog.String("check_id", check.CheckID),
		slog.String("status", string(check.Status)),
		slog.Int("conflict_count", check.ConflictCount))
	c.JSON(http.StatusCreated, dto.ToConflictCheckResponse(check))
}

// getCheck godoc
// @Summary Get a conflict check by ID
// @Tags conflict-checks
// @Produce json
// @Param id path string true "Check ID"
// @Success 200 {object} dto.ConflictCheckResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /conflict-checks/{id} [get]
func (h *conflictHandler) getCheck(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	check, err := h.conflictService.GetConflictCheck(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve conflict check")
		return
	}

	c.JSON(http.StatusOK, dto.ToConflictCheckResponse(check))
}

// listChecks godoc
// @Summary List conflict checks
// @Description Lists screening runs performed by the authenticated user, newest first.
// @Tags conflict-checks
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.ConflictCheckResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /conflict-checks [get]
func (h *conflictHandler) listChecks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid pagination params: " + err.Error()})
		return
	}

	checks, err := h.conflictService.ListConflictChecks(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list conflict checks")
		return
	}

	c.JSON(http.StatusOK, dto.ToListConflictCheckResponse(checks))
}

// createWaiver godoc
// @Summary Record a conflict waiver
// @Description Records an informed-consent waiver against a check whose status is CONFLICT_FOUND and transitions the check to WAIVED.
// @Tags conflict-checks
// @Accept json
// @Produce json
// @Param id path string true "Check ID"
// @Param waiver body dto.CreateWaiverRequest true "Waiver details"
// @Success 201 {object} dto.WaiverResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Check is not in CONFLICT_FOUND status"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /conflict-checks/{id}/waivers [post]
func (h *conflictHandler) createWaiver(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWaiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	checkID := c.Param("id")
	waiver, err := h.conflictService.CreateWaiver(c.Request.Context(), checkID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record waiver")
		return
	}

	logger.Info("Conflict waiver recorded", slog.String("waiver_id", waiver.WaiverID), slog.String("check_id", checkID))
	c.JSON(http.StatusCreated, dto.ToWaiverResponse(waiver))
}

// listWaivers godoc
// @Summary List waivers for a conflict check
// @Tags conflict-checks
// @Produce json
// @Param id path string true "Check ID"
// @Success 200 {array} dto.WaiverResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /conflict-checks/{id}/waivers [get]
func (h *conflictHandler) listWaivers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	waivers, err := h.conflictService.ListWaivers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list waivers")
		return
	}

	res := make([]dto.WaiverResponse, len(waivers))
	for i := range waivers {
		res[i] = dto.ToWaiverResponse(&waivers[i])
	}
	c.JSON(http.StatusOK, res)
}
