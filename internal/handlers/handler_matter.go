package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/atticuslegal/practice_mgmt_app/internal/core/ports/services"
	"github.com/atticuslegal/practice_mgmt_app/internal/dto"
	"github.com/atticuslegal/practice_mgmt_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type matterHandler struct {
	matterService portssvc.MatterSvcFacade
}

func registerMatterRoutes(rg *gin.RouterGroup, matterService portssvc.MatterSvcFacade) {
	h := &matterHandler{matterService: matterService}

	matters := rg.Group("/matters")
	{
		matters.POST("", h.createMatter)
		matters.GET("/:id", h.getMatter)
		matters.GET("", h.listMatters)
	}
}

// createMatter godoc
// @Summary Open a matter
// @Description Opens a new legal matter for an existing client.
// @Tags matters
// @Accept json
// @Produce json
// @Param matter body dto.CreateMatterRequest true "Matter details"
// @Success 201 {object} dto.MatterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Client not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /matters [post]
func (h *matterHandler) createMatter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	matter, err := h.matterService.CreateMatter(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create matter")
		return
	}

	logger.Info("Matter opened", slog.String("matter_id", matter.MatterID), slog.String("client_id", matter.ClientID))
	c.JSON(http.StatusCreated, dto.ToMatterResponse(matter))
}

// getMatter godoc
// @Summary Get a matter by ID
// @Tags matters
// @Produce json
// @Param id path string true "Matter ID"
// @Success 200 {object} dto.MatterResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /matters/{id} [get]
func (h *matterHandler) getMatter(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	matter, err := h.matterService.GetMatterByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve matter")
		return
	}

	c.JSON(http.StatusOK, dto.ToMatterResponse(matter))
}

// listMatters godoc
// @Summary List matters
// @Description Lists matters owned by the authenticated user, newest first.
// @Tags matters
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} dto.MatterResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /matters [get]
func (h *matterHandler) listMatters(c *gin.Context) {
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

	matters, err := h.matterService.ListMatters(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list matters")
		return
	}

	c.JSON(http.StatusOK, dto.ToListMatterResponse(matters))
}
