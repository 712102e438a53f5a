package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
	"github.com/medibill/diagnostics_billing_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// branchHandler handles HTTP requests related to branches.
type branchHandler struct {
	branchService portssvc.BranchSvcFacade
}

func newBranchHandler(bs portssvc.BranchSvcFacade) *branchHandler {
	return &branchHandler{
		branchService: bs,
	}
}

// registerBranchRoutes registers all branch-related routes.
func registerBranchRoutes(rg *gin.RouterGroup, branchService portssvc.BranchSvcFacade) {
	h := newBranchHandler(branchService)

	branches := rg.Group("/branches")
	{
		branches.POST("", h.createBranch)    // Admin only
		branches.GET("", h.listBranches)     // Any authenticated user
		branches.GET("/:id", h.getBranch)    // Any authenticated user
		branches.PUT("/:id", h.updateBranch) // Admin only
	}
}

// createBranch godoc
// @Summary Create a new branch
// @Description Creates a new diagnostics centre branch. Admin only.
// @Tags branches
// @Accept  json
// @Produce  json
// @Param   branch body dto.CreateBranchRequest true "Branch details"
// @Success 201 {object} dto.BranchResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 409 {object} ErrorResponse "Branch code already exists"
// @Security BearerAuth
// @Router /branches [post]
func (h *branchHandler) createBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create branch", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	logger.Info("Branch created", slog.String("branch_id", branch.BranchID))
	c.JSON(http.StatusCreated, dto.ToBranchResponse(branch))
}

// listBranches godoc
// @Summary List branches
// @Description Retrieves all branches.
// @Tags branches
// @Produce  json
// @Success 200 {object} dto.ListBranchesResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /branches [get]
func (h *branchHandler) listBranches(c *gin.Context) {
	branches, err := h.branchService.ListBranches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListBranchesResponse(branches))
}

// getBranch godoc
// @Summary Get a branch by ID
// @Description Retrieves details for a specific branch.
// @Tags branches
// @Produce  json
// @Param   id path string true "Branch ID"
// @Success 200 {object} dto.BranchResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Branch not found"
// @Security BearerAuth
// @Router /branches/{id} [get]
func (h *branchHandler) getBranch(c *gin.Context) {
	branchID := c.Param("id")

	branch, err := h.branchService.GetBranchByID(c.Request.Context(), branchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

// updateBranch godoc
// @Summary Update a branch
// @Description Updates a branch's details. Admin only.
// @Tags branches
// @Accept  json
// @Produce  json
// @Param   id path string true "Branch ID"
// @Param   branch body dto.UpdateBranchRequest true "Fields to update"
// @Success 200 {object} dto.BranchResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Branch not found"
// @Security BearerAuth
// @Router /branches/{id} [put]
func (h *branchHandler) updateBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("id")

	var req dto.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	branch, err := h.branchService.UpdateBranch(c.Request.Context(), branchID, req, requestingUserID)
	if err != nil {
		logger.Error("Failed to update branch", slog.String("error", err.Error()), slog.String("branch_id", branchID))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}
