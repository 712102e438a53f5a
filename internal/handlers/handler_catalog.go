package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/medibill/diagnostics_billing_app/internal/core/ports/services"
	"github.com/medibill/diagnostics_billing_app/internal/dto"
	"github.com/medibill/diagnostics_billing_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// catalogHandler handles HTTP requests for labs, package lists and packages.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{
		catalogService: cs,
	}
}

// registerCatalogRoutes registers all catalog-related routes.
func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(catalogService)

	labs := rg.Group("/labs")
	{
		labs.POST("", h.createLab) // Admin only
		labs.GET("", h.listLabs)
		labs.GET("/:id", h.getLab)
		labs.PUT("/:id", h.updateLab) // Admin only
		labs.PUT("/:id/package-lists/:listID", h.linkPackageList)      // Admin only
		labs.DELETE("/:id/package-lists/:listID", h.unlinkPackageList) // Admin only
	}

	lists := rg.Group("/package-lists")
	{
		lists.POST("", h.createPackageList) // Admin only
		lists.GET("", h.listPackageLists)   // Visible lists for the caller
		lists.GET("/:id", h.getPackageList)
		lists.PUT("/:id", h.updatePackageList)       // Admin only
		lists.POST("/:id/packages", h.createPackage) // Admin only
		lists.GET("/:id/packages", h.listPackages)
	}

	packages := rg.Group("/packages")
	{
		packages.PUT("/:id", h.updatePackage) // Admin only
	}
}

// createLab godoc
// @Summary Create a lab
// @Description Creates a processing lab. Admin only.
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   lab body dto.CreateLabRequest true "Lab details"
// @Success 201 {object} dto.LabResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /labs [post]
func (h *catalogHandler) createLab(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	lab, err := h.catalogService.CreateLab(c.Request.Context(), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create lab", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToLabResponse(lab))
}

// listLabs godoc
// @Summary List labs
// @Tags catalog
// @Produce  json
// @Success 200 {object} dto.ListLabsResponse
// @Security BearerAuth
// @Router /labs [get]
func (h *catalogHandler) listLabs(c *gin.Context) {
	labs, err := h.catalogService.ListLabs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListLabsResponse(labs))
}

// getLab godoc
// @Summary Get a lab by ID
// @Tags catalog
// @Produce  json
// @Param   id path string true "Lab ID"
// @Success 200 {object} dto.LabResponse
// @Failure 404 {object} ErrorResponse "Lab not found"
// @Security BearerAuth
// @Router /labs/{id} [get]
func (h *catalogHandler) getLab(c *gin.Context) {
	lab, err := h.catalogService.GetLabByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLabResponse(lab))
}

// updateLab godoc
// @Summary Update a lab
// @Description Updates a lab's details. Admin only.
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   id path string true "Lab ID"
// @Param   lab body dto.UpdateLabRequest true "Fields to update"
// @Success 200 {object} dto.LabResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Lab not found"
// @Security BearerAuth
// @Router /labs/{id} [put]
func (h *catalogHandler) updateLab(c *gin.Context) {
	var req dto.UpdateLabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	lab, err := h.catalogService.UpdateLab(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLabResponse(lab))
}

// linkPackageList godoc
// @Summary Attach a package list to a lab
// @Description Attaches a package list to a lab. Idempotent. Admin only.
// @Tags catalog
// @Produce  json
// @Param   id path string true "Lab ID"
// @Param   listID path string true "Package list ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Lab or package list not found"
// @Security BearerAuth
// @Router /labs/{id}/package-lists/{listID} [put]
func (h *catalogHandler) linkPackageList(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	if err := h.catalogService.LinkLabPackageList(c.Request.Context(), c.Param("id"), c.Param("listID"), requestingUserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// unlinkPackageList godoc
// @Summary Detach a package list from a lab
// @Tags catalog
// @Produce  json
// @Param   id path string true "Lab ID"
// @Param   listID path string true "Package list ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /labs/{id}/package-lists/{listID} [delete]
func (h *catalogHandler) unlinkPackageList(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	if err := h.catalogService.UnlinkLabPackageList(c.Request.Context(), c.Param("id"), c.Param("listID"), requestingUserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// createPackageList godoc
// @Summary Create a package list
// @Description Creates a price list. Admin only.
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   list body dto.CreatePackageListRequest true "Package list details"
// @Success 201 {object} dto.PackageListResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /package-lists [post]
func (h *catalogHandler) createPackageList(c *gin.Context) {
	var req dto.CreatePackageListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	list, err := h.catalogService.CreatePackageList(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPackageListResponse(list))
}

// listPackageLists godoc
// @Summary List package lists visible to the caller
// @Description Staff see every list; clients see only their granted lists.
// @Tags catalog
// @Produce  json
// @Success 200 {object} dto.ListPackageListsResponse
// @Security BearerAuth
// @Router /package-lists [get]
func (h *catalogHandler) listPackageLists(c *gin.Context) {
	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	lists, err := h.catalogService.ListVisiblePackageLists(c.Request.Context(), requestingUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListPackageListsResponse(lists))
}

// getPackageList godoc
// @Summary Get a package list by ID
// @Tags catalog
// @Produce  json
// @Param   id path string true "Package list ID"
// @Success 200 {object} dto.PackageListResponse
// @Failure 404 {object} ErrorResponse "Package list not found"
// @Security BearerAuth
// @Router /package-lists/{id} [get]
func (h *catalogHandler) getPackageList(c *gin.Context) {
	list, err := h.catalogService.GetPackageListByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPackageListResponse(list))
}

// updatePackageList godoc
// @Summary Update a package list
// @Description Updates a package list's details. Admin only.
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   id path string true "Package list ID"
// @Param   list body dto.UpdatePackageListRequest true "Fields to update"
// @Success 200 {object} dto.PackageListResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Package list not found"
// @Security BearerAuth
// @Router /package-lists/{id} [put]
func (h *catalogHandler) updatePackageList(c *gin.Context) {
	var req dto.UpdatePackageListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	list, err := h.catalogService.UpdatePackageList(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPackageListResponse(list))
}

// createPackage godoc
// @Summary Add a package to a package list
// @Description Adds a lab test package with its MRP and B2B price. Admin only.
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   id path string true "Package list ID"
// @Param   package body dto.CreatePackageRequest true "Package details"
// @Success 201 {object} dto.PackageResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Package list not found"
// @Security BearerAuth
// @Router /package-lists/{id}/packages [post]
func (h *catalogHandler) createPackage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	pkg, err := h.catalogService.CreatePackage(c.Request.Context(), c.Param("id"), req, creatorUserID)
	if err != nil {
		logger.Error("Failed to create package", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPackageResponse(pkg))
}

// listPackages godoc
// @Summary List packages in a package list
// @Tags catalog
// @Produce  json
// @Param   id path string true "Package list ID"
// @Success 200 {object} dto.ListPackagesResponse
// @Failure 404 {object} ErrorResponse "Package list not found"
// @Security BearerAuth
// @Router /package-lists/{id}/packages [get]
func (h *catalogHandler) listPackages(c *gin.Context) {
	packages, err := h.catalogService.ListPackages(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListPackagesResponse(packages))
}

// updatePackage godoc
// @Summary Update a package
// @Description Updates a package's name or prices. Admin only.
// @Tags catalog
// @Accept  json
// @Produce  json
// @Param   id path string true "Package ID"
// @Param   package body dto.UpdatePackageRequest true "Fields to update"
// @Success 200 {object} dto.PackageResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Package not found"
// @Security BearerAuth
// @Router /packages/{id} [put]
func (h *catalogHandler) updatePackage(c *gin.Context) {
	var req dto.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return
	}

	pkg, err := h.catalogService.UpdatePackage(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPackageResponse(pkg))
}
