package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"orphancare/internal/model"
	"orphancare/internal/service"
)

// ChildHandler handles children record endpoints.
type ChildHandler struct {
	childService service.ChildService
}

// NewChildHandler creates a new child handler.
func NewChildHandler(childService service.ChildService) *ChildHandler {
	return &ChildHandler{childService: childService}
}

// ChildRequest represents a create/update payload for a child record.
type ChildRequest struct {
	FirstName       string    `json:"firstName" validate:"required"`
	LastName        string    `json:"lastName" validate:"required"`
	Gender          string    `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth     time.Time `json:"dateOfBirth" validate:"required"`
	EntryDate       time.Time `json:"entryDate"`
	EducationLevel  string    `json:"educationLevel"`
	GuardianName    string    `json:"guardianName"`
	GuardianContact string    `json:"guardianContact"`
	Background      string    `json:"background"`
}

func (r *ChildRequest) toModel() *model.Child {
	return &model.Child{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Gender:          r.Gender,
		DateOfBirth:     r.DateOfBirth,
		EntryDate:       r.EntryDate,
		EducationLevel:  r.EducationLevel,
		GuardianName:    r.GuardianName,
		GuardianContact: r.GuardianContact,
		Background:      r.Background,
	}
}

// CreateChild godoc
// @Summary Register a child record
// @Tags children
// @Accept json
// @Produce json
// @Param request body ChildRequest true "Child data"
// @Success 201 {object} model.Child
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /children [post]
func (h *ChildHandler) CreateChild(c echo.Context) error {
	var req ChildRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	child, err := h.childService.CreateChild(c.Request().Context(), req.toModel())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, child)
}

// ListChildren godoc
// @Summary List children records
// @Tags children
// @Produce json
// @Success 200 {array} model.Child
// @Security BearerAuth
// @Router /children [get]
func (h *ChildHandler) ListChildren(c echo.Context) error {
	children, err := h.childService.ListChildren(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, children)
}

// GetChild godoc
// @Summary Get a child record by id
// @Tags children
// @Produce json
// @Param id path string true "Child ID"
// @Success 200 {object} model.Child
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /children/{id} [get]
func (h *ChildHandler) GetChild(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid child id")
	}

	child, err := h.childService.GetChild(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, child)
}

// UpdateChild godoc
// @Summary Update a child record
// @Tags children
// @Accept json
// @Produce json
// @Param id path string true "Child ID"
// @Param request body ChildRequest true "Child data"
// @Success 200 {object} model.Child
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /children/{id} [put]
func (h *ChildHandler) UpdateChild(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid child id")
	}

	var req ChildRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	child := req.toModel()
	child.ID = id
	updated, err := h.childService.UpdateChild(c.Request().Context(), child)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteChild godoc
// @Summary Delete a child record
// @Tags children
// @Produce json
// @Param id path string true "Child ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /children/{id} [delete]
func (h *ChildHandler) DeleteChild(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid child id")
	}

	if err := h.childService.DeleteChild(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Child record deleted successfully",
	})
}
