package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"orphancare/internal/model"
	"orphancare/internal/service"
)

// DonationHandler handles donation endpoints.
type DonationHandler struct {
	donationService service.DonationService
}

// NewDonationHandler creates a new donation handler.
func NewDonationHandler(donationService service.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// DonationRequest represents a create/update payload for a donation.
type DonationRequest struct {
	Type         string          `json:"type" validate:"required,oneof=monetary food clothing supplies other"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency" validate:"omitempty,len=3"`
	DonorName    string          `json:"donorName" validate:"required"`
	DonorEmail   string          `json:"donorEmail" validate:"omitempty,email"`
	IsAnonymous  bool            `json:"isAnonymous"`
	DonationDate time.Time       `json:"donationDate"`
	Notes        string          `json:"notes"`
}

func (r *DonationRequest) toModel() *model.Donation {
	return &model.Donation{
		Type:         model.DonationType(r.Type),
		Amount:       r.Amount,
		Currency:     r.Currency,
		DonorName:    r.DonorName,
		DonorEmail:   r.DonorEmail,
		IsAnonymous:  r.IsAnonymous,
		DonationDate: r.DonationDate,
		Notes:        r.Notes,
	}
}

// CreateDonation godoc
// @Summary Record a donation
// @Tags donations
// @Accept json
// @Produce json
// @Param request body DonationRequest true "Donation data"
// @Success 201 {object} model.Donation
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /donations [post]
func (h *DonationHandler) CreateDonation(c echo.Context) error {
	var req DonationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Type == string(model.DonationTypeMonetary) && req.Amount.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "monetary donations require an amount")
	}

	donation, err := h.donationService.CreateDonation(c.Request().Context(), req.toModel())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, donation)
}

// ListDonations godoc
// @Summary List donations
// @Tags donations
// @Produce json
// @Success 200 {array} model.Donation
// @Security BearerAuth
// @Router /donations [get]
func (h *DonationHandler) ListDonations(c echo.Context) error {
	donations, err := h.donationService.ListDonations(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, donations)
}

// GetDonation godoc
// @Summary Get a donation by id
// @Tags donations
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} model.Donation
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /donations/{id} [get]
func (h *DonationHandler) GetDonation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid donation id")
	}

	donation, err := h.donationService.GetDonation(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, donation)
}

// UpdateDonation godoc
// @Summary Update a donation
// @Tags donations
// @Accept json
// @Produce json
// @Param id path string true "Donation ID"
// @Param request body DonationRequest true "Donation data"
// @Success 200 {object} model.Donation
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /donations/{id} [put]
func (h *DonationHandler) UpdateDonation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid donation id")
	}

	var req DonationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	donation := req.toModel()
	donation.ID = id
	updated, err := h.donationService.UpdateDonation(c.Request().Context(), donation)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteDonation godoc
// @Summary Delete a donation
// @Tags donations
// @Produce json
// @Param id path string true "Donation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /donations/{id} [delete]
func (h *DonationHandler) DeleteDonation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid donation id")
	}

	if err := h.donationService.DeleteDonation(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Donation deleted successfully",
	})
}
