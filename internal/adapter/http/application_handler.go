package http

import (
	"net/http"

	"loan-origination/internal/usecase/application"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ApplicationHandler struct{ uc *application.Usecase }

func NewApplicationHandler(uc *application.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type createApplicationReq struct {
	Name       string          `json:"name"        validate:"required,max=12"`
	CellPhone  string          `json:"cell_phone"  validate:"required,max=23,phone"`
	Email      string          `json:"email"       validate:"omitempty,max=50,email"`
	HopeAmount decimal.Decimal `json:"hope_amount" validate:"required,dgt=0,dlte=9999999999999.99,dec2"`
}

// Absent keys decode to nil and keep the stored value. A present value is
// validated like on create; only email may be sent as "" to clear it.
type updateApplicationReq struct {
	Name       *string          `json:"name"        validate:"omitnil,min=1,max=12"`
	CellPhone  *string          `json:"cell_phone"  validate:"omitnil,max=23,phone"`
	Email      *string          `json:"email"       validate:"omitnil,max=50,email_or_blank"`
	HopeAmount *decimal.Decimal `json:"hope_amount" validate:"omitnil,dgt=0,dlte=9999999999999.99,dec2"`
}

type acceptTermsReq struct {
	AcceptTermsIDs []uint64 `json:"accept_terms_ids" validate:"required,min=1,dive,gt=0"`
}

func (h *ApplicationHandler) Create(c echo.Context) error {
	var req createApplicationReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Create(c.Request().Context(), application.CreateApplicationInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusCreated, dto)
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "application_id")
	if err != nil {
		return respondError(c, err)
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *ApplicationHandler) Update(c echo.Context) error {
	id, err := pathID(c, "application_id")
	if err != nil {
		return respondError(c, err)
	}
	var req updateApplicationReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Update(c.Request().Context(), id, application.UpdateApplicationInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *ApplicationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "application_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, nil)
}

func (h *ApplicationHandler) AcceptTerms(c echo.Context) error {
	id, err := pathID(c, "application_id")
	if err != nil {
		return respondError(c, err)
	}
	var req acceptTermsReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	accepted, err := h.uc.AcceptTerms(c.Request().Context(), id, application.AcceptTermsInput{TermsIDs: req.AcceptTermsIDs})
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, accepted)
}
