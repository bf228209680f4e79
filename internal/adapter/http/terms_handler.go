package http

import (
	"net/http"

	"loan-origination/internal/usecase/terms"

	"github.com/labstack/echo/v4"
)

type TermsHandler struct{ uc *terms.Usecase }

func NewTermsHandler(uc *terms.Usecase) *TermsHandler { return &TermsHandler{uc: uc} }

type createTermsReq struct {
	Name           string `json:"name"             validate:"required,max=255"`
	TermsDetailURL string `json:"terms_detail_url" validate:"required,max=255,url"`
}

func (h *TermsHandler) Create(c echo.Context) error {
	var req createTermsReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Create(c.Request().Context(), terms.CreateTermsInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusCreated, dto)
}

func (h *TermsHandler) List(c echo.Context) error {
	list, err := h.uc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, list)
}
