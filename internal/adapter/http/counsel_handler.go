package http

import (
	"net/http"

	"loan-origination/internal/usecase/counsel"

	"github.com/labstack/echo/v4"
)

type CounselHandler struct{ uc *counsel.Usecase }

func NewCounselHandler(uc *counsel.Usecase) *CounselHandler { return &CounselHandler{uc: uc} }

type createCounselReq struct {
	Name          string `json:"name"           validate:"required,max=12"`
	CellPhone     string `json:"cell_phone"     validate:"required,max=23,phone"`
	Email         string `json:"email"          validate:"omitempty,max=50,email"`
	Memo          string `json:"memo"`
	Address       string `json:"address"        validate:"max=50"`
	AddressDetail string `json:"address_detail" validate:"max=50"`
	ZipCode       string `json:"zip_code"       validate:"omitempty,len=5,numeric"`
}

// Same pointer rules as updateApplicationReq; memo and the address fields
// may be cleared with "".
type updateCounselReq struct {
	Name          *string `json:"name"           validate:"omitnil,min=1,max=12"`
	CellPhone     *string `json:"cell_phone"     validate:"omitnil,max=23,phone"`
	Email         *string `json:"email"          validate:"omitnil,max=50,email_or_blank"`
	Memo          *string `json:"memo"`
	Address       *string `json:"address"        validate:"omitnil,max=50"`
	AddressDetail *string `json:"address_detail" validate:"omitnil,max=50"`
	ZipCode       *string `json:"zip_code"       validate:"omitnil,len=5,numeric"`
}

func (h *CounselHandler) Create(c echo.Context) error {
	var req createCounselReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Create(c.Request().Context(), counsel.CreateCounselInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusCreated, dto)
}

func (h *CounselHandler) Get(c echo.Context) error {
	id, err := pathID(c, "counsel_id")
	if err != nil {
		return respondError(c, err)
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *CounselHandler) Update(c echo.Context) error {
	id, err := pathID(c, "counsel_id")
	if err != nil {
		return respondError(c, err)
	}
	var req updateCounselReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Update(c.Request().Context(), id, counsel.UpdateCounselInput(req))
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, dto)
}

func (h *CounselHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "counsel_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, nil)
}
