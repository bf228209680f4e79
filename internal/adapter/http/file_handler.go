package http

import (
	"mime"
	"net/http"

	"loan-origination/internal/usecase/file"

	"github.com/labstack/echo/v4"
)

const formFileField = "file"

type FileHandler struct{ uc *file.Usecase }

func NewFileHandler(uc *file.Usecase) *FileHandler { return &FileHandler{uc: uc} }

// UploadShared stores a file that belongs to no application.
func (h *FileHandler) UploadShared(c echo.Context) error {
	return h.upload(c, 0)
}

func (h *FileHandler) Upload(c echo.Context) error {
	id, err := pathID(c, "application_id")
	if err != nil {
		return respondError(c, err)
	}
	return h.upload(c, id)
}

func (h *FileHandler) upload(c echo.Context, applicationID uint64) error {
	fh, err := c.FormFile(formFileField)
	if err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidBody, "multipart field \"file\" is required", nil)
	}
	src, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, codeInvalidBody, "cannot read uploaded file", nil)
	}
	defer src.Close()

	dto, err := h.uc.Upload(c.Request().Context(), applicationID, fh.Filename, src)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusCreated, dto)
}

func (h *FileHandler) List(c echo.Context) error {
	id, err := pathID(c, "application_id")
	if err != nil {
		return respondError(c, err)
	}
	files, err := h.uc.List(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, files)
}

func (h *FileHandler) Download(c echo.Context) error {
	id, err := pathID(c, "application_id")
	if err != nil {
		return respondError(c, err)
	}
	name := c.Param("filename")
	rc, err := h.uc.Download(c.Request().Context(), id, name)
	if err != nil {
		return respondError(c, err)
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	return c.Stream(http.StatusOK, echo.MIMEOctetStream, rc)
}

func (h *FileHandler) DeleteAll(c echo.Context) error {
	id, err := pathID(c, "application_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteAll(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return ok(c, http.StatusOK, nil)
}
