package http

import (
	"strconv"

	"loan-origination/internal/domain/apperr"

	"github.com/labstack/echo/v4"
)

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Invalid(codeInvalidID, name+" must be a positive integer")
	}
	return id, nil
}
