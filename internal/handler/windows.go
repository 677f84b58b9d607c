package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentiva/slot-reservation/internal/model"
)

// Windows handles GET /v1/windows: the fixed catalog of bookable window
// labels with their clock ranges.
func Windows(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"windows": model.WindowCatalog})
}
