package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// validateHost checks a host registration body without storing it
// @Summary Validate host registration
// @Tags Validation
// @Accept json
// @Produce json
// @Param host body registry.HostInput true "Host registration"
// @Success 200 {object} validation.ValidationResult
// @Failure 400 {object} validation.ValidationResult
// @Router /validate/host [post]
func (s *Server) validateHost(c echo.Context) error {
	in, err := bindHostInput(c)
	if err != nil {
		return err
	}

	result := s.service.Validate(in)
	if result.Valid {
		return c.JSON(http.StatusOK, result)
	}

	return c.JSON(http.StatusBadRequest, result)
}
