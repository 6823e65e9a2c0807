package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/hostreg/internal/auth"
	"evalgo.org/hostreg/internal/registry"
)

// listHosts handles GET /api/v1/hosts
// @Summary List hosts
// @Description List hosts matching a MongoDB filter. Each host carries _canedit for the caller.
// @Tags Hosts
// @Produce json
// @Security BearerAuth
// @Param find query string false "JSON filter document"
// @Param select query string false "Space separated fields to return"
// @Param sort query string false "Space separated sort fields, - for descending"
// @Param limit query int false "Page size" default(100)
// @Param skip query int false "Records to skip"
// @Success 200 {object} registry.HostList
// @Failure 400 {object} APIError "Invalid query"
// @Failure 500 {object} APIError "Internal server error"
// @Router /hosts [get]
func (s *Server) listHosts(c echo.Context) error {
	q, err := parseListQuery(c)
	if err != nil {
		return err
	}

	list, err := s.service.List(c.Request().Context(), auth.GetIdentity(c), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// getHost handles GET /api/v1/hosts/:id
// @Summary Get host by ID
// @Tags Hosts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Host ID"
// @Success 200 {object} registry.HostView
// @Failure 404 {object} APIError "Host not found"
// @Router /hosts/{id} [get]
func (s *Server) getHost(c echo.Context) error {
	view, err := s.service.Get(c.Request().Context(), auth.GetIdentity(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// getHostAdmins handles GET /api/v1/hosts/:id/admins
// @Summary Resolve host admins
// @Description Profiles of the host's admins. Unknown subjects are skipped.
// @Tags Hosts
// @Produce json
// @Param id path string true "Host ID"
// @Success 200 {array} models.Profile
// @Failure 404 {object} APIError "Host not found"
// @Router /hosts/{id}/admins [get]
func (s *Server) getHostAdmins(c echo.Context) error {
	admins, err := s.service.Admins(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admins)
}

// getHostDependents handles GET /api/v1/hosts/:id/dependents
// @Summary Records referencing a host
// @Tags Hosts
// @Produce json
// @Param id path string true "Host ID"
// @Success 200 {object} registry.DependencyReport
// @Failure 404 {object} APIError "Host not found"
// @Router /hosts/{id}/dependents [get]
func (s *Server) getHostDependents(c echo.Context) error {
	report, err := s.service.Dependents(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// createHost handles POST /api/v1/hosts
// @Summary Register an adhoc host
// @Description The caller becomes the host's admin unless admins are given. lsid is ignored.
// @Tags Hosts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param host body registry.HostInput true "Host registration"
// @Success 200 {object} registry.HostView
// @Failure 400 {object} APIError "Validation failed"
// @Failure 401 {object} APIError "Unauthorized"
// @Failure 500 {object} APIError "Internal server error"
// @Router /hosts [post]
func (s *Server) createHost(c echo.Context) error {
	in, err := bindHostInput(c)
	if err != nil {
		return err
	}

	view, err := s.service.Create(c.Request().Context(), auth.GetIdentity(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// updateHost handles PUT /api/v1/hosts/:id
// @Summary Update host
// @Description Identity fields only change on adhoc hosts. Services are replaced wholesale.
// @Tags Hosts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Host ID"
// @Param host body registry.HostInput true "Host update"
// @Success 200 {object} registry.HostView
// @Failure 400 {object} APIError "Validation failed"
// @Failure 401 {object} APIError "Unauthorized"
// @Failure 404 {object} APIError "Host not found"
// @Router /hosts/{id} [put]
func (s *Server) updateHost(c echo.Context) error {
	in, err := bindHostInput(c)
	if err != nil {
		return err
	}

	view, err := s.service.Update(c.Request().Context(), auth.GetIdentity(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// deleteHost handles DELETE /api/v1/hosts/:id
// @Summary Remove host
// @Description Fails with 409 while a host, hostgroup or config still references it.
// @Tags Hosts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Host ID"
// @Success 200 {object} StatusResponse
// @Failure 401 {object} APIError "Unauthorized"
// @Failure 404 {object} APIError "Host not found"
// @Failure 409 {object} APIError "Host is still referenced"
// @Router /hosts/{id} [delete]
func (s *Server) deleteHost(c echo.Context) error {
	if err := s.service.Delete(c.Request().Context(), auth.GetIdentity(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// bindHostInput decodes the JSON request body. Only the body is bound so the
// :id path parameter cannot leak into the input.
func bindHostInput(c echo.Context) (*registry.HostInput, error) {
	var in registry.HostInput
	if err := (&echo.DefaultBinder{}).BindBody(c, &in); err != nil {
		return nil, BadRequestError("Invalid request body", err.Error())
	}
	return &in, nil
}
