package httpserver

import (
	"net/http"
	"strconv"

	"catalog/errs"
	"catalog/user"

	"github.com/labstack/echo/v4"
)

var errUserServiceMissing = errs.Errorf(errs.ENOTIMPLEMENTED, "user service not configured")

func (s *Server) RegisterUserRoutes(g *echo.Group) {
	write := s.writeGuard()

	g.GET("", s.handleListUsers)
	g.POST("", s.handleCreateUser, write...)
	g.GET("/:id", s.handleGetUser)
	g.PUT("/:id", s.handleUpdateUser, write...)
	g.PUT("/:id/username", s.handleUpdateUsername, write...)
}

// handleListUsers godoc
// @Summary List users
// @Description Filters by the first non-blank of username, mail, address.
// @Tags users
// @Produce json
// @Param username query string false "Exact username"
// @Param mail query string false "Exact mail"
// @Param address query string false "Exact address"
// @Success 200 {array} UserDTO
// @Router /users [get]
func (s *Server) handleListUsers(c echo.Context) error {
	if s.UserService == nil {
		return errUserServiceMissing
	}

	users, err := s.UserService.ListUsers(c.Request().Context(), user.Filter{
		Username: c.QueryParam("username"),
		Mail:     c.QueryParam("mail"),
		Address:  c.QueryParam("address"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserDTOs(users))
}

// handleCreateUser godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body UserDTO true "User without id"
// @Success 201 {integer} int64 "The id of the newly created user"
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /users [post]
func (s *Server) handleCreateUser(c echo.Context) error {
	if s.UserService == nil {
		return errUserServiceMissing
	}

	var dto UserDTO
	if err := c.Bind(&dto); err != nil {
		return err
	}
	if err := c.Validate(&dto); err != nil {
		return err
	}

	id, err := s.UserService.CreateUser(c.Request().Context(), *dto.Username, *dto.Mail, *dto.Address)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, id)
}

// handleGetUser godoc
// @Summary Get a single user specified by id
// @Tags users
// @Produce json
// @Param id path string true "The numeric id of the user"
// @Success 200 {object} UserDTO
// @Failure 404 {object} APIResponse
// @Router /users/{id} [get]
func (s *Server) handleGetUser(c echo.Context) error {
	if s.UserService == nil {
		return errUserServiceMissing
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		return user.ErrUserNotFound
	}

	u, err := s.UserService.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserDTO(u))
}

// handleUpdateUser godoc
// @Summary Replace username, mail and address of a user
// @Tags users
// @Accept json
// @Param id path int true "The numeric id of the user"
// @Param user body UserDTO true "Replacement fields"
// @Success 204
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /users/{id} [put]
func (s *Server) handleUpdateUser(c echo.Context) error {
	if s.UserService == nil {
		return errUserServiceMissing
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		return errs.Errorf(errs.EINVALID, "user: invalid id %s", strconv.Quote(c.Param("id")))
	}

	var dto UserDTO
	if err := c.Bind(&dto); err != nil {
		return err
	}

	found, err := s.UserService.Update(c.Request().Context(), id, deref(dto.Username), deref(dto.Mail), deref(dto.Address))
	if err != nil {
		return err
	}
	if !found {
		return user.ErrUserNotFound
	}

	return c.NoContent(http.StatusNoContent)
}

// handleUpdateUsername godoc
// @Summary Change the username of a user
// @Tags users
// @Accept plain
// @Param id path int true "The numeric id of the user"
// @Param username body string true "The new username"
// @Success 204
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /users/{id}/username [put]
func (s *Server) handleUpdateUsername(c echo.Context) error {
	if s.UserService == nil {
		return errUserServiceMissing
	}

	id, ok := parseID(c.Param("id"))
	if !ok {
		return errs.Errorf(errs.EINVALID, "user: invalid id %s", strconv.Quote(c.Param("id")))
	}

	username, err := readText(c)
	if err != nil {
		return err
	}

	found, err := s.UserService.UpdateUsername(c.Request().Context(), id, username)
	if err != nil {
		return err
	}
	if !found {
		return user.ErrUserNotFound
	}

	return c.NoContent(http.StatusNoContent)
}
