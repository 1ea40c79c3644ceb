package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/answerhub/forum-api/internal/api/metrics"
	"github.com/answerhub/forum-api/internal/api/middleware"
	"github.com/answerhub/forum-api/internal/core/ports"
)

// UserHandler handles account lifecycle, profile and admin endpoints.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Signup handles POST /user/signup.
func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		Username:      req.UserName,
		Email:         req.EmailAddress,
		Password:      req.Password,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Country:       req.Country,
		AboutMe:       req.AboutMe,
		DOB:           req.DOB,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, signupResponse{
		ID:     user.ID,
		Status: "USER SUCCESSFULLY REGISTERED",
	})
}

// Signin handles POST /user/signin. Credentials arrive in a Basic
// authorization header; the minted token is returned in the access-token
// response header.
func (h *UserHandler) Signin(c echo.Context) error {
	username, password, ok := c.Request().BasicAuth()
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed Basic authorization header")
	}

	session, err := h.users.SignIn(c.Request().Context(), username, password)
	if err != nil {
		return err
	}
	metrics.SignInsTotal.Inc()

	c.Response().Header().Set("access-token", session.Token)
	return c.JSON(http.StatusOK, signinResponse{
		ID:      session.UserID,
		Message: "SIGNED IN SUCCESSFULLY",
	})
}

// Signout handles POST /user/signout.
func (h *UserHandler) Signout(c echo.Context) error {
	userID, err := h.users.SignOut(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return err
	}
	metrics.SignOutsTotal.Inc()

	return c.JSON(http.StatusOK, signoutResponse{
		ID:      userID,
		Message: "SIGNED OUT SUCCESSFULLY",
	})
}

// Profile handles GET /userprofile/:userId.
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := h.users.GetProfile(c.Request().Context(), middleware.Token(c), c.Param("userId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userDetailsResponse{
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		UserName:      user.Username,
		EmailAddress:  user.Email,
		DOB:           user.DOB,
		Country:       user.Country,
		AboutMe:       user.AboutMe,
		ContactNumber: user.ContactNumber,
	})
}

// AdminDelete handles DELETE /admin/user/:userId.
func (h *UserHandler) AdminDelete(c echo.Context) error {
	id, err := h.users.DeleteUser(c.Request().Context(), middleware.Token(c), c.Param("userId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, userDeleteResponse{
		ID:     id,
		Status: "USER SUCCESSFULLY DELETED",
	})
}
