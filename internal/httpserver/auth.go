package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndthang/minimart/internal/logging"
	"github.com/ndthang/minimart/internal/service"
	"github.com/ndthang/minimart/internal/transport"
)

type AuthHandler struct {
	Auth   *service.AuthService
	Events EventPublisher
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	log := logging.FromContext(ctx).With("handler", "register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	user, err := h.Auth.Register(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			log.Warn("registration rejected", "status", http.StatusConflict, "reason", "duplicate username")
			return errorJSON(c, http.StatusConflict, messageOf(err))
		}
		return serviceError(c, err)
	}

	publish(c, h.Events, "user_events", user.Username, map[string]any{
		"type":     "user_registered",
		"username": user.Username,
	})
	return c.JSON(http.StatusCreated, transport.UserView{
		Username: user.Username,
		Role:     user.Role,
		Status:   user.Status,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	log := logging.FromContext(ctx).With("handler", "login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	token, user, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			log.Warn("login rejected", "status", http.StatusUnauthorized, "username", req.Username)
		}
		return serviceError(c, err)
	}

	publish(c, h.Events, "user_events", user.Username, map[string]any{
		"type":     "user_logged_in",
		"username": user.Username,
	})
	return c.JSON(http.StatusOK, transport.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	})
}
