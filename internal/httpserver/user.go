package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndthang/minimart/internal/service"
	"github.com/ndthang/minimart/internal/transport"
	"github.com/ndthang/minimart/internal/util"
)

type UserHandler struct {
	Users *service.UserService
}

func (h *UserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	f := transport.UserFilter{
		Username: c.QueryParam("username"),
		Status:   c.QueryParam("status"),
		Start:    util.ParseIntDefault(c.QueryParam("start"), -1),
		Num:      util.ParseIntDefault(c.QueryParam("num"), -1),
	}
	users, err := h.Users.ListUsers(ctx, f)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users, "count": len(users)})
}
