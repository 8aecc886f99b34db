package client

import (
	"context"
	"net/http"

	"github.com/octabyte/hostel-gommon/models"
	otellogger "github.com/octabyte/hostel-gommon/otel/logger"
	"github.com/octabyte/hostel-gommon/utils"
	"go.uber.org/zap"
)

const (
	routeRegister = "/auth/register/"
	routeLogin    = "/auth/login/"
	routeProfile  = "/auth/profile/"
)

// Register creates an account. When the API answers with a token the new
// user is logged in straight away.
func (c *Client) Register(ctx context.Context, body interface{}) Result {
	res := c.call(ctx, http.MethodPost, routeRegister, "", body)
	c.authenticate(ctx, res)
	return res
}

// Login exchanges credentials for a token and makes it the current session.
func (c *Client) Login(ctx context.Context, email, password string) Result {
	res := c.call(ctx, http.MethodPost, routeLogin, "", &models.LoginRequest{Email: email, Password: password})
	c.authenticate(ctx, res)
	return res
}

// Logout ends the session locally. The API keeps no server side session, so
// there is nothing to call.
func (c *Client) Logout(ctx context.Context) error {
	return c.session.Clear(ctx)
}

func (c *Client) Profile(ctx context.Context) Result {
	return c.call(ctx, http.MethodGet, routeProfile, "", nil)
}

func (c *Client) authenticate(ctx context.Context, res Result) {
	if !res.OK() {
		return
	}
	token := utils.AccessToken(res.Raw())
	if token == "" {
		otellogger.WarnCtx(ctx, "auth response carried no access token, session unchanged")
		return
	}

	user := res.Get("user")
	if !user.IsObject() {
		otellogger.WarnCtx(ctx, "auth response carried no user, session unchanged")
		return
	}
	profile, err := models.ParseProfile([]byte(user.Raw))
	if err != nil {
		otellogger.ErrorCtx(ctx, "failed to read user from auth response", err)
		return
	}

	if err := c.session.Set(ctx, token, profile); err != nil {
		otellogger.ErrorCtx(ctx, "failed to persist session", err, zap.String("email", profile.Email()))
	}
}
