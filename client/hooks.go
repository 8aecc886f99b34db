package client

import (
	"context"

	"github.com/octabyte/hostel-gommon/utils/logger"
	"go.uber.org/zap"
)

// Alerter shows a user-facing error notice. It is only used for transport
// failures, where the user would otherwise see nothing at all.
type Alerter interface {
	Alert(ctx context.Context, message string)
}

// Navigator moves the user to another page of the application.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

type AlertFunc func(ctx context.Context, message string)

func (f AlertFunc) Alert(ctx context.Context, message string) {
	f(ctx, message)
}

type NavigateFunc func(ctx context.Context, path string)

func (f NavigateFunc) Navigate(ctx context.Context, path string) {
	f(ctx, path)
}

type logAlerter struct{}

func (logAlerter) Alert(_ context.Context, message string) {
	logger.LogWarn("alert", zap.String("message", message))
}

type logNavigator struct{}

func (logNavigator) Navigate(_ context.Context, path string) {
	logger.LogInfo("navigate", zap.String("path", path))
}
