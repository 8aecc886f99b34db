package client

import (
	"context"
	"net/http"
)

const (
	routeReportIssue  = "/issues/report/"
	routeOwnerIssues  = "/issues/owner/{id}/"
	routeResolveIssue = "/issues/{id}/resolve/"
)

func (c *Client) ReportIssue(ctx context.Context, body interface{}) Result {
	return c.call(ctx, http.MethodPost, routeReportIssue, "", body)
}

func (c *Client) OwnerIssues(ctx context.Context, hostelID string) Result {
	return c.call(ctx, http.MethodGet, routeOwnerIssues, hostelID, nil)
}

func (c *Client) ResolveIssue(ctx context.Context, id string, body interface{}) Result {
	return c.call(ctx, http.MethodPost, routeResolveIssue, id, body)
}
