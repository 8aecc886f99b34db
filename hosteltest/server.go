// Package hosteltest provides an in-process fake of the hostel-management API
// for exercising the client end to end.
package hosteltest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/octabyte/hostel-gommon/interfaces/http/echo/middleware"
	"github.com/octabyte/hostel-gommon/models"
)

// APIPrefix is the path the fake API is mounted under, matching the default
// base URL of the real backend.
const APIPrefix = "/api"

// Call is one request received by the fake.
type Call struct {
	Method    string
	Path      string
	Header    http.Header
	Body      []byte
	Token     string
	RequestID string
	Claims    *models.TokenClaims
}

type Response struct {
	Status      int
	Body        string
	ContentType string
}

// JSON is a response with an application/json body.
func JSON(status int, body string) Response {
	return Response{Status: status, Body: body, ContentType: echo.MIMEApplicationJSON}
}

// Text is a response with a non-JSON body, e.g. a proxy error page.
func Text(status int, body string) Response {
	return Response{Status: status, Body: body, ContentType: echo.MIMETextPlainCharsetUTF8}
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	calls    []Call
	routes   map[string]Response
	fallback Response
}

// NewServer starts a fake answering every route with 200 and "{}" until told
// otherwise. It is closed with Close.
func NewServer() *Server {
	s := &Server{
		routes:   make(map[string]Response),
		fallback: JSON(http.StatusOK, "{}"),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(
		middleware.SetRequestIDInContext(),
		middleware.SetTokenInContext(),
		middleware.SetClaimsFromJWTToken(),
	)
	e.Any(APIPrefix+"/*", s.handle)

	s.Server = httptest.NewServer(e)
	return s
}

// BaseURL is the value to configure a client with.
func (s *Server) BaseURL() string {
	return s.URL + APIPrefix
}

// Respond sets the answer for method and path, path being relative to the API
// prefix, e.g. "/bookings/my/".
func (s *Server) Respond(method, path string, resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[routeKey(method, path)] = resp
}

// RespondAll sets the answer for every route without its own response.
func (s *Server) RespondAll(resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = resp
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := make([]Call, len(s.calls))
	copy(calls, s.calls)
	return calls
}

func (s *Server) LastCall() (Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return Call{}, false
	}
	return s.calls[len(s.calls)-1], true
}

func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *Server) handle(c echo.Context) error {
	req := c.Request()
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}

	call := Call{
		Method:    req.Method,
		Path:      strings.TrimPrefix(req.URL.EscapedPath(), APIPrefix),
		Header:    req.Header.Clone(),
		Body:      body,
		Token:     middleware.TokenFromContext(c),
		RequestID: req.Header.Get(middleware.RequestIDHeader),
	}
	if claims, ok := middleware.ClaimsFromContext(c); ok {
		call.Claims = claims
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	resp, ok := s.routes[routeKey(call.Method, call.Path)]
	if !ok {
		resp = s.fallback
	}
	s.mu.Unlock()

	if resp.Body == "" {
		return c.NoContent(resp.Status)
	}
	return c.Blob(resp.Status, resp.ContentType, []byte(resp.Body))
}

func routeKey(method, path string) string {
	return method + " " + path
}
