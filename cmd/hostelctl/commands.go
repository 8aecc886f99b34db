package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/octabyte/hostel-gommon/client"
	"github.com/octabyte/hostel-gommon/config"
	"github.com/octabyte/hostel-gommon/enums"
	"github.com/octabyte/hostel-gommon/models"
	"github.com/octabyte/hostel-gommon/queue"
	"github.com/octabyte/hostel-gommon/session"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errUsage = errors.New("wrong number of arguments")

// cliView keeps the logout label so whoami can print it.
type cliView struct {
	label string
}

func (v *cliView) LogoutControl() (session.LogoutControl, bool) {
	return v, true
}

func (v *cliView) SetLabel(label string) {
	v.label = label
}

type app struct {
	client  *client.Client
	session *session.Manager
	view    *cliView
	amqp    *queue.Connection
	cfg     config.Config
	stdout  io.Writer
	stderr  io.Writer
}

type listCommand struct {
	arg  string
	call func(ctx context.Context, c *client.Client, arg string) client.Result
}

var listCommands = map[string]listCommand{
	"profile": {call: func(ctx context.Context, c *client.Client, _ string) client.Result { return c.Profile(ctx) }},
	"hostels": {call: func(ctx context.Context, c *client.Client, _ string) client.Result { return c.Hostels(ctx) }},
	"my-hostels": {call: func(ctx context.Context, c *client.Client, _ string) client.Result {
		return c.MyHostels(ctx)
	}},
	"rooms": {arg: "hostel", call: func(ctx context.Context, c *client.Client, id string) client.Result {
		return c.HostelRooms(ctx, id)
	}},
	"my-bookings": {call: func(ctx context.Context, c *client.Client, _ string) client.Result {
		return c.MyBookings(ctx)
	}},
	"my-payments": {call: func(ctx context.Context, c *client.Client, _ string) client.Result {
		return c.MyPayments(ctx)
	}},
	"notices": {arg: "hostel", call: func(ctx context.Context, c *client.Client, id string) client.Result {
		return c.HostelNotices(ctx, id)
	}},
	"student-dashboard": {call: func(ctx context.Context, c *client.Client, _ string) client.Result {
		return c.StudentDashboard(ctx)
	}},
	"owner-dashboard": {call: func(ctx context.Context, c *client.Client, _ string) client.Result {
		return c.OwnerDashboard(ctx)
	}},
	"stats": {arg: "hostel", call: func(ctx context.Context, c *client.Client, id string) client.Result {
		return c.HostelStats(ctx, id)
	}},
}

func (a *app) run(ctx context.Context, cmd string, args []string) int {
	var err error
	switch cmd {
	case "login":
		err = a.login(ctx, args)
	case "register":
		err = a.register(ctx, args)
	case "logout":
		err = a.client.Logout(ctx)
		if err == nil {
			fmt.Fprintln(a.stdout, "Logged out")
		}
	case "whoami":
		err = a.whoami()
	case "get":
		if len(args) != 1 {
			err = errUsage
			break
		}
		err = a.print(a.client.Request(ctx, "", args[0], nil))
	case "watch-sessions":
		err = a.watchSessions(ctx)
	default:
		lc, ok := listCommands[cmd]
		if !ok {
			fmt.Fprintf(a.stderr, "Unknown command %q\n", cmd)
			return exitUsage
		}
		var arg string
		if lc.arg != "" {
			if len(args) != 1 {
				fmt.Fprintf(a.stderr, "usage: hostelctl %s <%s>\n", cmd, lc.arg)
				return exitUsage
			}
			arg = args[0]
		}
		err = a.print(lc.call(ctx, a.client, arg))
	}

	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintf(a.stderr, "Error: %s: %v\n", cmd, err)
		return exitUsage
	case err != nil:
		fmt.Fprintln(a.stderr, "Error:", err)
		return exitFailure
	}
	return exitOK
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	req := models.LoginRequest{Email: args[0], Password: args[1]}
	if err := req.Validate(); err != nil {
		return err
	}

	res := a.client.Login(ctx, req.Email, req.Password)
	if !res.OK() {
		return client.ErrFailed
	}
	if !a.session.Authenticated() {
		return errors.New("login succeeded but no session was issued")
	}
	fmt.Fprintf(a.stdout, "Logged in as %s\n", a.session.User().Email())
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return errUsage
	}
	req := &models.RegisterRequest{Email: args[0], Password: args[1], Name: args[2]}
	if len(args) == 4 {
		req.Role = enums.Role(args[3])
	}
	if err := req.Validate(); err != nil {
		return err
	}

	res := a.client.Register(ctx, req)
	if !res.OK() {
		return client.ErrFailed
	}
	if msg := res.Get("message").String(); msg != "" {
		fmt.Fprintln(a.stdout, msg)
	}
	if a.session.Authenticated() {
		fmt.Fprintf(a.stdout, "Logged in as %s\n", a.session.User().Email())
	}
	return nil
}

func (a *app) whoami() error {
	current := a.session.Current()
	if current.Empty() {
		fmt.Fprintln(a.stdout, "Not logged in")
		return nil
	}

	label := a.view.label
	if label == "" {
		label = session.LogoutLabel(current.User.Email())
	}
	fmt.Fprintln(a.stdout, label)
	if role := current.User.Role(); role != "" {
		fmt.Fprintf(a.stdout, "role: %s\n", role)
	}
	if claims, err := current.Claims(); err == nil && claims.ExpiresAt != nil {
		state := "valid until"
		if current.Expired(time.Now()) {
			state = "expired at"
		}
		fmt.Fprintf(a.stdout, "token %s %s\n", state, claims.ExpiresAt.Time.Format(time.RFC3339))
	}
	return nil
}

func (a *app) print(res client.Result) error {
	if !res.OK() {
		return client.ErrFailed
	}
	raw := res.Raw()
	if len(raw) == 0 {
		return nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(a.stdout)
	return err
}

// watchSessions tails the session events published by every hostelctl that
// shares the broker, until interrupted.
func (a *app) watchSessions(ctx context.Context) error {
	if a.amqp == nil {
		return errors.New("HOSTEL_AMQP_URI is not configured")
	}

	ch, err := a.amqp.Conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open amqp channel: %w", err)
	}
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare watch queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, a.cfg.AMQP.RoutingKey+".#", a.cfg.AMQP.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind watch queue: %w", err)
	}

	consumer, err := queue.NewConsumer(ch, queue.ConsumeConfig{Queue: q.Name, AutoAck: true, Exclusive: true})
	if err != nil {
		return err
	}
	defer consumer.Close()

	err = consumer.Consume(ctx, func(_ context.Context, body []byte) error {
		return a.printEvent(body)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *app) printEvent(body []byte) error {
	var ev queue.SessionEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return err
	}
	who := ev.Email
	if who == "" {
		who = "-"
	}
	_, err := fmt.Fprintf(a.stdout, "%s %-12s %s\n", ev.At.Format(time.RFC3339), strings.ToUpper(string(ev.Event)), who)
	return err
}
