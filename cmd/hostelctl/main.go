package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/octabyte/hostel-gommon/client"
	"github.com/octabyte/hostel-gommon/config"
	dbredis "github.com/octabyte/hostel-gommon/db/redis"
	"github.com/octabyte/hostel-gommon/otel"
	"github.com/octabyte/hostel-gommon/otel/metrics"
	"github.com/octabyte/hostel-gommon/queue"
	"github.com/octabyte/hostel-gommon/session"
	"github.com/octabyte/hostel-gommon/utils/logger"
	"go.uber.org/zap"
)

const usage = `usage: hostelctl [flags] <command> [args]

commands:
  login <email> <password>
  register <email> <password> <name> [student|owner]
  logout
  whoami
  profile
  get <path>
  hostels | my-hostels | rooms <hostel>
  my-bookings | my-payments | notices <hostel>
  student-dashboard | owner-dashboard | stats <hostel>
  watch-sessions

flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hostelctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	envFile := fs.String("env", ".env", "dotenv file merged into the environment")
	baseURL := fs.String("base-url", "", "API base URL, overrides HOSTEL_API_BASE_URL")
	store := fs.String("store", "", "session store (file|memory|redis), overrides HOSTEL_SESSION_STORE")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitFailure
	}
	if *baseURL != "" {
		cfg.Client.BaseURL = *baseURL
	}
	if *store != "" {
		cfg.SessionStore = *store
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitFailure
	}

	cfg.Logger.Encoding = "console"
	cfg.Logger.OutputPaths = []string{"stderr"}
	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitFailure
	}
	defer logger.Sync()

	shutdown, err := otel.Init(ctx, cfg.Otel)
	if err != nil {
		logger.LogError("failed to initialize telemetry", zap.Error(err))
		return exitFailure
	}
	defer shutdown()
	if cfg.Otel.Enabled {
		if err := metrics.Init(cfg.Otel.ServiceName); err != nil {
			logger.LogWarn("metrics disabled", zap.Error(err))
		}
	}

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.LogError("failed to open session store", zap.Error(err))
		return exitFailure
	}
	defer closeStore()

	view := &cliView{}
	opts := []session.Option{session.WithView(view)}
	var amqpConn *queue.Connection
	if cfg.AMQP.Enabled() {
		amqpConn, err = queue.NewConnection(queue.ConnectionConfig{URI: cfg.AMQP.URI, Exchange: cfg.AMQP.Exchange})
		if err != nil {
			logger.LogWarn("session events disabled", zap.Error(err))
		} else {
			defer amqpConn.Close()
			pub := queue.NewPublisher(amqpConn.Ch, queue.PublishConfig{Exchange: cfg.AMQP.Exchange})
			opts = append(opts, session.WithObserver(queue.NewSessionEventPublisher(pub, cfg.AMQP.RoutingKey)))
		}
	}

	manager := session.NewManager(st, opts...)
	if err := manager.Initialize(ctx); err != nil {
		logger.LogError("failed to restore session", zap.Error(err))
		return exitFailure
	}

	c, err := client.New(cfg.Client, manager,
		client.WithAlerter(client.AlertFunc(func(_ context.Context, msg string) {
			fmt.Fprintln(stderr, "Error:", msg)
		})),
		client.WithNavigator(client.NavigateFunc(func(_ context.Context, path string) {
			fmt.Fprintf(stderr, "Session expired, log in again (%s)\n", path)
		})),
	)
	if err != nil {
		logger.LogError("failed to create client", zap.Error(err))
		return exitFailure
	}

	a := &app{
		client:  c,
		session: manager,
		view:    view,
		amqp:    amqpConn,
		cfg:     cfg,
		stdout:  stdout,
		stderr:  stderr,
	}
	return a.run(ctx, fs.Arg(0), fs.Args()[1:])
}

func openStore(ctx context.Context, cfg config.Config) (session.Store, func(), error) {
	switch cfg.SessionStore {
	case config.StoreMemory:
		return session.NewMemoryStore(), func() {}, nil
	case config.StoreRedis:
		rdb, err := dbredis.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(rdb, cfg.RedisPrefix, cfg.RedisTTL), func() { _ = rdb.Close() }, nil
	default:
		return session.NewFileStore(cfg.SessionFile), func() {}, nil
	}
}
