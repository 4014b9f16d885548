package bootstrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"applydi-client/internal/config"
	"applydi-client/internal/handler"
	"applydi-client/internal/pkg/logger"
	"applydi-client/internal/repository/contract"
	"applydi-client/internal/repository/implementation"
	"applydi-client/internal/repository/memory"
	"applydi-client/internal/service"
	"applydi-client/internal/tracer"
	"applydi-client/pkg/events"
	"applydi-client/pkg/httpclient"
)

type Container struct {
	Config *config.Config
	Logger logger.ILogger

	Bus           *events.Bus
	Notifications *handler.NotificationHandler

	Session    service.ISessionService
	Auth       service.IAuthService
	Agents     service.IAgentService
	Documents  service.IDocumentService
	Navigation service.INavigationService
	Notifier   service.INotificationService

	cancel   context.CancelFunc
	shutdown func(context.Context) error
}

type options struct {
	doer   httpclient.Doer
	out    io.Writer
	store  contract.KeyValueStore
	logger logger.ILogger
}

type Option func(*options)

// WithDoer routes every backend call through d instead of the network.
func WithDoer(d httpclient.Doer) Option {
	return func(o *options) { o.doer = d }
}

// WithOutput sends rendered notifications to w instead of stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

func WithStore(s contract.KeyValueStore) Option {
	return func(o *options) { o.store = s }
}

func WithLogger(l logger.ILogger) Option {
	return func(o *options) { o.logger = l }
}

func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	o := &options{out: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}

	// 1. Core Facades
	sysLogger := o.logger
	if sysLogger == nil {
		if err := os.MkdirAll(filepath.Dir(cfg.App.LogFilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		if cfg.App.Debug {
			sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
		} else {
			sysLogger = logger.NewIsolatedLogger(cfg.App.LogFilePath)
		}
	}
	shutdown := tracer.InitTracer(cfg.Telemetry, sysLogger)

	store := o.store
	if store == nil {
		s, err := memory.NewStorageRepository(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		store = s
	}

	// 2. Event Bus
	bus := events.NewBus()

	// 3. Transport & Repositories
	clientOpts := []httpclient.Option{httpclient.WithLogger(sysLogger)}
	if o.doer != nil {
		clientOpts = append(clientOpts, httpclient.WithDoer(o.doer))
	} else {
		clientOpts = append(clientOpts, httpclient.WithDoer(&http.Client{}))
	}
	client := httpclient.New(cfg.API.BaseURL, clientOpts...)

	authRepo := implementation.NewAuthRepository(client)
	agentRepo := implementation.NewAgentRepository(client)
	documentRepo := implementation.NewDocumentRepository(client)
	queryRepo := implementation.NewQueryRepository(client)

	// 4. Services
	sessionService := service.NewSessionService(store, sysLogger)
	notifier := service.NewNotificationService(bus, sysLogger)
	authService := service.NewAuthService(authRepo, sessionService, notifier, sysLogger)
	agentService := service.NewAgentService(agentRepo, sessionService, notifier, sysLogger)
	documentService := service.NewDocumentService(documentRepo, sessionService, sysLogger)
	navigationService := service.NewNavigationService(
		agentService,
		documentService,
		queryRepo,
		sessionService,
		service.NewDirectorySaver(cfg.App.ExportDir),
		notifier,
		sysLogger,
	)

	// 5. Notification rendering
	notifications := handler.NewNotificationHandler(o.out, sessionService.DarkMode, sysLogger)
	ctx, cancel := context.WithCancel(context.Background())
	if err := notifications.Start(ctx, bus); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to subscribe notification handler: %w", err)
	}

	sysLogger.Debug("BOOTSTRAP", "Container ready", map[string]interface{}{"api": cfg.API.BaseURL, "storage": cfg.Storage.Path})

	return &Container{
		Config:        cfg,
		Logger:        sysLogger,
		Bus:           bus,
		Notifications: notifications,
		Session:       sessionService,
		Auth:          authService,
		Agents:        agentService,
		Documents:     documentService,
		Navigation:    navigationService,
		Notifier:      notifier,
		cancel:        cancel,
		shutdown:      shutdown,
	}, nil
}

// Close stops the notification subscriber, flushes traces and syncs logs.
func (c *Container) Close(ctx context.Context) error {
	c.cancel()
	err := c.Bus.Close()
	if shutdownErr := c.shutdown(ctx); shutdownErr != nil && err == nil {
		err = shutdownErr
	}
	_ = c.Logger.Sync()
	return err
}
