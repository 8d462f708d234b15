package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ghollosi/next-sub004/config"
	"github.com/ghollosi/next-sub004/internal/adapters/password"
	"github.com/ghollosi/next-sub004/internal/adapters/postgres"
	redisad "github.com/ghollosi/next-sub004/internal/adapters/redis"
	"github.com/ghollosi/next-sub004/internal/adapters/token"
	"github.com/ghollosi/next-sub004/internal/observability/statsd"
	"github.com/ghollosi/next-sub004/internal/ports"
	"github.com/ghollosi/next-sub004/internal/service"
)

// ServiceContainer holds the constructed service graph.
type ServiceContainer struct {
	Login   *service.LoginService
	Metrics *statsd.Client
}

// ServicesConfig groups dependencies for BuildServices.
type ServicesConfig struct {
	Config *config.AppConfig
	DB     *sql.DB
	// Redis is only consulted when single-use tickets are enabled; nil
	// otherwise.
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// BuildServices wires adapters into the login service graph.
func BuildServices(cfg ServicesConfig) (ServiceContainer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Config.Observability.Metrics.IsEnabled(),
		Address: cfg.Config.Observability.Metrics.StatsdAddress,
		Prefix:  cfg.Config.Observability.Metrics.StatsdPrefix,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("statsd client: %w", err)
	}

	issuer, err := token.NewJWTIssuer(token.IssuerConfig{
		Secret:     cfg.Config.Auth.TokenSecret,
		Issuer:     cfg.Config.Auth.Issuer,
		AccessTTL:  cfg.Config.Auth.AccessTTL,
		RefreshTTL: cfg.Config.Auth.RefreshTTL,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("session issuer: %w", err)
	}

	codec, err := token.NewTicketCodec(token.TicketConfig{
		Secret: cfg.Config.Auth.TokenSecret,
		Issuer: cfg.Config.Auth.Issuer,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("ticket codec: %w", err)
	}

	var guard ports.TicketGuard
	if cfg.Config.Auth.SingleUseTickets {
		if cfg.Redis == nil {
			return ServiceContainer{}, fmt.Errorf("single-use tickets enabled but no redis connection")
		}
		guard = redisad.NewTicketGuard(cfg.Redis)
	}

	resolver := service.NewCredentialResolver(service.ResolverOptions{
		Directory:     postgres.NewAccountDirectory(cfg.DB),
		Verifier:      password.BcryptVerifier{},
		LookupTimeout: cfg.Config.Auth.LookupTimeout,
		Logger:        logger,
		Metrics:       metrics,
	})

	login := service.NewLoginService(service.LoginServiceOptions{
		Resolver:     resolver,
		Issuer:       issuer,
		Tickets:      codec,
		Audit:        postgres.NewAuditLog(cfg.DB),
		Guard:        guard,
		TicketTTL:    cfg.Config.Auth.TicketTTL,
		AuditTimeout: cfg.Config.Auth.AuditTimeout,
		Logger:       logger,
		Metrics:      metrics,
	})

	return ServiceContainer{Login: login, Metrics: metrics}, nil
}
