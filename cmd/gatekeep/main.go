// gatekeep es el binario del servicio: servidor HTTP, migraciones y
// utilidades de operación.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/gatekeep/internal/auth/policy"
	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
	"github.com/dropDatabas3/gatekeep/internal/auth/visibility"
	"github.com/dropDatabas3/gatekeep/internal/bootstrap"
	"github.com/dropDatabas3/gatekeep/internal/cache"
	memcache "github.com/dropDatabas3/gatekeep/internal/cache/memory"
	redcache "github.com/dropDatabas3/gatekeep/internal/cache/redis"
	"github.com/dropDatabas3/gatekeep/internal/config"
	"github.com/dropDatabas3/gatekeep/internal/domain/repository"
	adminctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/admin"
	authctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/auth"
	healthctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/health"
	socialctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/social"
	systemctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/system"
	userctrl "github.com/dropDatabas3/gatekeep/internal/http/controllers/user"
	"github.com/dropDatabas3/gatekeep/internal/http/metrics"
	"github.com/dropDatabas3/gatekeep/internal/http/router"
	adminsvc "github.com/dropDatabas3/gatekeep/internal/http/services/admin"
	authsvc "github.com/dropDatabas3/gatekeep/internal/http/services/auth"
	healthsvc "github.com/dropDatabas3/gatekeep/internal/http/services/health"
	socialsvc "github.com/dropDatabas3/gatekeep/internal/http/services/social"
	systemsvc "github.com/dropDatabas3/gatekeep/internal/http/services/system"
	usersvc "github.com/dropDatabas3/gatekeep/internal/http/services/user"
	jwtx "github.com/dropDatabas3/gatekeep/internal/jwt"
	"github.com/dropDatabas3/gatekeep/internal/oauth"
	"github.com/dropDatabas3/gatekeep/internal/oauth/google"
	"github.com/dropDatabas3/gatekeep/internal/oauth/microsoft"
	"github.com/dropDatabas3/gatekeep/internal/oauth/steam"
	"github.com/dropDatabas3/gatekeep/internal/observability/logger"
	"github.com/dropDatabas3/gatekeep/internal/rate"
	"github.com/dropDatabas3/gatekeep/internal/security/password"
	"github.com/dropDatabas3/gatekeep/internal/store/pg"
)

func main() {
	// .env opcional: útil en dev, en prod mandan las env del entorno.
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:           "gatekeep",
		Short:         "Servicio de autenticación con credenciales y OAuth",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Ruta al archivo de configuración")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Arranca el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes y termina",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(configPath)
		},
	}

	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Operaciones administrativas locales",
	}
	adminCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Crea el primer admin de forma interactiva",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminCreate(configPath)
		},
	}
	adminCmd.AddCommand(adminCreateCmd)

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea usuarios de prueba (solo dev)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(configPath)
		},
	}

	root.AddCommand(serveCmd, migrateCmd, adminCmd, seedCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// setup carga config, inicializa el logger y abre el store.
func setup(ctx context.Context, configPath string) (*config.Config, *pg.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "gatekeep",
	})

	store, err := pg.Open(ctx, pg.Config{
		DSN:             cfg.Storage.DSN,
		MaxConns:        int32(cfg.Storage.MaxConns),
		ConnMaxLifetime: cfg.ConnMaxLifetime(),
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

func runMigrate(configPath string) error {
	ctx := context.Background()

	_, store, err := setup(ctx, configPath)
	if err != nil {
		return err
	}
	defer store.Close()
	defer logger.Sync()

	if err := store.Migrate(ctx); err != nil {
		return err
	}
	logger.L().Info("migrations applied")
	return nil
}

func runAdminCreate(configPath string) error {
	ctx := context.Background()

	_, store, err := setup(ctx, configPath)
	if err != nil {
		return err
	}
	defer store.Close()
	defer logger.Sync()

	username, email, plain, err := bootstrap.PromptCredentials()
	if err != nil {
		return err
	}

	b := bootstrap.NewService(store.Users)
	user, err := b.CreateFirstUser(ctx, username, email, plain)
	if err != nil {
		return err
	}
	fmt.Printf("admin created: %s (%s)\n", user.Username, user.ID)
	return nil
}

func runSeed(configPath string) error {
	ctx := context.Background()

	cfg, store, err := setup(ctx, configPath)
	if err != nil {
		return err
	}
	defer store.Close()
	defer logger.Sync()

	if cfg.App.Env != "dev" {
		return fmt.Errorf("seed: solo disponible en env dev (actual: %s)", cfg.App.Env)
	}

	log := logger.L()
	for _, seed := range []struct {
		username string
		role     string
	}{
		{"demo-admin", "ADMIN"},
		{"demo-viewer", "VIEWER"},
	} {
		hash, err := password.Hash(password.Default, "demo1234")
		if err != nil {
			return err
		}
		user, err := store.Users.Create(ctx, seedUser(seed.username, seed.role, hash))
		if err != nil {
			log.Warn("seed user skipped", logger.Username(seed.username), logger.Err(err))
			continue
		}
		log.Info("seed user created", logger.Username(user.Username), logger.Role(string(user.Role)))
	}
	return nil
}

func runServe(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, store, err := setup(ctx, configPath)
	if err != nil {
		return err
	}
	defer store.Close()
	defer logger.Sync()

	log := logger.L()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	// Cache: memory para single-node, redis cuando hay más de una réplica.
	cacheClient := buildCache(cfg)
	defer cacheClient.Close()

	issuer := jwtx.NewIssuer(cfg.JWT.Issuer, []byte(cfg.JWT.Secret), cfg.SessionTTL())

	// Registro de providers: flags globales por config, clientes OAuth por
	// presencia de credenciales.
	flags := cfg.ProviderFlags()
	reg := provider.NewRegistry(flags)
	providers := buildProviders(cfg, flags)

	resolver := visibility.NewResolver(reg, store.Accounts, policy.Permissive())

	boot := bootstrap.NewService(store.Users)

	// Services
	authServices := authsvc.NewServices(authsvc.Deps{Users: store.Users, Resolver: resolver})
	socialServices := socialsvc.NewServices(socialsvc.Deps{
		Providers: providers,
		Issuer:    issuer,
		Cache:     cacheClient,
		Users:     store.Users,
		Accounts:  store.Accounts,
		Resolver:  resolver,
	})
	var steamAPI usersvc.SteamAPI
	if cfg.Providers.Steam.APIKey != "" {
		steamAPI = steam.NewWebAPI(cfg.Providers.Steam.APIKey)
	}
	userServices := usersvc.NewServices(usersvc.Deps{Users: store.Users, Accounts: store.Accounts, Steam: steamAPI})
	adminServices := adminsvc.NewServices(adminsvc.Deps{Users: store.Users, Accounts: store.Accounts})
	systemServices := systemsvc.NewServices(boot)
	healthServices := healthsvc.NewServices(healthsvc.Deps{
		DBCheck:    store.Ping,
		CacheCheck: cacheClient.Ping,
	})

	// Métricas
	metricsHandler, err := metrics.Register(metrics.Config{
		DBPool: func() *pgxpool.Pool { return store.Pool() },
	})
	if err != nil {
		return err
	}

	cookie := authctrl.SessionCookie{
		Name:     cfg.Auth.Session.CookieName,
		Domain:   cfg.Auth.Session.Domain,
		SameSite: cfg.Auth.Session.SameSite,
		Secure:   cfg.Auth.Session.Secure,
	}

	handler := router.New(router.Deps{
		Auth:   authctrl.NewControllers(authServices, issuer, cookie),
		Social: socialctrl.NewControllers(socialServices, issuer, cookie, "/"),
		User:   userctrl.NewControllers(userServices),
		Admin:  adminctrl.NewControllers(adminServices),
		System: systemctrl.NewControllers(systemServices),
		Health: healthctrl.NewControllers(healthServices),

		Issuer:     issuer,
		CookieName: cfg.Auth.Session.CookieName,

		AllowedOrigins: cfg.Server.CORSAllowedOrigins,

		LoginLimiter:     buildLimiter(cfg.Rate.Enabled, cacheClient, "rl:login", cfg.Rate.Login.Limit, cfg.Rate.Login.Window),
		PreflightLimiter: buildLimiter(cfg.Rate.Enabled, cacheClient, "rl:preflight", cfg.Rate.Preflight.Limit, cfg.Rate.Preflight.Window),
		SocialLimiter:    buildLimiter(cfg.Rate.Enabled, cacheClient, "rl:social", cfg.Rate.Login.Limit, cfg.Rate.Login.Window),

		MetricsHandler: metricsHandler,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			logger.String("addr", cfg.Server.Addr),
			logger.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func seedUser(username, role, hash string) repository.CreateUserInput {
	return repository.CreateUserInput{
		Username:     username,
		PasswordHash: &hash,
		Role:         repository.Role(role),
		Theme:        repository.ThemeSystem,
	}
}

// buildCache arma el cache según config.
func buildCache(cfg *config.Config) cache.Client {
	if cfg.Cache.Kind == "redis" {
		return redcache.New(redcache.Config{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
	}
	return memcache.New(10 * time.Minute)
}

// buildProviders arma los clientes OAuth habilitados.
func buildProviders(cfg *config.Config, flags provider.Flags) *oauth.Registry {
	base := cfg.RedirectBase()
	var ps []oauth.Provider

	if flags.Microsoft {
		ps = append(ps, microsoft.New(microsoft.Config{
			ClientID:     cfg.Providers.Microsoft.ClientID,
			ClientSecret: cfg.Providers.Microsoft.ClientSecret,
			Tenant:       cfg.Providers.Microsoft.Tenant,
			RedirectURL:  base + "/v1/auth/social/microsoft/callback",
		}))
	}
	if flags.Google {
		ps = append(ps, google.New(google.Config{
			ClientID:     cfg.Providers.Google.ClientID,
			ClientSecret: cfg.Providers.Google.ClientSecret,
			RedirectURL:  base + "/v1/auth/social/google/callback",
		}))
	}
	if flags.Steam {
		ps = append(ps, steam.New(steam.Config{
			RedirectURL: base + "/v1/auth/social/steam/callback",
			APIKey:      cfg.Providers.Steam.APIKey,
		}))
	}
	return oauth.NewRegistry(ps...)
}

// buildLimiter arma un window limiter, o nil si el rate limiting está apagado.
func buildLimiter(enabled bool, counter rate.Counter, prefix string, max int, window string) rate.Limiter {
	if !enabled || max <= 0 {
		return nil
	}
	d, err := time.ParseDuration(window)
	if err != nil || d <= 0 {
		d = time.Minute
	}
	return rate.NewWindowLimiter(counter, prefix, max, d)
}
