package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ryandt33/raptscallions-sub011/domain"
	"github.com/ryandt33/raptscallions-sub011/internal/config"
	"github.com/ryandt33/raptscallions-sub011/internal/infrastructure/auth"
	"github.com/ryandt33/raptscallions-sub011/internal/infrastructure/database"
	"github.com/ryandt33/raptscallions-sub011/internal/infrastructure/oauth"
	"github.com/ryandt33/raptscallions-sub011/internal/infrastructure/repositories"
	"github.com/ryandt33/raptscallions-sub011/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	UserRepo       domain.UserRepository
	GroupRepo      domain.GroupRepository
	RateLimitStore domain.RateLimitStore

	PasswordSvc domain.PasswordService
	SessionSvc  domain.SessionService
	AuthSvc     domain.AuthService
	AbilitySvc  domain.AbilityService

	GoogleProvider    domain.OAuthProvider
	MicrosoftProvider domain.OAuthProvider
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return nil, err
	}
	container.DB = gdb

	cas, err := auth.NewCasbinService(gdb)
	if err != nil {
		return nil, err
	}
	container.Casbin = cas

	container.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client

	container.UserRepo = repositories.NewUserRepository(gdb)
	container.GroupRepo = repositories.NewGroupRepository(gdb)
	container.RateLimitStore = repositories.NewRateLimitStore(container.RedisClient)

	container.PasswordSvc = auth.NewPasswordService()
	container.SessionSvc = services.NewSessionService(container.UserRepo, container.RedisClient, services.SessionConfig{
		CookieName:       cfg.SessionCookieName,
		TTL:              cfg.SessionTTL,
		RefreshThreshold: cfg.SessionRefreshThreshold,
		Secure:           !cfg.IsDevelopment(),
	})
	container.AuthSvc = services.NewAuthService(container.UserRepo, container.SessionSvc, container.PasswordSvc)
	container.AbilitySvc = services.NewAbilityService(container.GroupRepo, cas.E)

	container.GoogleProvider = oauth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	container.MicrosoftProvider = oauth.NewMicrosoftProvider(cfg.MicrosoftClientID, cfg.MicrosoftClientSecret, cfg.MicrosoftRedirectURL)

	return container, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
