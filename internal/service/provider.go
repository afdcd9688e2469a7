package service

import (
	"time"

	"mindful_server/internal/config"
	"mindful_server/internal/dao/gormdb/repository"
	myredis "mindful_server/internal/dao/redis"
	"mindful_server/internal/infrastructure/mq"
	"mindful_server/internal/service/booking"
	"mindful_server/internal/service/journal"
	"mindful_server/internal/service/livesession"
	"mindful_server/internal/service/post"
	"mindful_server/internal/service/user"

	"github.com/tmc/langchaingo/llms"
)

// Services aggregates every service for the handler layer.
type Services struct {
	User        UserService
	Booking     BookingService
	Post        PostService
	LiveSession LiveSessionService
	Journal     JournalService
}

// Deps are the collaborators shared by the services.
type Deps struct {
	Repos     *repository.Repositories
	Cache     myredis.AsyncCacheService
	Publisher mq.Publisher
	Model     llms.Model // nil disables completions
	Config    *config.Config
}

// NewServices builds every service from deps. A nil cache or publisher is
// replaced by its no-op variant.
func NewServices(deps Deps) *Services {
	if deps.Cache == nil {
		deps.Cache = myredis.NoopCache{}
	}
	if deps.Publisher == nil {
		deps.Publisher = mq.NopPublisher{}
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}

	return &Services{
		User: user.NewUserService(deps.Repos, deps.Cache, deps.Publisher),
		Booking: booking.NewBookingService(deps.Repos, deps.Cache, deps.Publisher, booking.Options{
			StrictTransitions: cfg.StrictTransitions,
		}),
		Post:        post.NewPostService(deps.Repos),
		LiveSession: livesession.NewLiveSessionService(deps.Repos, deps.Cache, deps.Publisher),
		Journal: journal.NewJournalService(deps.Model, journal.Options{
			Timeout:     time.Duration(cfg.AIConfig.Timeout) * time.Second,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}),
	}
}
