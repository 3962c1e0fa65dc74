package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	httpapi "github.com/talkline/talkline/internal/api/http"
	"github.com/talkline/talkline/internal/auth"
	"github.com/talkline/talkline/internal/config"
	"github.com/talkline/talkline/internal/repository"
	"github.com/talkline/talkline/internal/service"
	"github.com/talkline/talkline/lib/logger/sl"
	"github.com/talkline/talkline/lib/logger/slogpretty"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	db, err := repository.Open(cfg.Storage.Path)
	if err != nil {
		log.Error("failed to open database", sl.Err(err))
		os.Exit(1)
	}
	if err := repository.Migrate(db, log); err != nil {
		log.Error("failed to migrate database", sl.Err(err))
		os.Exit(1)
	}

	tokens := auth.NewJWTService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	userRepo := repository.NewSqliteUserRepository(db)
	friendRepo := repository.NewSqliteFriendRepository(db)
	messageRepo := repository.NewSqliteMessageRepository(db)
	groupRepo := repository.NewSqliteGroupRepository(db)
	callRepo := repository.NewSqliteCallRepository(db)
	statusRepo := repository.NewSqliteStatusRepository(db)
	notificationRepo := repository.NewSqliteNotificationRepository(db)

	notificationService := service.NewNotificationService(notificationRepo, log)
	userService := service.NewUserService(userRepo, tokens, log)
	friendService := service.NewFriendService(friendRepo, userRepo, messageRepo, notificationService, log)
	chatService := service.NewChatService(messageRepo, friendRepo, log)
	groupService := service.NewGroupService(groupRepo, userRepo, log)
	callService := service.NewCallService(callRepo, userRepo, notificationService, cfg.Calls.RingTimeout, log)
	statusService := service.NewStatusService(statusRepo, friendRepo, cfg.Status.TTL, log)
	adminService := service.NewAdminService(userRepo, messageRepo, log)

	controllers := httpapi.Controllers{
		Auth:          httpapi.NewAuthController(userService),
		Users:         httpapi.NewUserController(userService),
		Friends:       httpapi.NewFriendController(friendService),
		Chats:         httpapi.NewChatController(chatService),
		Groups:        httpapi.NewGroupController(groupService),
		Statuses:      httpapi.NewStatusController(statusService),
		Calls:         httpapi.NewCallController(callService, log),
		Notifications: httpapi.NewNotificationController(notificationService),
		Admin:         httpapi.NewAdminController(adminService, statusService, notificationService),
	}

	router := httpapi.SetupRouter(tokens, cfg.CORS.AllowOrigins, controllers)

	log.Info("starting application", slog.String("addr", cfg.HTTP.Address), slog.String("env", cfg.Env))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", sl.Err(err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
