package bootstrap

import (
	"notes-app-be/internal/config"
	"notes-app-be/internal/controller"
	"notes-app-be/internal/pkg/googletoken"
	"notes-app-be/internal/pkg/logger"
	"notes-app-be/internal/pkg/mailer"
	"notes-app-be/internal/pkg/serverutils"
	"notes-app-be/internal/repository/mongodb"
	"notes-app-be/internal/service"
	"notes-app-be/pkg/database"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	NoteController   controller.INoteController
	OAuthController  controller.IOAuthController
	HealthController controller.IHealthController

	// Background services (exposed for main.go to run)
	WelcomeService service.IWelcomeService

	Logger logger.ILogger
}

func NewContainer(mongo *database.Mongo, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Repositories
	userRepo := mongodb.NewUserRepository(mongo.DB)
	noteRepo := mongodb.NewNoteRepository(mongo.DB)

	// 4. Services
	tokenService := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.OTPExpiry)
	googleVerifier := googletoken.NewVerifier(cfg.Google.ClientID)

	publisherService := service.NewPublisherService(pubSub)
	welcomeService := service.NewWelcomeService(pubSub, emailService, sysLogger)

	authService := service.NewAuthService(userRepo, tokenService, emailService, publisherService, googleVerifier, sysLogger)
	noteService := service.NewNoteService(noteRepo, sysLogger)
	oauthService := service.NewOAuthService(cfg, userRepo, tokenService, sysLogger)

	authMiddleware := serverutils.NewAuthMiddleware(tokenService, userRepo)

	// 5. Controllers
	return &Container{
		AuthController:   controller.NewAuthController(authService),
		NoteController:   controller.NewNoteController(noteService, authMiddleware),
		OAuthController:  controller.NewOAuthController(cfg, oauthService),
		HealthController: controller.NewHealthController(mongo),

		WelcomeService: welcomeService,

		Logger: sysLogger,
	}
}
