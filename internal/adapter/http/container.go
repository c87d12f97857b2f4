package http

import (
	"log/slog"

	postgresdb "mygene/internal/adapter/database/postgres"
	postgresrepo "mygene/internal/adapter/database/postgres/repository"
	sqlitedb "mygene/internal/adapter/database/sqlite"
	sqliterepo "mygene/internal/adapter/database/sqlite/repository"

	"mygene/internal/adapter/http/handler"
	"mygene/internal/core/port"
	"mygene/internal/core/service"
	"mygene/internal/core/telemetry"
	"mygene/pkg/config"
)

type Container struct {
	UserRepo    port.UserRepository
	ProfileRepo port.ProfileRepository

	UserUseCase    port.UserService
	ProfileUseCase port.ProfileService
	AuthUseCase    port.AuthService
	QAUseCase      port.QAService

	AuthHandler     *handler.AuthHandler
	ProfileHandler  *handler.ProfileHandler
	QuestionHandler *handler.QuestionHandler
}

func NewContainer(db *sqlitedb.DB, answerer port.QuestionAnswerer, logger *config.LokiLogger) *Container {
	probe := telemetry.NewOTELProbe(slog.Default())

	userRepo := sqliterepo.NewUserRepository(db, probe)
	profileRepo := sqliterepo.NewProfileRepository(db, probe)

	return buildContainer(userRepo, profileRepo, probe, answerer, logger)
}

func NewPostgresContainer(db *postgresdb.DB, answerer port.QuestionAnswerer, logger *config.LokiLogger) *Container {
	probe := telemetry.NewOTELProbe(slog.Default())

	userRepo := postgresrepo.NewUserRepository(db)
	profileRepo := postgresrepo.NewProfileRepository(db)

	return buildContainer(userRepo, profileRepo, probe, answerer, logger)
}

func buildContainer(userRepo port.UserRepository, profileRepo port.ProfileRepository, probe port.Telemetry, answerer port.QuestionAnswerer, logger *config.LokiLogger) *Container {
	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo)
	profileSvc := service.NewProfileService(profileRepo, probe)
	qaSvc := service.NewQAService(profileRepo, answerer)

	authHandler := handler.NewAuthHandler(authSvc)
	profileHandler := handler.NewProfileHandler(profileSvc, logger)
	questionHandler := handler.NewQuestionHandler(qaSvc)

	return &Container{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,

		UserUseCase:    userSvc,
		ProfileUseCase: profileSvc,
		AuthUseCase:    authSvc,
		QAUseCase:      qaSvc,

		AuthHandler:     authHandler,
		ProfileHandler:  profileHandler,
		QuestionHandler: questionHandler,
	}
}
