package main

import (
	"context"
	"curebird-service/internal/app/config"
	"curebird-service/internal/app/delivery/http/controllers"
	"curebird-service/internal/app/delivery/http/middlewares"
	"curebird-service/internal/app/delivery/http/routers"
	"curebird-service/internal/app/drivers/database"
	"curebird-service/internal/app/drivers/logger"
	"curebird-service/internal/app/drivers/messaging"
	"curebird-service/internal/app/drivers/storage"
	"curebird-service/internal/app/services/core/accounts"
	"curebird-service/internal/app/services/core/auth"
	"curebird-service/internal/app/services/core/onboarding"
	"curebird-service/internal/app/services/core/otp"
	"curebird-service/internal/app/services/core/profiles"
	"curebird-service/internal/app/services/core/resolver"
	"curebird-service/internal/app/services/core/routectx"
	"curebird-service/internal/app/services/core/session"
	"curebird-service/internal/app/services/shared/challenge"
	redisRepo "curebird-service/internal/app/services/shared/redis"
	"curebird-service/internal/app/services/shared/sms"
	minioStorage "curebird-service/internal/app/services/shared/storage"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	sessionHub := bootstrapingTheApp(&bootstrap, minioClient, log)
	bootstrap.HubStop = sessionHub.CloseAll

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	// Shutdown the server
	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Failed to close application dependencies: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap, minioClient *minio.Client, log *logrus.Logger) *resolver.SessionHub {
	// Shared services
	redisRepository := redisRepo.NewRedisRepository(bootstrap.Redis)
	blobStorage := minioStorage.NewMinioStorage(minioClient)
	smsPublisher, err := sms.NewSmsService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.App.RabbitMQSmsQueue)
	if err != nil {
		log.Fatalf("Failed to initialize sms publisher: %v", err)
	}
	challengeManager := challenge.NewChallengeManager(
		redisRepository,
		bootstrap.Logger,
		time.Duration(bootstrap.InternalConfig.Otp.ChallengeTTLInMinutes)*time.Minute,
	)

	// Session
	sessionService := session.NewSessionService(redisRepository, bootstrap.InternalConfig)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(sessionService, bootstrap.InternalConfig, bootstrap.Logger)

	// Accounts (credential provider)
	accountMongoRepository := accounts.NewAccountMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	credentialProvider := accounts.NewAccountUsecase(accountMongoRepository, bootstrap.InternalConfig, bootstrap.Logger)

	// Profiles
	profileStore := profiles.NewProfileMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
		bootstrap.Logger,
	)

	// Session resolution
	classifier := routectx.NewClassifier(bootstrap.InternalConfig.App.DoctorPathPrefix)
	sessionHub := resolver.NewSessionHub(classifier, profileStore, credentialProvider, bootstrap.Logger)

	// Usecases
	authUsecase := auth.NewAuthUsecase(credentialProvider, profileStore, bootstrap.Logger)
	otpUsecase := otp.NewOtpUsecase(redisRepository, smsPublisher, challengeManager, credentialProvider, bootstrap.InternalConfig, bootstrap.Logger)
	onboardingUsecase := onboarding.NewOnboardingUsecase(profileStore, blobStorage, bootstrap.InternalConfig, bootstrap.Logger)

	// Controllers
	sessionController := controllers.NewSessionController(bootstrap.Logger, sessionService, sessionHub, otpUsecase)
	authController := controllers.NewAuthController(bootstrap.Logger, authUsecase, otpUsecase)
	onboardingController := controllers.NewOnboardingController(bootstrap.Logger, onboardingUsecase, sessionHub)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, sessionController, authController, onboardingController)
	return sessionHub
}
