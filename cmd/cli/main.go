package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"clinrec-service/internal/app/config"
	"clinrec-service/internal/app/delivery/cli"
	"clinrec-service/internal/app/drivers/database"
	"clinrec-service/internal/app/drivers/logger"
	"clinrec-service/internal/app/drivers/messaging"
	"clinrec-service/internal/app/drivers/storage"
	"clinrec-service/internal/app/services/auth"
	"clinrec-service/internal/app/services/datalake"
	"clinrec-service/internal/app/services/fhir/appointments"
	"clinrec-service/internal/app/services/fhir/communications"
	"clinrec-service/internal/app/services/fhir/conditions"
	"clinrec-service/internal/app/services/fhir/observations"
	"clinrec-service/internal/app/services/fhir/patients"
	"clinrec-service/internal/app/services/fhir/practitioners"
	"clinrec-service/internal/app/services/fhirstore"
	"clinrec-service/internal/app/services/shared/notifyqueue"
	"clinrec-service/internal/app/services/shared/sessions"
	"clinrec-service/internal/app/services/users"
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

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)

	bootstrap := &config.Bootstrap{
		MongoDB:        mongoClient.Database(driverConfig.MongoDB.DbName),
		MongoClient:    mongoClient,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	storeClient := fhirstore.NewClient(internalConfig.FHIR.BaseUrl, zapLogger)

	patientRepo := patients.NewPatientFhirRepository(storeClient, zapLogger)
	practitionerRepo := practitioners.NewPractitionerFhirRepository(storeClient, zapLogger)
	appointmentRepo := appointments.NewAppointmentFhirRepository(storeClient, patientRepo, practitionerRepo, zapLogger)
	observationRepo := observations.NewObservationFhirRepository(storeClient, patientRepo, zapLogger)
	conditionRepo := conditions.NewConditionFhirRepository(storeClient, patientRepo, zapLogger)

	publisher, err := notifyqueue.NewNotifyQueueService(rabbitMQ, zapLogger, internalConfig.RabbitMQ.MessageQueue)
	if err != nil {
		log.Fatalf("Error initializing notify queue: %v", err)
	}
	communicationRepo := communications.NewCommunicationFhirRepository(storeClient, patientRepo, practitionerRepo, publisher, zapLogger)

	userRepo := users.NewUserMongoRepository(mongoClient, driverConfig.MongoDB.DbName)
	sessionRepo := sessions.NewSessionRedisRepository(redisClient)
	authUsecase := auth.NewAuthUsecase(userRepo, sessionRepo, internalConfig, zapLogger)

	datalakeService := datalake.NewDatalakeService(storeClient, minioClient, internalConfig.Minio.BucketName, zapLogger)

	app := cli.NewCLI(
		authUsecase,
		patientRepo,
		practitionerRepo,
		appointmentRepo,
		observationRepo,
		conditionRepo,
		communicationRepo,
		datalakeService,
		log,
		os.Stdin,
		os.Stdout,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	app.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(internalConfig.App.ShutdownTimeout)*time.Second)
	defer shutdownCancel()
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error during shutdown")
	}
	logrus.Info("Goodbye")
}
