package datalake

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"clinrec-service/internal/app/services/fhirstore"
	"clinrec-service/internal/pkg/constvars"
	"clinrec-service/internal/pkg/exceptions"
	"clinrec-service/internal/pkg/fhir_dto"
	"clinrec-service/internal/pkg/utils"
)

type datalakeService struct {
	Client      *fhirstore.Client
	MinioClient *minio.Client
	BucketName  string
	Log         *zap.Logger
}

func NewDatalakeService(client *fhirstore.Client, minioClient *minio.Client, bucketName string, logger *zap.Logger) DatalakeService {
	return &datalakeService{
		Client:      client,
		MinioClient: minioClient,
		BucketName:  bucketName,
		Log:         logger,
	}
}

func (s *datalakeService) fetchPatients(ctx context.Context) ([]fhir_dto.Patient, error) {
	cursor := fhirstore.NewCursor[fhir_dto.Patient](s.Client, func(ctx context.Context) (*fhir_dto.Bundle, error) {
		return s.Client.Search(ctx, constvars.ResourcePatient, url.Values{})
	})
	return fhirstore.CollectAll(ctx, cursor)
}

func (s *datalakeService) fetchAppointments(ctx context.Context) ([]fhir_dto.Appointment, error) {
	cursor := fhirstore.NewCursor[fhir_dto.Appointment](s.Client, func(ctx context.Context) (*fhir_dto.Bundle, error) {
		return s.Client.Search(ctx, constvars.ResourceAppointment, url.Values{})
	})
	return fhirstore.CollectAll(ctx, cursor)
}

func (s *datalakeService) putCSV(ctx context.Context, objectName string, records [][]string) error {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(records); err != nil {
		return exceptions.ErrMinioCreateObject(err, s.BucketName)
	}

	_, err := s.MinioClient.PutObject(ctx, s.BucketName, objectName, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: constvars.ContentTypeCSV,
	})
	if err != nil {
		s.Log.Error("datalakeService.putCSV failed",
			zap.String(constvars.LoggingBucketNameKey, s.BucketName),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return exceptions.ErrMinioCreateObject(err, s.BucketName)
	}

	s.Log.Info("datalakeService.putCSV succeeded",
		zap.String(constvars.LoggingBucketNameKey, s.BucketName),
		zap.String(constvars.LoggingObjectNameKey, objectName),
		zap.Int(constvars.LoggingResultCountKey, len(records)-1),
	)
	return nil
}

func (s *datalakeService) ExportPatients(ctx context.Context) (string, error) {
	patients, err := s.fetchPatients(ctx)
	if err != nil {
		return "", err
	}

	records := [][]string{{"personal_number", "given_name", "family_name", "gender", "active"}}
	for _, patient := range patients {
		records = append(records, []string{
			utils.IdentifierValue(patient.Identifier, constvars.SystemPersonnummer),
			utils.GivenName(patient.Name),
			utils.FamilyName(patient.Name),
			patient.Gender,
			fmt.Sprintf("%t", patient.Active),
		})
	}

	objectName := fmt.Sprintf("patients/%s.csv", time.Now().Format("2006-01-02T15-04-05"))
	if err := s.putCSV(ctx, objectName, records); err != nil {
		return "", err
	}
	return objectName, nil
}

func (s *datalakeService) ExportAppointments(ctx context.Context) (string, error) {
	appointments, err := s.fetchAppointments(ctx)
	if err != nil {
		return "", err
	}

	records := [][]string{{"appointment_id", "status", "start", "end", "description"}}
	for _, appointment := range appointments {
		records = append(records, []string{
			utils.IdentifierValue(appointment.Identifier, constvars.SystemAppointmentID),
			appointment.Status,
			appointment.Start,
			appointment.End,
			appointment.Description,
		})
	}

	objectName := fmt.Sprintf("appointments/%s.csv", time.Now().Format("2006-01-02T15-04-05"))
	if err := s.putCSV(ctx, objectName, records); err != nil {
		return "", err
	}
	return objectName, nil
}

func (s *datalakeService) GenderStats(ctx context.Context) (map[string]int, error) {
	patients, err := s.fetchPatients(ctx)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int)
	for _, patient := range patients {
		gender := patient.Gender
		if gender == "" {
			gender = constvars.FhirGenderUnknown
		}
		stats[gender]++
	}
	return stats, nil
}

func (s *datalakeService) AppointmentStatusStats(ctx context.Context) (map[string]int, error) {
	appointments, err := s.fetchAppointments(ctx)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int)
	for _, appointment := range appointments {
		stats[appointment.Status]++
	}
	return stats, nil
}
