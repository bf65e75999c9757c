package datalake

import "context"

// DatalakeService exports bulk snapshots of the records server into
// object storage and computes simple aggregate statistics over them.
type DatalakeService interface {
	// ExportPatients writes all patients as a CSV object and returns the
	// object name.
	ExportPatients(ctx context.Context) (string, error)
	// ExportAppointments writes all appointments as a CSV object and
	// returns the object name.
	ExportAppointments(ctx context.Context) (string, error)
	// GenderStats counts patients per gender code.
	GenderStats(ctx context.Context) (map[string]int, error)
	// AppointmentStatusStats counts appointments per status.
	AppointmentStatusStats(ctx context.Context) (map[string]int, error)
}
