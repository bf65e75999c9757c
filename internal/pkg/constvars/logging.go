package constvars

const (
	LoggingResourceTypeKey   = "resource_type"
	LoggingStoreIDKey        = "store_id"
	LoggingBusinessIDKey     = "business_id"
	LoggingPatientPNKey      = "patient_pn"
	LoggingDoctorIDKey       = "doctor_id"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingObservationIDKey  = "observation_id"
	LoggingConditionIDKey    = "condition_id"
	LoggingCommunicationKey  = "communication_id"
	LoggingFhirURLKey        = "fhir_url"
	LoggingResultCountKey    = "result_count"
	LoggingQueueNameKey      = "queue_name"
	LoggingObjectNameKey     = "object_name"
	LoggingBucketNameKey     = "bucket_name"
	LoggingUsernameKey       = "username"
	LoggingSessionIDKey      = "session_id"
)
