package constvars

// Client messages are safe to show in the terminal; dev messages carry the
// detail that goes into logs.
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientInvalidUsernameOrPassword     = "invalid username or password"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientResourceNotFound              = "the requested record was not found"
	ErrClientStoreRejectedCreate           = "the records server did not accept the new record"
	ErrClientStoreUnavailable              = "the records server could not be reached"
)

const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevBlankField               = "%s must not be blank"
	ErrDevEndNotAfterStart         = "end time must be after start time"
	ErrDevExactlyOneParty          = "exactly one of personal number and staff id must be provided for the %s"
	ErrDevNoResourceWithID         = "no %s found with id %s"
	ErrDevNoResourcesMatching      = "no %s matching %s"
	ErrDevCreateNotConfirmed       = "store did not confirm creation of %s"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseTime          = "cannot parse time into the given format"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevStoreOperationFailed     = "%s %s failed"
	ErrDevBundleMissingNextLink    = "bundle has no next link"
	ErrDevDecodeResponse           = "failed to decode %s response"
	ErrDevInvalidCredentials       = "invalid credentials"
	ErrDevFailedToHashPassword     = "failed to hash password"
	ErrDevUserNotExists            = "user does not exist"
	ErrDevSessionNotFound          = "session not found or expired"
	ErrDevDBFailedToFindDocument   = "failed to find document on database"
	ErrDevDBFailedToInsertDocument = "failed to insert document to database"
	ErrDevRedisSetData             = "failed to set data to redis"
	ErrDevRedisGetData             = "failed to get data from redis"
	ErrDevRedisDeleteData          = "failed to delete data from redis"
	ErrDevRabbitMQPublish          = "failed to publish message to queue %s"
	ErrDevMinioPutObject           = "failed to store object in bucket %s"
)
