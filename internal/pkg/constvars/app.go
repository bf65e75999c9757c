package constvars

const (
	MongoCollectionUsers = "users"
)

const RedisSessionKeyPrefix = "session:"

// User roles gate which menus a logged-in user may enter.
const (
	RolePatient      = "patient"
	RolePractitioner = "practitioner"
	RoleAdmin        = "admin"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeCSV  = "text/csv"
)
