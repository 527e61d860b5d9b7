package apperrors

// Code classifies an error for transport mapping and logging.
type Code string

const (
	CodeUnknown         Code = "UNKNOWN"
	CodeValidation      Code = "VALIDATION"
	CodeNotFound        Code = "NOT_FOUND"
	CodeNotFriends      Code = "NOT_FRIENDS"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodePersistence     Code = "PERSISTENCE"
	CodeTransport       Code = "TRANSPORT"
)
