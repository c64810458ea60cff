package services

import "fmt"

// ErrorKind classifies a failed operation so the HTTP layer can pick the
// right status code without matching on message text.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindAuthentication
	KindAuthorization
	KindValidation
	KindNotFound
	KindStateConflict
)

// ServiceError carries the kind alongside the user-visible message. The
// message is surfaced verbatim to the caller.
type ServiceError struct {
	Kind    ErrorKind
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func Unauthenticated(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindAuthentication, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func Invalid(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func StateConflict(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindStateConflict, Message: fmt.Sprintf(format, args...)}
}

func Internal(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the classification from any error; unclassified errors
// count as internal failures.
func KindOf(err error) ErrorKind {
	if se, ok := err.(*ServiceError); ok {
		return se.Kind
	}
	return KindInternal
}
