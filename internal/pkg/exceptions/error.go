package exceptions

import (
	"fmt"
	"runtime"

	"clinrec-service/internal/pkg/constvars"
)

// Kind classifies a CustomError so callers can branch without string
// matching.
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindNotFound        Kind = "not_found"
	KindCreationFailed  Kind = "creation_failed"
	KindStoreError      Kind = "store_error"
	KindDecodeError     Kind = "decode_error"
	KindInternal        Kind = "internal"
)

type CustomError struct {
	Kind          Kind     `json:"-"`
	StatusCode    int      `json:"status_code"`
	ClientMessage string   `json:"message"`
	DevMessage    string   `json:"-"`
	Location      Location `json:"-"`
}

type Location struct {
	File         string
	Line         int
	FunctionName string
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

func WrapWithoutError(kind Kind, statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		Kind:          kind,
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Location:      getLocation(2),
	}
}

func WrapWithError(err error, kind Kind, statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		Kind:          kind,
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    fmt.Sprintf("%s: %s", devMessage, err.Error()),
		Location:      getLocation(2),
	}
}

func BuildNewCustomError(err error, kind Kind, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)
	custom := &CustomError{
		Kind:          kind,
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Location:      location,
	}
	if err != nil {
		custom.DevMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return custom
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{File: "unknown", FunctionName: "unknown"}
	}
	return Location{
		File:         file,
		Line:         line,
		FunctionName: runtime.FuncForPC(pc).Name(),
	}
}

func kindIs(err error, kind Kind) bool {
	custom, ok := err.(*CustomError)
	return ok && custom.Kind == kind
}

func IsInvalidArgument(err error) bool { return kindIs(err, KindInvalidArgument) }
func IsNotFound(err error) bool        { return kindIs(err, KindNotFound) }
func IsCreationFailed(err error) bool  { return kindIs(err, KindCreationFailed) }
func IsStoreError(err error) bool      { return kindIs(err, KindStoreError) }
func IsDecodeError(err error) bool     { return kindIs(err, KindDecodeError) }

// ClientMessage extracts the user-facing text from any error the services
// return; the terminal layer renders it verbatim.
func ClientMessage(err error) string {
	if custom, ok := err.(*CustomError); ok {
		return custom.ClientMessage
	}
	return constvars.ErrClientSomethingWrongWithApplication
}
