package httpclient

import "fmt"

var (
	_ error = (*ErrorStatusNotOK)(nil)
	_ error = (*ErrorCommandFailed)(nil)
)

// ErrorStatusNotOK is used to notify caller that a returned status is not considered OK
type ErrorStatusNotOK struct {
	Message string
	Status  int
}

func NewErrorStatusNotOK(status int) *ErrorStatusNotOK {
	return &ErrorStatusNotOK{
		Message: fmt.Sprintf("HTTP response code is not ok, got=%d", status),
		Status:  status,
	}
}

func (e ErrorStatusNotOK) Error() string {
	return e.Message
}

// ErrorCommandFailed is returned when the server answers a command with a
// failed result frame
type ErrorCommandFailed struct {
	Code    string
	Message string
}

func NewErrorCommandFailed(code, message string) *ErrorCommandFailed {
	return &ErrorCommandFailed{
		Code:    code,
		Message: message,
	}
}

func (e ErrorCommandFailed) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("command failed: %s", e.Message)
	}
	return fmt.Sprintf("command failed (%s): %s", e.Code, e.Message)
}
