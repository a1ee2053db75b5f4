package transport

import "fmt"

// RequestSendError indicates an exchange failed before a response was
// received, for reasons other than cancellation.
type RequestSendError struct {
	Err error
}

func (e *RequestSendError) Error() string {
	return fmt.Sprintf("request send failed, %v", e.Err)
}

func (e *RequestSendError) Unwrap() error {
	return e.Err
}

// CanceledError indicates an exchange was canceled or timed out through
// its context.
type CanceledError struct {
	Err error
}

// CanceledError reports that the error was due to cancellation.
func (*CanceledError) CanceledError() bool {
	return true
}

func (e *CanceledError) Error() string {
	return fmt.Sprintf("canceled, %v", e.Err)
}

func (e *CanceledError) Unwrap() error {
	return e.Err
}
