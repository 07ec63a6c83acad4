package client

import (
	"errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNoIdentity   = errors.New("no identity loaded")
)

// APIError is a failed call as reported by the server.
type APIError struct {
	Code    codes.Code
	Reason  string
	Message string
}

func (e *APIError) Error() string {
	if e.Reason == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Reason)
}

func (e *APIError) Unwrap() error {
	switch e.Code {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return nil
	}
}

// ReasonOf returns the server reason code carried by err, or "".
func ReasonOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Reason
	}
	return ""
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNoIdentity) {
		return err
	}

	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	apiErr := &APIError{Code: st.Code(), Message: st.Message()}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			apiErr.Reason = info.GetReason()
			break
		}
	}
	return apiErr
}
