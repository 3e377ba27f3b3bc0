package itunes

import (
	"fmt"
)

// ConfigurationError is returned when an endpoint outside the known ones is assigned
type ConfigurationError struct {
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid endpoint '%s'", e.Value)
}

// TransportError is returned when the exchange with the verification server failed,
// either because the transport itself failed or because the reply was not 200 OK.
type TransportError struct {
	Endpoint   Endpoint
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unable to get response from itunes server [%s]: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("unable to get response from itunes server [%s]: status %d", e.Endpoint, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when the reply body is not a JSON object carrying an integer status
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed itunes response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
