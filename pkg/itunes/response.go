package itunes

import (
	"encoding/json"
	"math"

	"github.com/Jeffail/gabs/v2"
	"github.com/awa/go-iap/appstore"
	"github.com/calmisland/go-errors"
)

const statusField = "status"

// Response is a classified reply from a verifyReceipt service. It is never modified after parsing.
type Response struct {
	raw      []byte
	endpoint Endpoint
	body     *gabs.Container
	code     int
	category ResultCategory
}

// ParseResponse parses a reply body with the default classifier
func ParseResponse(raw []byte) (*Response, error) {
	return parseResponse(raw, defaultClassifier)
}

func parseResponse(raw []byte, classifier *Classifier) (*Response, error) {
	body, err := gabs.ParseJSON(raw)
	if err != nil {
		return nil, &MalformedResponseError{Err: errors.Wrap(err, "invalid json")}
	}

	if _, ok := body.Data().(map[string]interface{}); !ok {
		return nil, &MalformedResponseError{Err: errors.New("response must be a json object")}
	}

	code, err := resultCode(body.Path(statusField).Data())
	if err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	return &Response{
		raw:      append([]byte(nil), raw...),
		body:     body,
		code:     code,
		category: classifier.Classify(code),
	}, nil
}

func resultCode(value interface{}) (int, error) {
	switch v := value.(type) {
	case nil:
		return 0, errors.New("missing status field")
	case float64:
		if v != math.Trunc(v) {
			return 0, errors.Errorf("status [%v] is not an integer", v)
		}
		return int(v), nil
	case json.Number:
		code, err := v.Int64()
		if err != nil {
			return 0, errors.Wrapf(err, "status [%s] is not an integer", v)
		}
		return int(code), nil
	default:
		return 0, errors.Errorf("status has unexpected type %T", value)
	}
}

// ResultCode is the numeric status returned by the service
func (response *Response) ResultCode() int {
	return response.code
}

// Category is the classification of the result code
func (response *Response) Category() ResultCategory {
	return response.category
}

// IsValid reports whether the receipt was accepted
func (response *Response) IsValid() bool {
	return response.code == ResultValid
}

// Endpoint is the service that produced the response, empty when parsed outside a validation
func (response *Response) Endpoint() Endpoint {
	return response.endpoint
}

// Environment is the environment reported by the service, empty when absent
func (response *Response) Environment() string {
	environment, _ := response.body.Path("environment").Data().(string)
	return environment
}

// Field returns the value found at a dot separated path of the reply, nil when absent
func (response *Response) Field(path string) interface{} {
	return response.body.Path(path).Data()
}

// Raw returns a copy of the reply body
func (response *Response) Raw() []byte {
	return append([]byte(nil), response.raw...)
}

// Err maps the result code to the go-iap error values; nil for a valid receipt.
// The go-iap sentinel is wrapped with the status, compare it with errors.Is.
func (response *Response) Err() error {
	return appstore.HandleError(response.code)
}

// Decode unmarshals the reply into the go-iap typed receipt structure
func (response *Response) Decode() (*appstore.IAPResponse, error) {
	decoded := &appstore.IAPResponse{}
	if err := json.Unmarshal(response.raw, decoded); err != nil {
		return nil, &MalformedResponseError{Err: errors.Wrap(err, "unable to decode receipt")}
	}
	return decoded, nil
}
