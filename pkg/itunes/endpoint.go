package itunes

import (
	"strings"

	"github.com/awa/go-iap/appstore"
)

// Endpoint is one of the two verifyReceipt services
type Endpoint string

const (
	EndpointProduction Endpoint = Endpoint(appstore.ProductionURL)
	EndpointSandbox    Endpoint = Endpoint(appstore.SandboxURL)
)

// IsKnown reports whether the endpoint is production or sandbox
func (e Endpoint) IsKnown() bool {
	return e == EndpointProduction || e == EndpointSandbox
}

func (e Endpoint) String() string {
	return string(e)
}

func validateEndpoint(e Endpoint) error {
	if !e.IsKnown() {
		return &ConfigurationError{Value: string(e)}
	}
	return nil
}

// EndpointForEnvironment resolves an environment name ("production", "sandbox") or a literal endpoint URL
func EndpointForEnvironment(name string) (Endpoint, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "production", "prod":
		return EndpointProduction, nil
	case "sandbox":
		return EndpointSandbox, nil
	}

	endpoint := Endpoint(strings.TrimSpace(name))
	if err := validateEndpoint(endpoint); err != nil {
		return "", err
	}
	return endpoint, nil
}
