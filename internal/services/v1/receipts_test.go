package v1

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/calmisland/go-testify/assert"
	"github.com/calmisland/go-testify/mock"
	"github.com/calmisland/go-testify/require"
	"github.com/go-playground/validator/v10"
	"github.com/jimstringer/store-receipt-validator/pkg/itunes"
)

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Post(ctx context.Context, url string, body []byte) (int, []byte, error) {
	args := m.Called(ctx, url, body)

	var raw []byte
	if b := args.Get(1); b != nil {
		raw = b.([]byte)
	}
	return args.Int(0), raw, args.Error(2)
}

type staticSecrets map[string]string

func (s staticSecrets) GetIosSharedKey(bundleID string) (string, bool) {
	secret, ok := s[bundleID]
	return secret, ok
}

func newTestReceiptService(t *testing.T) (*ReceiptService, *mockTransport) {
	receiptService, err := NewReceiptService(itunes.ReceiptValidatorConfig{Environment: "production"}, staticSecrets{
		"com.calmid.learnandplay": "bundle-secret",
	})
	require.NoError(t, err)

	transport := &mockTransport{}
	receiptService.Transport = transport
	return receiptService, transport
}

func TestValidateIos(t *testing.T) {
	receiptService, transport := newTestReceiptService(t)
	transport.On("Post", mock.Anything, string(itunes.EndpointProduction), mock.Anything).
		Return(200, []byte(`{"status":0,"environment":"Production"}`), nil).Once()

	result, err := receiptService.ValidateIos(context.Background(), ValidateIosRequest{
		BundleID: "com.calmid.learnandplay",
		Receipt:  "MIIT0gYJKoZIhvcNAQcCoIITwzCCE78CAQEx",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Status)
	assert.True(t, result.Valid)
	assert.False(t, result.SandboxFallback)
	assert.Equal(t, "Production", result.Environment)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(transport.Calls[0].Arguments.Get(2).([]byte), &sent))
	_, hasPassword := sent["password"]
	assert.False(t, hasPassword)
}

func TestValidateIosSubscriptionWithFallback(t *testing.T) {
	receiptService, transport := newTestReceiptService(t)
	transport.On("Post", mock.Anything, string(itunes.EndpointProduction), mock.Anything).
		Return(200, []byte(`{"status":21007}`), nil).Once()
	transport.On("Post", mock.Anything, string(itunes.EndpointSandbox), mock.Anything).
		Return(200, []byte(`{"status":21006,"environment":"Sandbox"}`), nil).Once()

	result, err := receiptService.ValidateIos(context.Background(), ValidateIosRequest{
		BundleID:               "com.calmid.learnandplay",
		Receipt:                "MIIT0gYJKoZIhvcNAQcCoIITwzCCE78CAQEx",
		IsSubscription:         true,
		ExcludeOldTransactions: true,
	})
	require.NoError(t, err)
	assert.Equal(t, itunes.ResultSubscriptionExpired, result.Status)
	assert.Equal(t, itunes.CategorySubscriptionExpired, result.Category)
	assert.True(t, result.SandboxFallback)
	assert.Equal(t, itunes.EndpointSandbox, result.Endpoint)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(transport.Calls[1].Arguments.Get(2).([]byte), &sent))
	assert.Equal(t, "bundle-secret", sent["password"])
	assert.Equal(t, true, sent["exclude-old-transactions"])
	transport.AssertNumberOfCalls(t, "Post", 2)
}

func TestValidateIosInvalidRequest(t *testing.T) {
	receiptService, transport := newTestReceiptService(t)

	_, err := receiptService.ValidateIos(context.Background(), ValidateIosRequest{BundleID: "com.calmid.learnandplay"})
	assert.IsType(t, validator.ValidationErrors{}, err)
	transport.AssertNumberOfCalls(t, "Post", 0)
}

func TestValidateIosUnknownBundle(t *testing.T) {
	receiptService, transport := newTestReceiptService(t)

	_, err := receiptService.ValidateIos(context.Background(), ValidateIosRequest{
		BundleID:       "com.unknown",
		Receipt:        "MIIT0gYJKoZIhvcNAQcCoIITwzCCE78CAQEx",
		IsSubscription: true,
	})
	assert.Equal(t, ErrNoSharedSecret, err)
	transport.AssertNumberOfCalls(t, "Post", 0)
}

func TestValidateIosTransportError(t *testing.T) {
	receiptService, transport := newTestReceiptService(t)
	transport.On("Post", mock.Anything, string(itunes.EndpointProduction), mock.Anything).
		Return(502, []byte(nil), nil).Once()

	_, err := receiptService.ValidateIos(context.Background(), ValidateIosRequest{
		BundleID: "com.calmid.learnandplay",
		Receipt:  "MIIT0gYJKoZIhvcNAQcCoIITwzCCE78CAQEx",
	})
	assert.IsType(t, &itunes.TransportError{}, err)
}

func TestNewReceiptServiceInvalidEnvironment(t *testing.T) {
	_, err := NewReceiptService(itunes.ReceiptValidatorConfig{Environment: "qa"}, nil)
	assert.IsType(t, &itunes.ConfigurationError{}, err)
}
