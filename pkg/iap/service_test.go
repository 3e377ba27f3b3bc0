package iap

import (
	"errors"
	"testing"

	"github.com/calmisland/go-testify/assert"
	"github.com/calmisland/go-testify/mock"
	"github.com/calmisland/go-testify/require"
)

type mockIosSource struct {
	mock.Mock
}

func (m *mockIosSource) GetIosList() ([]InAppPlatformIOS, error) {
	args := m.Called()

	var list []InAppPlatformIOS
	if l := args.Get(0); l != nil {
		list = l.([]InAppPlatformIOS)
	}
	return list, args.Error(1)
}

func TestInitialize(t *testing.T) {
	source := &mockIosSource{}
	source.On("GetIosList").Return([]InAppPlatformIOS{
		{BundleID: "com.calmid.learnandplay", SharedSecret: "secret-a"},
		{BundleID: "com.calmid.badanamu.esl", SharedSecret: "secret-b"},
		{BundleID: "", SharedSecret: "ignored"},
	}, nil)

	service := NewService()
	require.NoError(t, service.Initialize(source))

	secret, ok := service.GetIosSharedKey("com.calmid.badanamu.esl")
	assert.True(t, ok)
	assert.Equal(t, "secret-b", secret)

	_, ok = service.GetIosSharedKey("com.unknown")
	assert.False(t, ok)
	assert.Len(t, service.IosSharedSecrets, 2)
	source.AssertExpectations(t)
}

func TestInitializeFailureKeepsSecrets(t *testing.T) {
	service := NewService()

	loaded := &mockIosSource{}
	loaded.On("GetIosList").Return([]InAppPlatformIOS{{BundleID: "com.calmid.learnandplay", SharedSecret: "secret-a"}}, nil)
	require.NoError(t, service.Initialize(loaded))

	failing := &mockIosSource{}
	failing.On("GetIosList").Return(nil, errors.New("ResourceNotFoundException"))
	assert.Error(t, service.Initialize(failing))

	secret, ok := service.GetIosSharedKey("com.calmid.learnandplay")
	assert.True(t, ok)
	assert.Equal(t, "secret-a", secret)
}
