package iap

import (
	"sync"

	"github.com/calmisland/go-errors"
	log "github.com/sirupsen/logrus"
)

// Service keeps the shared secret of every app bundle in memory
type Service struct {
	mu               sync.RWMutex
	IosSharedSecrets map[string]string
}

// NewService ...
func NewService() *Service {
	return &Service{IosSharedSecrets: make(map[string]string)}
}

// Initialize loads the shared secrets from the source, replacing what was loaded before
func (service *Service) Initialize(source IosSource) error {
	iosList, err := source.GetIosList()

	if err != nil {
		return errors.Wrap(err, "could not load ios information from db")
	}

	secrets := make(map[string]string, len(iosList))
	for _, v := range iosList {
		if len(v.BundleID) == 0 {
			continue
		}
		secrets[v.BundleID] = v.SharedSecret
	}

	service.mu.Lock()
	service.IosSharedSecrets = secrets
	service.mu.Unlock()

	log.WithField("bundles", len(secrets)).Info("ios information is loaded successfully from db")
	return nil
}

// GetIosSharedKey returns the shared secret of a bundle and whether it is registered
func (service *Service) GetIosSharedKey(bundleID string) (string, bool) {
	service.mu.RLock()
	defer service.mu.RUnlock()

	secret, ok := service.IosSharedSecrets[bundleID]
	return secret, ok
}
