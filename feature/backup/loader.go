package backup

import (
	"kv-storage/core/kv"
	"kv-storage/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the backup feature. It is disabled when client is nil.
func NewFeature(store kv.Store, client storage.Client, cfg storage.Config, logger *zap.Logger) *Feature {
	f := &Feature{}
	if client != nil {
		f.service = NewService(store, client, cfg, logger)
		f.handler = NewHandler(f.service)
	}
	return f
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "backup"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
