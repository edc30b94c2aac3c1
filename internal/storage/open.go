package storage

import (
	"fmt"

	"github.com/vovakirdan/arcade-portal/internal/config"
)

// OpenRepository opens the backend selected by cfg.Driver.
func OpenRepository(cfg config.StorageConfig) (Repository, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return Open(cfg.SQLitePath)
	case "mongo", "mongodb":
		return OpenMongo(MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
	}
	return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
}
