package server

import (
	"github.com/jmoiron/sqlx"

	"github.com/smlmotors/showroom/internal/server/auth"
	"github.com/smlmotors/showroom/internal/server/blob"
	"github.com/smlmotors/showroom/internal/server/cars"
	"github.com/smlmotors/showroom/internal/server/docstore"
	"github.com/smlmotors/showroom/internal/server/uploads"
)

type Services struct {
	Docs    *docstore.Store
	Blob    *blob.BlobService
	Cars    *cars.CarService
	Auth    *auth.AuthService
	Uploads *uploads.Pipeline
}

func NewServices(config *Config, db *sqlx.DB) (*Services, error) {
	docs, err := docstore.New(db)
	if err != nil {
		return nil, err
	}

	blobSvc, err := blob.NewBlobService(&config.Blob, db)
	if err != nil {
		return nil, err
	}

	return &Services{
		Docs:    docs,
		Blob:    blobSvc,
		Cars:    cars.NewCarService(docs),
		Auth:    auth.NewAuthService(&config.Auth),
		Uploads: uploads.NewPipeline(blobSvc.Backend()),
	}, nil
}
