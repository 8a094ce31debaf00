package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"tramites-backend/internal/audit"
	"tramites-backend/internal/corrections"
	"tramites-backend/internal/files"
	"tramites-backend/internal/filetypes"
	"tramites-backend/internal/metadata"
	"tramites-backend/internal/observations"
	"tramites-backend/internal/shared/config"
	"tramites-backend/internal/shared/server"
	"tramites-backend/internal/shared/storage/db"
	"tramites-backend/internal/shared/storage/object"
	localstore "tramites-backend/internal/shared/storage/object/local"
	s3store "tramites-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	AuditRepo        audit.Repo
	ObservationsRepo observations.Repo
	FileTypesRepo    filetypes.Repo
	MetadataRepo     metadata.Repo
	FilesRepo        files.Repo

	ObservationsService *observations.Service
	FileTypesService    *filetypes.Service
	MetadataService     *metadata.Service
	Versioner           *files.Versioner
	CorrectionsService  *corrections.Service

	ObservationsHandler *observations.Handler
	CorrectionsHandler  *corrections.Handler
	MetadataHandler     *metadata.Handler
	FilesHandler        *files.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              app.Config,
		ObservationsHandler: app.ObservationsHandler,
		CorrectionsHandler:  app.CorrectionsHandler,
		MetadataHandler:     app.MetadataHandler,
		FilesHandler:        app.FilesHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.AuditRepo = &audit.PGRepo{DB: app.DB}
		app.ObservationsRepo = &observations.PGRepo{DB: app.DB}
		app.FileTypesRepo = &filetypes.PGRepo{DB: app.DB}
		app.MetadataRepo = &metadata.PGRepo{DB: app.DB}
		app.FilesRepo = &files.PGRepo{DB: app.DB}
	} else {
		app.AuditRepo = audit.NewMemoryRepo()
		app.ObservationsRepo = observations.NewMemoryRepo()
		app.FileTypesRepo = filetypes.NewMemoryRepo()
		app.MetadataRepo = metadata.NewMemoryRepo()
		app.FilesRepo = files.NewMemoryRepo()
	}

	var locker files.Locker
	if app.DB != nil {
		locker = &db.AdvisoryLocker{DB: app.DB}
	} else {
		locker = files.NewMemoryLocker()
	}

	app.ObservationsService = &observations.Service{Repo: app.ObservationsRepo, Audit: app.AuditRepo}
	app.FileTypesService = &filetypes.Service{Repo: app.FileTypesRepo}
	app.MetadataService = &metadata.Service{Repo: app.MetadataRepo}
	app.Versioner = files.NewVersioner(app.FilesRepo, app.Store, locker)
	app.CorrectionsService = &corrections.Service{
		Metadata: app.MetadataService,
		Files:    app.Versioner,
		Audit:    app.AuditRepo,
	}

	app.ObservationsHandler = observations.NewHandler(app.ObservationsService, app.FileTypesService)
	app.CorrectionsHandler = corrections.NewHandler(app.CorrectionsService, app.Config.MaxUploadMB)
	app.MetadataHandler = metadata.NewHandler(app.MetadataRepo)
	app.FilesHandler = files.NewHandler(app.FilesRepo)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
