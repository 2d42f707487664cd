package router

import (
	"database/sql"
	"net/http"
	"os"

	"titulares-admin/internal/adapters/mail/noop"
	mem "titulares-admin/internal/adapters/storage/memory"
	pg "titulares-admin/internal/adapters/storage/postgres"
	"titulares-admin/internal/domain/aportes"
	"titulares-admin/internal/domain/consents"
	"titulares-admin/internal/domain/folders"
	"titulares-admin/internal/domain/planes"
	"titulares-admin/internal/domain/projects"
	"titulares-admin/internal/domain/titulares"
	"titulares-admin/internal/middleware"
	"titulares-admin/internal/platform/logger"
	"titulares-admin/internal/ports/auth"
	"titulares-admin/internal/ports/filestore"
	"titulares-admin/internal/ports/mailer"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.Verifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Files es el almacenamiento de archivos subidos (comprobantes y campos
	// file de los formularios). Nil => los uploads se descartan en silencio.
	Files filestore.Store

	// Mail es el mailer de notificaciones. Nil => noop.
	Mail mailer.Mailer

	// PortalBaseURL arma las URLs únicas que se mandan por correo.
	PortalBaseURL string

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	log := opts.Log
	if log == nil {
		log = logger.Noop()
	}

	mail := opts.Mail
	if mail == nil {
		mail = noop.NewMailer(log)
	}

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		projectsRepo  projects.Repository
		foldersRepo   folders.Repository
		titularesRepo titulares.Repository
		planesRepo    planes.Repository
		aportesRepo   aportes.Repository
		consentsRepo  consents.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("no se pudo abrir postgres, usando repos in-memory", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}

	if db != nil {
		projectsRepo = pg.NewProjectsRepo(db)
		foldersRepo = pg.NewFoldersRepo(db)
		titularesRepo = pg.NewTitularesRepo(db)
		planesRepo = pg.NewPlanesRepo(db)
		aportesRepo = pg.NewAportesRepo(db)
		consentsRepo = pg.NewConsentsRepo(db)
	} else {
		projectsRepo = mem.NewProjectsRepo()
		foldersRepo = mem.NewFoldersRepo()
		titularesRepo = mem.NewTitularesRepo()
		planesRepo = mem.NewPlanesRepo()
		aportesRepo = mem.NewAportesRepo()
		consentsRepo = mem.NewConsentsRepo()
	}

	// Services por módulo
	projectsSvc := projects.NewService(projectsRepo)
	foldersSvc := folders.NewService(foldersRepo)
	titularesSvc := titulares.NewService(titularesRepo, foldersSvc, opts.Files, mail, opts.PortalBaseURL)
	planesSvc := planes.NewService(planesRepo)
	aportesSvc := aportes.NewService(aportesRepo, titularesSvc, planesSvc, opts.Files, mail)
	consentsSvc := consents.NewService(consentsRepo)

	// Rutas de staff
	projects.RegisterRoutes(r, projectsSvc)
	folders.RegisterRoutes(r, foldersSvc)
	titulares.RegisterRoutes(r, titularesSvc)
	planes.RegisterRoutes(r, planesSvc)
	aportes.RegisterRoutes(r, aportesSvc)
	consents.RegisterRoutes(r, consentsSvc)

	// Rutas del portal del titular (sin auth de staff)
	titulares.RegisterPortalRoutes(r, titularesSvc, consentsSvc)
	aportes.RegisterPortalRoutes(r, aportesSvc)

	return r
}
