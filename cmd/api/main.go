package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"titulares-admin/internal/adapters/auth/identity"
	"titulares-admin/internal/adapters/files/local"
	smtpmail "titulares-admin/internal/adapters/mail/smtp"
	pg "titulares-admin/internal/adapters/storage/postgres"
	"titulares-admin/internal/platform/config"
	"titulares-admin/internal/platform/logger"
	"titulares-admin/internal/ports/auth"
	"titulares-admin/internal/ports/mailer"
	"titulares-admin/internal/router"

	_ "titulares-admin/docs"
)

// @title Titulares Admin API
// @version 1.0
// @description Administración de titulares, carpetas de formularios dinámicos, aportes y consentimientos.
// @BasePath /
func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		// config rota sí es fatal; ausente no (Load devuelve defaults)
		panic(err)
	}
	cfg = cfg.FromEnv()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	var db *sql.DB
	if cfg.DatabaseDSN != "" {
		db, err = pg.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Error("no se pudo abrir postgres", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
	}

	files, err := local.NewStore(cfg.UploadsDir)
	if err != nil {
		log.Error("no se pudo crear el directorio de uploads", map[string]any{
			"dir":   cfg.UploadsDir,
			"error": err.Error(),
		})
		os.Exit(1)
	}

	var mail mailer.Mailer
	if cfg.SMTP.Host != "" {
		m, err := smtpmail.NewMailer(smtpmail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		if err != nil {
			log.Error("no se pudo configurar smtp", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		mail = m
	}

	var verifier auth.Verifier
	if cfg.AuthBaseURL != "" {
		client, err := identity.NewClient(identity.Config{
			BaseURL: cfg.AuthBaseURL,
			APIKey:  cfg.AuthAPIKey,
		})
		if err != nil {
			log.Error("no se pudo configurar el verificador de identidad", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = identity.NewVerifier(client)
	} else {
		log.Warn("sin AUTH_BASE_URL: modo dev, auth por header X-Debug-User-ID", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:  verifier,
		DB:            db,
		Files:         files,
		Mail:          mail,
		PortalBaseURL: cfg.PortalBaseURL,
		Log:           log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
