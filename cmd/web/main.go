package main

import (
	"context"
	"database/sql"
	"html/template"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/v2"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/maktaba/maktaba/internal/config"
	"github.com/maktaba/maktaba/internal/data"
	"github.com/maktaba/maktaba/internal/jsonlog"
)

type application struct {
	config        config.Config
	logger        *jsonlog.Logger
	models        data.Models
	settings      *data.SettingsModel
	session       *scs.SessionManager
	templateCache map[string]*template.Template
	metrics       *metrics
	registry      *prometheus.Registry
}

func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		logger.PrintFatal(err)
	}

	db, err := openDB(cfg)
	if err != nil {
		logger.PrintFatal(err)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	templateCache, err := newTemplateCache()
	if err != nil {
		logger.PrintFatal(err)
	}

	session := scs.New()
	session.Store = postgresstore.New(db)
	session.Lifetime = cfg.Session.Lifetime

	settings := data.NewSettingsModel(db)
	if _, err := settings.Load(); err != nil {
		logger.PrintFatal(err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	app := &application{
		config:        cfg,
		logger:        logger,
		models:        data.NewModels(db),
		settings:      settings,
		session:       session,
		templateCache: templateCache,
		metrics:       newMetrics(registry),
		registry:      registry,
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      app.routes(),
		ErrorLog:     log.New(logger, "", 0),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logger.PrintInfo("starting server", map[string]string{"addr": cfg.Addr})
	err = srv.ListenAndServe()
	logger.PrintFatal(err)
}

func openDB(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.DB.MaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
