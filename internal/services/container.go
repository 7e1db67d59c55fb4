package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/config"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/detector"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/logging"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/models"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/services/analysis"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/services/messaging"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/store/sqlite"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/ws"
)

// ServiceContainer holds all services
type ServiceContainer struct {
	Config    *config.Config
	DB        *sqlite.DB
	Store     *sqlite.AlertRepository
	Detector  detector.PersonDetector
	Messaging *messaging.Service
	Hub       *ws.Hub
	Analysis  *analysis.Service
}

// NewServiceContainer creates a new service container. The detection mode
// (real vs mock) and the messaging fan-out are decided here, once, at
// startup.
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	store := sqlite.NewAlertRepository(db)

	var det detector.PersonDetector
	if cfg.DetectorEnabled {
		opencv, err := detector.NewOpenCV(cfg, logging.NewServiceLogger(cfg, "detector"))
		if err != nil {
			log.Warn().Err(err).Msg("Detection adapter unavailable, running in mock mode")
		} else {
			det = opencv
		}
	} else {
		log.Info().Msg("Detector disabled by configuration, running in mock mode")
	}

	var publisher models.MessagePublisher
	var messagingSvc *messaging.Service
	if cfg.NatsEnabled {
		messagingSvc, err = messaging.NewService(cfg)
		if err != nil {
			log.Warn().Err(err).Msg("NATS unavailable, alerts will not be published")
		} else {
			publisher = messagingSvc
		}
	}

	hub := ws.NewHub(logging.NewServiceLogger(cfg, "alert-feed"))
	go hub.Run()

	analysisSvc := analysis.NewService(cfg, det, store, publisher, hub,
		logging.NewServiceLogger(cfg, "analysis"))

	return &ServiceContainer{
		Config:    cfg,
		DB:        db,
		Store:     store,
		Detector:  det,
		Messaging: messagingSvc,
		Hub:       hub,
		Analysis:  analysisSvc,
	}, nil
}

// Shutdown gracefully shuts down all services
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	if sc.Messaging != nil {
		if err := sc.Messaging.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("Messaging shutdown failed")
		}
	}

	if sc.Detector != nil {
		if err := sc.Detector.Close(); err != nil {
			log.Warn().Err(err).Msg("Detector close failed")
		}
	}

	if sc.DB != nil {
		return sc.DB.Close()
	}

	return nil
}
