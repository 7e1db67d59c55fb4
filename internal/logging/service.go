package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/config"
)

func NewServiceLogger(cfg *config.Config, service string) zerolog.Logger {
	return log.With().Str("service_id", cfg.ServiceID).Str("service", service).Logger()
}
