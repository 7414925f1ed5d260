package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sepatuhub/pos-api/pkg/logger"
)

func TestNew_EstampaServiceYRespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:     "production",
		Level:   "warn",
		Service: "kicks-pos",
		Writer:  &buf,
	})

	log.Info().Msg("por debajo del nivel")
	log.Warn().Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "por debajo del nivel")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, `"service":"kicks-pos"`)
}

func TestNew_NivelInvalidoCaeEnInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "gritando", Writer: &buf})

	log.Debug().Msg("oculto")
	log.Info().Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "oculto")
	assert.Contains(t, out, "visible")
}
