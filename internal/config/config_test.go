package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "troubleshooter", cfg.ServiceName)
	assert.Equal(t, "5001", cfg.HTTPPort)
	assert.Equal(t, "support.process", cfg.NatsRequestSubject)
	assert.Equal(t, 1536, cfg.EmbedDim)
	assert.Equal(t, "placeholder", cfg.EmbeddingProvider)
	assert.Equal(t, "en-US", cfg.SpeechLanguage)
	assert.Equal(t, 30*time.Second, cfg.ProcessTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("EMBED_DIM", "768")
	t.Setenv("EMBEDDING_PROVIDER", "ollama")
	t.Setenv("PROCESS_TIMEOUT", "5s")

	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 768, cfg.EmbedDim)
	assert.Equal(t, "ollama", cfg.EmbeddingProvider)
	assert.Equal(t, 5*time.Second, cfg.ProcessTimeout)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("EMBED_DIM", "lots")
	t.Setenv("NATS_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 1536, cfg.EmbedDim)
	assert.Equal(t, 30*time.Second, cfg.NatsTimeout)
}
