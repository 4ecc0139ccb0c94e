package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ixome/troubleshooter/internal/config"
	"github.com/ixome/troubleshooter/internal/handlers"
	"github.com/ixome/troubleshooter/internal/logger"
	"github.com/ixome/troubleshooter/internal/memory"
	"github.com/ixome/troubleshooter/internal/pipeline"
	"github.com/ixome/troubleshooter/internal/speech"
	"github.com/ixome/troubleshooter/internal/transport"
	"github.com/ixome/troubleshooter/internal/vectorstore"
	"github.com/ixome/troubleshooter/internal/vision"
)

func main() {
	// Load .env file if it exists (for development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	zlog := logger.New(cfg.LogFilePath, cfg.Environment == "production")
	defer zlog.Sync()
	sugar := zlog.Sugar()

	sugar.Info("🚀 Starting Troubleshooter Service...")
	sugar.Infof("📋 Service: %s", cfg.ServiceName)
	sugar.Infof("📡 NATS URL: %s", cfg.NatsURL)
	sugar.Infof("🌐 HTTP port: %s", cfg.HTTPPort)

	ctx := context.Background()

	// Initialize Google Cloud clients
	sugar.Info("🎙️ Initializing speech client...")
	recognizer, err := speech.NewGoogleRecognizer(ctx, cfg.GoogleCredentials, cfg.SpeechLanguage)
	if err != nil {
		sugar.Fatalf("❌ Failed to initialize speech client: %v", err)
	}
	defer recognizer.Close()

	sugar.Info("👁️ Initializing vision client...")
	labeler, err := vision.NewGoogleLabeler(ctx, cfg.GoogleCredentials)
	if err != nil {
		sugar.Fatalf("❌ Failed to initialize vision client: %v", err)
	}
	defer labeler.Close()

	// Initialize the similarity index; without DATABASE_URL the resolver
	// runs on the static catalog only
	var index vectorstore.SolutionIndex
	var store *vectorstore.Store
	if cfg.DatabaseURL != "" {
		sugar.Info("🗄️ Connecting to vector store...")
		store, err = vectorstore.Open(cfg.DatabaseURL, cfg.EmbedDim, zlog)
		if err != nil {
			sugar.Fatalf("❌ Failed to open vector store: %v", err)
		}
		defer store.Close()
		if err := store.Migrate(); err != nil {
			sugar.Fatalf("❌ Failed to migrate vector store: %v", err)
		}
		index = store
		sugar.Info("✅ Vector store connected")
	} else {
		sugar.Warn("⚠️ DATABASE_URL not set, similarity search disabled")
	}

	embedder, err := vectorstore.NewEmbedderFromConfig(cfg)
	if err != nil {
		sugar.Fatalf("❌ Failed to initialize embedder: %v", err)
	}

	// Initialize session memory; the service still serves requests without it
	var sessions *memory.Manager
	if redisStore, err := memory.NewRedisStore(cfg.RedisURL, cfg.SessionTTL); err != nil {
		sugar.Warnf("⚠️ Redis unavailable, session transcripts disabled: %v", err)
	} else {
		sessions = memory.NewManager(redisStore)
		sugar.Info("✅ Session memory initialized")
	}

	// Wire the pipeline and handler
	pipe := pipeline.New(recognizer, labeler, index, embedder, zlog)
	handler := handlers.NewProcessHandler(pipe, sessions, zlog)
	sugar.Info("✅ Process handler initialized")

	// Initialize NATS transport
	natsTransport, err := transport.NewNATSTransport(cfg, handler, zlog)
	if err != nil {
		sugar.Fatalf("❌ Failed to initialize NATS transport: %v", err)
	}
	defer natsTransport.Close()

	if err := natsTransport.Start(); err != nil {
		sugar.Fatalf("❌ Failed to start NATS transport: %v", err)
	}

	// Start HTTP server
	httpServer := transport.NewHTTPServer(cfg, handler, zlog)
	go func() {
		if err := httpServer.Listen(); err != nil {
			sugar.Fatalf("❌ HTTP server failed: %v", err)
		}
	}()

	sugar.Info("✅ Troubleshooter Service is running!")
	sugar.Infof("👂 Listening on subject: %s", cfg.NatsRequestSubject)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	sugar.Infof("🛑 Received signal: %v", sig)
	sugar.Info("🔄 Shutting down gracefully...")

	if err := httpServer.Shutdown(); err != nil {
		sugar.Warnf("⚠️ Error shutting down HTTP server: %v", err)
	}
	if err := natsTransport.Close(); err != nil {
		sugar.Warnf("⚠️ Error closing NATS transport: %v", err)
	}
	if sessions != nil {
		sugar.Infof("📊 Final session count: %d", sessions.ActiveSessions())
		if err := sessions.Close(); err != nil {
			sugar.Warnf("⚠️ Error closing session memory: %v", err)
		}
	}

	sugar.Info("👋 Troubleshooter Service stopped")
}
