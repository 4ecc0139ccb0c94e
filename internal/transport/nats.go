package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/ixome/troubleshooter/internal/config"
	"github.com/ixome/troubleshooter/internal/handlers"
	"github.com/ixome/troubleshooter/internal/models"
)

// NATSTransport serves the process contract over NATS request/reply for
// backend-to-backend callers.
type NATSTransport struct {
	conn    *nats.Conn
	config  *config.Config
	handler *handlers.ProcessHandler
	log     *zap.Logger
}

func NewNATSTransport(cfg *config.Config, handler *handlers.ProcessHandler, log *zap.Logger) (*NATSTransport, error) {
	conn, err := nats.Connect(cfg.NatsURL,
		nats.Name(cfg.ServiceName),
		nats.Timeout(cfg.NatsTimeout),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1), // Infinite reconnects
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log = log.Named("nats")
	log.Info("connected to NATS server", zap.String("url", cfg.NatsURL))

	return &NATSTransport{
		conn:    conn,
		config:  cfg,
		handler: handler,
		log:     log,
	}, nil
}

func (nt *NATSTransport) Start() error {
	_, err := nt.conn.Subscribe(nt.config.NatsRequestSubject, nt.handleProcessRequest)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", nt.config.NatsRequestSubject, err)
	}

	nt.log.Info("subscribed", zap.String("subject", nt.config.NatsRequestSubject))
	return nil
}

func (nt *NATSTransport) handleProcessRequest(msg *nats.Msg) {
	var request models.ProcessRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		nt.log.Error("error parsing request", zap.Error(err))
		nt.respond(msg, &models.ProcessResponse{Error: "Invalid request format"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), nt.config.ProcessTimeout)
	defer cancel()

	response, err := nt.handler.Process(ctx, &request)
	if err != nil {
		nt.log.Error("error processing request",
			zap.String("input_type", request.InputType),
			zap.Error(err),
		)
		if errors.Is(err, handlers.ErrInvalidRequest) {
			nt.respond(msg, &models.ProcessResponse{Error: err.Error()})
		} else {
			nt.respond(msg, &models.ProcessResponse{Error: "Server error"})
		}
		return
	}

	nt.respond(msg, response)
}

func (nt *NATSTransport) respond(msg *nats.Msg, response *models.ProcessResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		nt.log.Error("failed to marshal response", zap.Error(err))
		return
	}
	if err := msg.Respond(data); err != nil {
		nt.log.Error("failed to send response", zap.Error(err))
	}
}

func (nt *NATSTransport) Close() error {
	if nt.conn != nil {
		nt.conn.Close()
		nt.log.Info("NATS connection closed")
	}
	return nil
}
