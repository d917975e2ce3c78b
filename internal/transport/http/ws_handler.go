package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ckad-trainer/internal/app"
	"ckad-trainer/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler runs one trainer per websocket connection.
type WSHandler struct {
	banks        app.BankRepository
	defaultBank  string
	tickInterval time.Duration
	now          func() time.Time
	logger       *slog.Logger
	upgrader     websocket.Upgrader
}

// WSOption customizes a WSHandler.
type WSOption func(*WSHandler)

// WithTickInterval sets how often snapshots are pushed without input.
func WithTickInterval(d time.Duration) WSOption {
	return func(h *WSHandler) {
		if d > 0 {
			h.tickInterval = d
		}
	}
}

// WithClock is used by tests to drive expiry deterministically.
func WithClock(now func() time.Time) WSOption {
	return func(h *WSHandler) { h.now = now }
}

func WithLogger(logger *slog.Logger) WSOption {
	return func(h *WSHandler) { h.logger = logger }
}

func NewWSHandler(banks app.BankRepository, defaultBank string, opts ...WSOption) *WSHandler {
	h := &WSHandler{
		banks:        banks,
		defaultBank:  defaultBank,
		tickInterval: time.Second,
		now:          time.Now,
		logger:       slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type inboundMessage struct {
	Type string `json:"type"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

const (
	actionHint = "hint"
	actionNext = "next"
	actionQuit = "quit"
)

// ServeWS upgrades HTTP requests to websockets and drives a trainer from client actions.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	bankID := r.URL.Query().Get("bank")
	if bankID == "" {
		bankID = h.defaultBank
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	trainer, err := app.NewTrainer(ctx, app.Bank(h.banks, bankID),
		app.WithClock(h.now),
		app.WithLogger(h.logger.With("bank", bankID)),
	)
	if err != nil {
		h.logger.Warn("trainer not started", "bank", bankID, "err", err)
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: clientError(err)}})
		return
	}

	// The reader only decodes; the loop below is the trainer's single owner.
	actions := make(chan string)
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		defer cancel()
		for {
			var inbound inboundMessage
			if err := conn.ReadJSON(&inbound); err != nil {
				return
			}
			select {
			case actions <- inbound.Type:
			case <-ctx.Done():
				return
			}
		}
	}()

	if err := conn.WriteJSON(outboundMessage[domain.Snapshot]{Type: "joined", Payload: trainer.Snapshot()}); err != nil {
		return
	}

	ticker := time.NewTicker(h.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.finish(conn, readerDone)
			return
		case <-ticker.C:
		case action := <-actions:
			switch action {
			case actionHint:
				trainer.RequestHint()
			case actionNext:
				trainer.Next()
			case actionQuit:
				h.logger.Info("trainer quit", "trainer", trainer.ID())
				cancel()
				h.finish(conn, readerDone)
				return
			default:
				if err := conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}); err != nil {
					return
				}
				continue
			}
		}
		if err := conn.WriteJSON(outboundMessage[domain.Snapshot]{Type: "snapshot", Payload: trainer.Snapshot()}); err != nil {
			h.logger.Debug("ws write error", "err", err)
			return
		}
	}
}

// finish closes the connection politely and waits for the reader to exit.
func (h *WSHandler) finish(conn *websocket.Conn, readerDone <-chan struct{}) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
		time.Now().Add(time.Second))
	_ = conn.Close()
	<-readerDone
}

func clientError(err error) string {
	switch {
	case errors.Is(err, domain.ErrBankNotFound):
		return domain.ErrBankNotFound.Error()
	case errors.Is(err, domain.ErrEmptyQuestionBank):
		return domain.ErrEmptyQuestionBank.Error()
	default:
		return "failed to start trainer"
	}
}
