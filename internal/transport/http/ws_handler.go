package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"quiz-progress-service/internal/domain"
)

// WSHandler streams a user's statistics over a websocket.
type WSHandler struct {
	h        *Handler
	upgrader websocket.Upgrader
}

func newWSHandler(h *Handler) *WSHandler {
	return &WSHandler{
		h: h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type welcomePayload struct {
	UserID string `json:"userId"`
}

// ServeWS upgrades the request and serves one user's live stats. Clients without
// a userId get a fresh one in the welcome message and should reuse it.
func (ws *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		userID = uuid.NewString()
	}
	lang := ws.h.language(r)
	logger := ws.h.Logger.With("user", userID)

	conn, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel := ws.h.Service.Subscribe(userID)
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer: gorilla connections do not support concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				logger.Warn("ws write error", "error", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case stats, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "stats", Payload: ws.h.Views.Render(stats, lang)}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "welcome", Payload: welcomePayload{UserID: userID}}
	send <- outboundMessage[any]{Type: "stats", Payload: ws.h.Views.Render(ws.h.Service.Stats(r.Context(), userID), lang)}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "complete":
			var payload completionRequest
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid completion payload"}}
				continue
			}
			// Fresh stats reach this connection through its own subscription.
			_, err := ws.h.Service.CompleteQuiz(r.Context(), userID, domain.QuizOutcome{
				QuizID:         strings.TrimSpace(payload.QuizID),
				Score:          payload.Score,
				TotalQuestions: payload.TotalQuestions,
			})
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "stats":
			send <- outboundMessage[any]{Type: "stats", Payload: ws.h.Views.Render(ws.h.Service.Stats(r.Context(), userID), lang)}
		case "share":
			send <- outboundMessage[any]{Type: "share", Payload: ws.h.sharePayload(r, userID)}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
