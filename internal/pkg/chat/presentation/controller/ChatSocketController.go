package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/SutharYagnesh/EduPath/internal/infrastructure/realtime"
	"github.com/SutharYagnesh/EduPath/internal/pkg/auth/presentation/middleware"
	"github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/usecase"
	"github.com/SutharYagnesh/EduPath/internal/pkg/chat/persistence/repository/adapter"
)

const (
	readLimit = 4 << 10
	pongWait  = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers talk to this endpoint cross-origin in development; auth is
	// handled by the token, not the Origin header.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ChatSocketController upgrades the realtime endpoint and manages room
// membership for the connection's lifetime. The socket is receive-only for
// chat content: messages are sent over HTTP, and only join/leave control
// frames are accepted here.
type ChatSocketController struct {
	Router *realtime.Router
	Join   *usecase.JoinChatUseCase
	Log    *zap.Logger
}

func NewChatSocketController(db *mongo.Database, router *realtime.Router, logger *zap.Logger) *ChatSocketController {
	repo := adapter.NewMongoChatRepository(db)
	return &ChatSocketController{
		Router: router,
		Join:   usecase.NewJoinChatUseCase(repo),
		Log:    logger,
	}
}

type controlFrame struct {
	Type   string `json:"type"`
	ChatID string `json:"chat_id"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func (h *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := middleware.IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.Log.Warn("socket: upgrade failed", zap.Error(err))
			return
		}

		conn := realtime.NewConnection(identity.UserID, ws)
		h.Router.Attach(conn)
		// Detach must run before Close so no broadcast targets a connection
		// that is mid-teardown.
		defer conn.Close(websocket.CloseNormalClosure, "")
		defer h.Router.Detach(conn)

		ws.SetReadLimit(readLimit)
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(pongWait))
		})

		for {
			_, raw, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					h.Log.Debug("socket: read error", zap.String("session", conn.ID), zap.Error(err))
				}
				return
			}

			var frame controlFrame
			if err := json.Unmarshal(raw, &frame); err != nil {
				h.sendError(conn, "malformed frame")
				continue
			}

			switch frame.Type {
			case "join_chat":
				err := h.Join.Execute(c.Request.Context(), usecase.JoinChatInput{
					OwnerID: identity.UserID,
					ChatID:  frame.ChatID,
				})
				if err != nil {
					if errors.Is(err, usecase.ErrNotFound) {
						h.sendError(conn, "chat not found")
					} else {
						h.sendError(conn, "server error")
					}
					continue
				}
				h.Router.Join(frame.ChatID, conn)
			case "leave_chat":
				h.Router.Leave(frame.ChatID, conn)
			default:
				// Chat content goes over the HTTP message endpoint so every
				// broadcast is backed by a persisted write.
				h.sendError(conn, "unsupported frame type")
			}
		}
	}
}

func (h *ChatSocketController) sendError(conn *realtime.Connection, msg string) {
	payload, err := json.Marshal(errorFrame{Type: "error", Error: msg})
	if err != nil {
		return
	}
	_ = conn.Send(payload)
}
