package http

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/SutharYagnesh/EduPath/internal/infrastructure/realtime"
	assistant "github.com/SutharYagnesh/EduPath/internal/pkg/assistant/port"
	"github.com/SutharYagnesh/EduPath/internal/pkg/chat/application/usecase"
	"github.com/SutharYagnesh/EduPath/internal/pkg/chat/persistence/repository/adapter"
	"github.com/SutharYagnesh/EduPath/internal/pkg/chat/presentation/controller"
	"github.com/SutharYagnesh/EduPath/internal/pkg/chat/presentation/relay"
)

// Deps carries the shared infrastructure the chat endpoints need beyond the
// database handle.
type Deps struct {
	DB        *mongo.Database
	Responder assistant.Responder
	Router    *realtime.Router
	Bridge    *realtime.Bridge
	Logger    *zap.Logger
}

// RegisterRoutes registers chat-related HTTP endpoints under the given router group
// It constructs per-endpoint controllers and binds them directly to routes.
// The group is expected to already carry the auth middleware.
func RegisterRoutes(g *gin.RouterGroup, deps Deps) {
	repo := adapter.NewMongoChatRepository(deps.DB)
	messageRelay := relay.NewMessageRelay(deps.Bridge, deps.Logger)
	sendUC := usecase.NewSendMessageUseCase(repo, deps.Responder, messageRelay)

	listCtl := controller.NewListChatsController(deps.DB)
	createCtl := controller.NewCreateChatController(deps.DB)
	updateCtl := controller.NewUpdateChatController(deps.DB)
	deleteCtl := controller.NewDeleteChatController(deps.DB)
	sendCtl := controller.NewSendMessageController(sendUC)
	socketCtl := controller.NewChatSocketController(deps.DB, deps.Router, deps.Logger)

	// GET /api/chat -> caller's chats, most recent first
	g.GET("/chat", listCtl.Handle())

	// POST /api/chat -> open a chat explicitly
	g.POST("/chat", createCtl.Handle())

	// PUT /api/chat/:chatId -> partial update (title and/or transcript)
	g.PUT("/chat/:chatId", updateCtl.Handle())

	// DELETE /api/chat/:chatId -> remove a chat
	g.DELETE("/chat/:chatId", deleteCtl.Handle())

	// POST /api/message -> one user/assistant exchange
	g.POST("/message", sendCtl.Handle())

	// GET /api/chat/ws -> realtime room subscription
	g.GET("/chat/ws", socketCtl.Handle())
}
