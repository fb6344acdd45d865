package service

import (
	"context"
	"strings"
	"time"

	"ai-code-debugger/internal/constant"
	"ai-code-debugger/internal/dto"
	"ai-code-debugger/internal/entity"
	"ai-code-debugger/internal/pkg/logger"
	"ai-code-debugger/internal/repository/contract"
	"ai-code-debugger/internal/repository/memory"
	"ai-code-debugger/internal/repository/specification"
	"ai-code-debugger/pkg/llm"
	"ai-code-debugger/pkg/prompt"
	"ai-code-debugger/pkg/usage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const defaultSessionTitle = "Unnamed session"

const welcomeChat = "Hi! Run an analysis on your code, then ask me anything about the findings."

type IChatService interface {
	CreateSession(ctx context.Context, clientId string) (*dto.CreateSessionResponse, error)
	GetAllSessions(ctx context.Context, clientId string) ([]*dto.GetAllSessionsResponse, error)
	GetChatHistory(ctx context.Context, clientId string, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
	SendChat(ctx context.Context, clientId string, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	DeleteSession(ctx context.Context, clientId string, req *dto.DeleteSessionRequest) error
}

type chatService struct {
	sessionRepo   contract.ChatSessionRepository
	messageRepo   contract.ChatMessageRepository
	workspaceRepo *memory.WorkspaceRepository
	llmProvider   llm.Provider
	limiter       *usage.Limiter
	dailyLimit    int
	logger        logger.ILogger
}

func NewChatService(
	sessionRepo contract.ChatSessionRepository,
	messageRepo contract.ChatMessageRepository,
	workspaceRepo *memory.WorkspaceRepository,
	llmProvider llm.Provider,
	limiter *usage.Limiter,
	dailyLimit int,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessionRepo:   sessionRepo,
		messageRepo:   messageRepo,
		workspaceRepo: workspaceRepo,
		llmProvider:   llmProvider,
		limiter:       limiter,
		dailyLimit:    dailyLimit,
		logger:        log,
	}
}

func (cs *chatService) CreateSession(ctx context.Context, clientId string) (*dto.CreateSessionResponse, error) {
	now := time.Now()

	chatSession := entity.ChatSession{
		Id:        uuid.New(),
		ClientId:  clientId,
		Title:     defaultSessionTitle,
		CreatedAt: now,
	}

	chatMessage := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: chatSession.Id,
		Role:          constant.ChatMessageRoleModel,
		Chat:          welcomeChat,
		CreatedAt:     now,
	}

	if err := cs.sessionRepo.Create(ctx, &chatSession); err != nil {
		return nil, err
	}
	if err := cs.messageRepo.Create(ctx, &chatMessage); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{Id: chatSession.Id}, nil
}

func (cs *chatService) GetAllSessions(ctx context.Context, clientId string) ([]*dto.GetAllSessionsResponse, error) {
	sessions, err := cs.sessionRepo.FindAll(ctx,
		specification.OwnedByClient{ClientID: clientId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetAllSessionsResponse, 0, len(sessions))
	for _, session := range sessions {
		res = append(res, &dto.GetAllSessionsResponse{
			Id:        session.Id,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
		})
	}

	return res, nil
}

func (cs *chatService) GetChatHistory(ctx context.Context, clientId string, sessionId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	session, err := cs.findOwnedSession(ctx, clientId, sessionId)
	if err != nil {
		return nil, err
	}

	messages, err := cs.messageRepo.FindAll(ctx,
		specification.BySession{SessionID: session.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GetChatHistoryResponse, 0, len(messages))
	for _, msg := range messages {
		res = append(res, &dto.GetChatHistoryResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Chat:      msg.Chat,
			CreatedAt: msg.CreatedAt,
		})
	}

	return res, nil
}

func (cs *chatService) SendChat(ctx context.Context, clientId string, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	if err := cs.limiter.Allow(ctx, clientId, usage.ActionChat, cs.dailyLimit); err != nil {
		return nil, err
	}

	session, err := cs.findOwnedSession(ctx, clientId, req.ChatSessionId)
	if err != nil {
		return nil, err
	}

	stored, err := cs.messageRepo.FindAll(ctx,
		specification.BySession{SessionID: session.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	history := cs.buildHistory(clientId, stored, req.Chat)

	sentAt := time.Now()
	reply, err := cs.llmProvider.Chat(ctx, history, llm.WithTemperature(0.7))
	if err != nil {
		// Nothing is persisted on failure, the client can retry the same
		// message without producing duplicates.
		cs.logger.Error("Chat", "LLM call failed", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
		return nil, fiber.NewError(fiber.StatusBadGateway, "AI provider is unavailable, please try again")
	}

	// Real clock readings on both sides of the model call keep the stored
	// transcript in send order even when turns land within the same second.
	repliedAt := time.Now()
	userMessage := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleUser,
		Chat:          req.Chat,
		CreatedAt:     sentAt,
	}
	modelMessage := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatMessageRoleModel,
		Chat:          reply,
		CreatedAt:     repliedAt,
	}

	if err := cs.messageRepo.Create(ctx, &userMessage); err != nil {
		return nil, err
	}
	if err := cs.messageRepo.Create(ctx, &modelMessage); err != nil {
		return nil, err
	}

	if session.Title == defaultSessionTitle {
		session.Title = clipTitle(req.Chat)
	}
	session.UpdatedAt = &repliedAt
	if err := cs.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	return &dto.SendChatResponse{
		ChatSessionId:    session.Id,
		ChatSessionTitle: session.Title,
		Sent: &dto.SendChatResponseChat{
			Id:        userMessage.Id,
			Chat:      userMessage.Chat,
			Role:      userMessage.Role,
			CreatedAt: userMessage.CreatedAt,
		},
		Reply: &dto.SendChatResponseChat{
			Id:        modelMessage.Id,
			Chat:      modelMessage.Chat,
			Role:      modelMessage.Role,
			CreatedAt: modelMessage.CreatedAt,
		},
	}, nil
}

func (cs *chatService) DeleteSession(ctx context.Context, clientId string, req *dto.DeleteSessionRequest) error {
	session, err := cs.findOwnedSession(ctx, clientId, req.ChatSessionId)
	if err != nil {
		return err
	}

	if err := cs.messageRepo.DeleteBySession(ctx, session.Id); err != nil {
		return err
	}
	return cs.sessionRepo.Delete(ctx, session.Id)
}

func (cs *chatService) findOwnedSession(ctx context.Context, clientId string, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := cs.sessionRepo.FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.OwnedByClient{ClientID: clientId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Chat session not found")
	}
	return session, nil
}

// buildHistory assembles the provider-facing conversation: the system
// prelude, the stored turns, and the new question wrapped with the
// client's current workspace code as context.
func (cs *chatService) buildHistory(clientId string, stored []*entity.ChatMessage, question string) []llm.Message {
	history := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.DebuggerSystemPrompt},
		{Role: "assistant", Content: constant.DebuggerSystemAckPrompt},
	}

	for _, msg := range stored {
		role := "user"
		if msg.Role == constant.ChatMessageRoleModel {
			role = "assistant"
		}
		history = append(history, llm.Message{Role: role, Content: msg.Chat})
	}

	code := ""
	mode := constant.AnalysisModeBasic
	if ws, found := cs.workspaceRepo.Get(clientId); found {
		code = ws.Code
		mode = ws.Mode
	}

	history = append(history, llm.Message{
		Role:    "user",
		Content: prompt.NewChatBuilder(code, question, mode).Build(),
	})

	return history
}

func clipTitle(chat string) string {
	title := strings.TrimSpace(chat)
	title = strings.ReplaceAll(title, "\n", " ")
	// clip on rune boundaries, a byte slice could split a multi-byte char
	if runes := []rune(title); len(runes) > constant.SessionTitleMaxLen {
		title = string(runes[:constant.SessionTitleMaxLen])
	}
	if title == "" {
		title = defaultSessionTitle
	}
	return title
}
