package mapper

import (
	"ai-code-debugger/internal/entity"
	"ai-code-debugger/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) SessionToModel(e *entity.ChatSession) *model.ChatSession {
	return &model.ChatSession{
		Id:        e.Id,
		ClientId:  e.ClientId,
		Title:     e.Title,
		CreatedAt: e.CreatedAt,
	}
}

func (m *ChatMapper) SessionToEntity(mod *model.ChatSession) *entity.ChatSession {
	updatedAt := mod.UpdatedAt
	return &entity.ChatSession{
		Id:        mod.Id,
		ClientId:  mod.ClientId,
		Title:     mod.Title,
		CreatedAt: mod.CreatedAt,
		UpdatedAt: &updatedAt,
	}
}

func (m *ChatMapper) MessageToModel(e *entity.ChatMessage) *model.ChatMessage {
	return &model.ChatMessage{
		Id:            e.Id,
		Chat:          e.Chat,
		Role:          e.Role,
		ChatSessionId: e.ChatSessionId,
		CreatedAt:     e.CreatedAt,
	}
}

func (m *ChatMapper) MessageToEntity(mod *model.ChatMessage) *entity.ChatMessage {
	return &entity.ChatMessage{
		Id:            mod.Id,
		Chat:          mod.Chat,
		Role:          mod.Role,
		ChatSessionId: mod.ChatSessionId,
		CreatedAt:     mod.CreatedAt,
	}
}
