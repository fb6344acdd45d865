package service

import (
	"context"
	"sort"
	"sync"

	"ai-code-debugger/internal/entity"
	"ai-code-debugger/internal/repository/contract"
	"ai-code-debugger/internal/repository/specification"
	"ai-code-debugger/pkg/llm"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// stubProvider scripts model responses and records what it was asked.
type stubProvider struct {
	reply     string
	err       error
	prompts   []string
	histories [][]llm.Message
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.histories = append(p.histories, history)
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

// capturingPublisher records published payloads instead of using the bus.
type capturingPublisher struct {
	payloads [][]byte
	err      error
}

func (p *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

// The fakes below satisfy the repository contracts by interpreting the few
// specification types the services actually use.

type specFilter struct {
	id       *uuid.UUID
	clientId string
	session  *uuid.UUID
}

func parseSpecs(specs []specification.Specification) specFilter {
	var f specFilter
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			f.id = &id
		case specification.OwnedByClient:
			f.clientId = s.ClientID
		case specification.BySession:
			id := s.SessionID
			f.session = &id
		}
	}
	return f
}

// fakeAnalysisRepo is shared with the consumer goroutine in tests, so it
// locks around the slice.
type fakeAnalysisRepo struct {
	mu      sync.Mutex
	records []*entity.AnalysisRecord
}

func (r *fakeAnalysisRepo) Create(ctx context.Context, record *entity.AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *fakeAnalysisRepo) stored() []*entity.AnalysisRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.AnalysisRecord(nil), r.records...)
}

func (r *fakeAnalysisRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := parseSpecs(specs)
	for _, rec := range r.records {
		if f.id != nil && rec.Id != *f.id {
			continue
		}
		if f.clientId != "" && rec.ClientId != f.clientId {
			continue
		}
		return rec, nil
	}
	return nil, nil
}

func (r *fakeAnalysisRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := parseSpecs(specs)
	var out []*entity.AnalysisRecord
	for _, rec := range r.records {
		if f.clientId != "" && rec.ClientId != f.clientId {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeAnalysisRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	recs, _ := r.FindAll(ctx, specs...)
	return int64(len(recs)), nil
}

type fakeSessionRepo struct {
	sessions []*entity.ChatSession
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	for i, s := range r.sessions {
		if s.Id == session.Id {
			r.sessions[i] = session
			return nil
		}
	}
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, s := range r.sessions {
		if s.Id == id {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	f := parseSpecs(specs)
	for _, s := range r.sessions {
		if f.id != nil && s.Id != *f.id {
			continue
		}
		if f.clientId != "" && s.ClientId != f.clientId {
			continue
		}
		return s, nil
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	f := parseSpecs(specs)
	var out []*entity.ChatSession
	for _, s := range r.sessions {
		if f.clientId != "" && s.ClientId != f.clientId {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeMessageRepo struct {
	messages []*entity.ChatMessage
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	f := parseSpecs(specs)
	var out []*entity.ChatMessage
	for _, m := range r.messages {
		if f.session != nil && m.ChatSessionId != *f.session {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMessageRepo) DeleteBySession(ctx context.Context, sessionId uuid.UUID) error {
	var kept []*entity.ChatMessage
	for _, m := range r.messages {
		if m.ChatSessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

var (
	_ contract.AnalysisRepository    = (*fakeAnalysisRepo)(nil)
	_ contract.ChatSessionRepository = (*fakeSessionRepo)(nil)
	_ contract.ChatMessageRepository = (*fakeMessageRepo)(nil)
)
