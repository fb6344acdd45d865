package service

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"ai-code-debugger/internal/constant"
	"ai-code-debugger/internal/dto"
	"ai-code-debugger/internal/pkg/logger"
	"ai-code-debugger/internal/repository/contract"
	"ai-code-debugger/internal/repository/memory"
	"ai-code-debugger/internal/repository/specification"
	"ai-code-debugger/pkg/analyzer"
	"ai-code-debugger/pkg/llm"
	"ai-code-debugger/pkg/prompt"
	"ai-code-debugger/pkg/store"
	"ai-code-debugger/pkg/usage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Suggestions are the expensive part of an analysis: one model call per
// finding. Cap them so a pathological submission cannot burn the whole
// daily quota in a single request.
const maxSuggestionsPerAnalysis = 5

type IAnalysisService interface {
	Analyze(ctx context.Context, clientId string, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error)
	AnalyzeUpload(ctx context.Context, clientId string, filename string, content []byte) (*dto.AnalyzeResponse, error)
	GetAllAnalyses(ctx context.Context, clientId string) ([]*dto.AnalysisSummaryResponse, error)
	GetAnalysis(ctx context.Context, clientId string, id uuid.UUID) (*dto.AnalysisDetailResponse, error)
}

type analysisService struct {
	analysisRepo     contract.AnalysisRepository
	workspaceRepo    *memory.WorkspaceRepository
	publisherService IPublisherService
	llmProvider      llm.Provider
	limiter          *usage.Limiter
	dailyLimit       int
	logger           logger.ILogger
}

func NewAnalysisService(
	analysisRepo contract.AnalysisRepository,
	workspaceRepo *memory.WorkspaceRepository,
	publisherService IPublisherService,
	llmProvider llm.Provider,
	limiter *usage.Limiter,
	dailyLimit int,
	log logger.ILogger,
) IAnalysisService {
	return &analysisService{
		analysisRepo:     analysisRepo,
		workspaceRepo:    workspaceRepo,
		publisherService: publisherService,
		llmProvider:      llmProvider,
		limiter:          limiter,
		dailyLimit:       dailyLimit,
		logger:           log,
	}
}

func (s *analysisService) Analyze(ctx context.Context, clientId string, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Code must not be empty")
	}

	mode := req.Mode
	if mode == "" {
		mode = constant.AnalysisModeBasic
	}

	if err := s.limiter.Allow(ctx, clientId, usage.ActionAnalyze, s.dailyLimit); err != nil {
		return nil, err
	}

	report := analyzer.Analyze(req.Code)

	suggestions := s.buildSuggestions(ctx, req.Code, mode, report)

	reportId := uuid.New()

	// The workspace is what later chat turns see: the code under debug plus
	// a summary of this run.
	s.workspaceRepo.Save(&store.Workspace{
		ClientID:       clientId,
		Code:           req.Code,
		Filename:       req.Filename,
		Mode:           mode,
		LastReportID:   reportId,
		LastErrorCount: len(report.Errors),
		LastTipCount:   len(report.PerformanceTips),
	})

	// Persistence happens off the request path. The response carries the
	// pre-generated id so the history endpoints can find the record once
	// the consumer has stored it.
	msgPayload := dto.AnalysisCompletedMessage{
		ReportId: reportId,
		ClientId: clientId,
		Filename: req.Filename,
		Mode:     mode,
		Code:     req.Code,
		Report:   report,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	return &dto.AnalyzeResponse{
		Id:              reportId,
		Errors:          report.Errors,
		Suggestions:     suggestions,
		PerformanceTips: report.PerformanceTips,
		Complexity:      report.Complexity,
		FormattedCode:   report.FormattedCode,
	}, nil
}

func (s *analysisService) AnalyzeUpload(ctx context.Context, clientId string, filename string, content []byte) (*dto.AnalyzeResponse, error) {
	if !utf8.Valid(content) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "File must be UTF-8 encoded Python source")
	}

	return s.Analyze(ctx, clientId, &dto.AnalyzeRequest{
		Code:     string(content),
		Filename: filename,
	})
}

// buildSuggestions asks the model for a fix per diagnostic. A failed call
// degrades that one suggestion to a placeholder, the analysis itself never
// fails because of the model.
func (s *analysisService) buildSuggestions(ctx context.Context, code, mode string, report *analyzer.Report) []dto.SuggestionDTO {
	suggestions := make([]dto.SuggestionDTO, 0)

	for _, diag := range report.Errors {
		if diag.Severity != analyzer.SeverityError {
			continue
		}
		if len(suggestions) >= maxSuggestionsPerAnalysis {
			break
		}

		text, err := s.llmProvider.Generate(ctx,
			prompt.NewSuggestionBuilder(code, diag).Build(),
			llm.WithTemperature(0.3),
		)
		if err != nil {
			s.logger.Warn("Analysis", "Suggestion call failed", map[string]interface{}{
				"type":  diag.Type,
				"line":  diag.Line,
				"error": err.Error(),
			})
			text = constant.SuggestionUnavailableText
		}

		suggestions = append(suggestions, dto.SuggestionDTO{
			ErrorType:  diag.Type,
			Line:       diag.Line,
			Suggestion: text,
		})
	}

	// Performance mode adds one aggregate optimization pass over all
	// heuristic findings.
	if mode == constant.AnalysisModePerformance && len(report.PerformanceTips) > 0 {
		text, err := s.llmProvider.Generate(ctx,
			prompt.NewPerformanceBuilder(code, report.PerformanceTips).Build(),
			llm.WithTemperature(0.3),
		)
		if err != nil {
			s.logger.Warn("Analysis", "Performance suggestion call failed", map[string]interface{}{
				"error": err.Error(),
			})
			text = constant.SuggestionUnavailableText
		}
		suggestions = append(suggestions, dto.SuggestionDTO{
			ErrorType:  "Performance",
			Suggestion: text,
		})
	}

	return suggestions
}

func (s *analysisService) GetAllAnalyses(ctx context.Context, clientId string) ([]*dto.AnalysisSummaryResponse, error) {
	records, err := s.analysisRepo.FindAll(ctx,
		specification.OwnedByClient{ClientID: clientId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 50},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AnalysisSummaryResponse, 0, len(records))
	for _, rec := range records {
		res = append(res, &dto.AnalysisSummaryResponse{
			Id:         rec.Id,
			Filename:   rec.Filename,
			Mode:       rec.Mode,
			ErrorCount: rec.ErrorCount,
			TipCount:   rec.TipCount,
			CreatedAt:  rec.CreatedAt,
		})
	}

	return res, nil
}

func (s *analysisService) GetAnalysis(ctx context.Context, clientId string, id uuid.UUID) (*dto.AnalysisDetailResponse, error) {
	rec, err := s.analysisRepo.FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedByClient{ClientID: clientId},
	)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Analysis not found")
	}

	return &dto.AnalysisDetailResponse{
		Id:         rec.Id,
		Filename:   rec.Filename,
		Mode:       rec.Mode,
		SourceCode: rec.SourceCode,
		Report:     rec.Report,
		CreatedAt:  rec.CreatedAt,
	}, nil
}
