package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ai-code-debugger/internal/constant"
	"ai-code-debugger/internal/dto"
	"ai-code-debugger/internal/entity"
	"ai-code-debugger/internal/repository/memory"
	"ai-code-debugger/pkg/analyzer"
	"ai-code-debugger/pkg/usage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalysisFixture(provider *stubProvider) (IAnalysisService, *fakeAnalysisRepo, *capturingPublisher, *memory.WorkspaceRepository) {
	repo := &fakeAnalysisRepo{}
	publisher := &capturingPublisher{}
	workspaces := memory.NewWorkspaceRepository()
	svc := NewAnalysisService(
		repo,
		workspaces,
		publisher,
		provider,
		usage.NewLimiter(nil, nopLogger{}),
		0, // unlimited
		nopLogger{},
	)
	return svc, repo, publisher, workspaces
}

func TestAnalyzeRejectsEmptyCode(t *testing.T) {
	provider := &stubProvider{reply: "should not be called"}
	svc, _, publisher, _ := newAnalysisFixture(provider)

	_, err := svc.Analyze(context.Background(), "client-1", &dto.AnalyzeRequest{Code: "   \n\t"})
	require.Error(t, err)

	fiberErr, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)

	assert.Empty(t, provider.prompts, "model must not be called for empty code")
	assert.Empty(t, publisher.payloads)
}

func TestAnalyzeWithSyntaxError(t *testing.T) {
	provider := &stubProvider{reply: "Add a colon after the condition."}
	svc, _, publisher, workspaces := newAnalysisFixture(provider)

	res, err := svc.Analyze(context.Background(), "client-1", &dto.AnalyzeRequest{
		Code:     "if x > 1\nprint(x)\n",
		Filename: "broken.py",
	})
	require.NoError(t, err)

	require.NotEmpty(t, res.Errors)
	assert.Equal(t, analyzer.SeverityError, res.Errors[0].Severity)

	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, res.Errors[0].Type, res.Suggestions[0].ErrorType)
	assert.Equal(t, "Add a colon after the condition.", res.Suggestions[0].Suggestion)

	// the prompt carried the submitted source
	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "if x > 1")

	// the workspace now holds this submission for later chat turns
	ws, found := workspaces.Get("client-1")
	require.True(t, found)
	assert.Equal(t, res.Id, ws.LastReportID)
	assert.Equal(t, "broken.py", ws.Filename)

	// persistence was handed to the bus with the same report id
	require.Len(t, publisher.payloads, 1)
	var msg dto.AnalysisCompletedMessage
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &msg))
	assert.Equal(t, res.Id, msg.ReportId)
	assert.Equal(t, "client-1", msg.ClientId)
	require.NotNil(t, msg.Report)
	assert.Len(t, msg.Report.Errors, len(res.Errors))
}

func TestAnalyzeSuggestionDegradesOnProviderFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("provider down")}
	svc, _, _, _ := newAnalysisFixture(provider)

	res, err := svc.Analyze(context.Background(), "client-1", &dto.AnalyzeRequest{
		Code: "if x > 1\nprint(x)\n",
	})
	require.NoError(t, err, "a dead model must not fail the analysis")

	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, constant.SuggestionUnavailableText, res.Suggestions[0].Suggestion)
}

func TestAnalyzePerformanceModeAddsOptimizationPass(t *testing.T) {
	provider := &stubProvider{reply: "Use a list comprehension instead."}
	svc, _, _, _ := newAnalysisFixture(provider)

	res, err := svc.Analyze(context.Background(), "client-1", &dto.AnalyzeRequest{
		Code: "result = []\nfor i in range(10):\n    result.append(i)\n",
		Mode: constant.AnalysisModePerformance,
	})
	require.NoError(t, err)

	assert.Empty(t, res.Errors)
	require.NotEmpty(t, res.PerformanceTips)

	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "Performance", res.Suggestions[0].ErrorType)
	assert.Equal(t, "Use a list comprehension instead.", res.Suggestions[0].Suggestion)
}

func TestAnalyzeUploadRejectsNonUTF8(t *testing.T) {
	provider := &stubProvider{}
	svc, _, _, _ := newAnalysisFixture(provider)

	_, err := svc.AnalyzeUpload(context.Background(), "client-1", "data.bin", []byte{0xff, 0xfe, 0xfd})
	require.Error(t, err)

	fiberErr, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
}

func TestGetAnalysisScopedToClient(t *testing.T) {
	provider := &stubProvider{}
	svc, repo, _, _ := newAnalysisFixture(provider)

	id := uuid.New()
	repo.records = append(repo.records, &entity.AnalysisRecord{
		Id:         id,
		ClientId:   "owner",
		SourceCode: "x = 1\n",
		Mode:       constant.AnalysisModeBasic,
		Report:     &analyzer.Report{},
		CreatedAt:  time.Now(),
	})

	detail, err := svc.GetAnalysis(context.Background(), "owner", id)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", detail.SourceCode)

	_, err = svc.GetAnalysis(context.Background(), "intruder", id)
	require.Error(t, err)
	fiberErr, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
}
