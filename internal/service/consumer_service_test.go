package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ai-code-debugger/internal/dto"
	"ai-code-debugger/pkg/analyzer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsumerStoresPublishedAnalysis(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	repo := &fakeAnalysisRepo{}

	consumer := NewConsumerService(pubSub, "test-topic", repo, nil, nil, nopLogger{})
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService("test-topic", pubSub)

	reportId := uuid.New()
	payload, err := json.Marshal(dto.AnalysisCompletedMessage{
		ReportId: reportId,
		ClientId: "client-1",
		Filename: "loop.py",
		Mode:     "basic",
		Code:     "for i in range(3):\n    print(i)\n",
		Report: &analyzer.Report{
			Errors: []analyzer.Diagnostic{},
			PerformanceTips: []analyzer.PerformanceIssue{
				{Type: "NestedLoop", Line: 1, Message: "x", Suggestion: "y"},
			},
		},
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(context.Background(), payload))

	require.Eventually(t, func() bool {
		return len(repo.stored()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	rec := repo.stored()[0]
	assert.Equal(t, reportId, rec.Id)
	assert.Equal(t, "client-1", rec.ClientId)
	assert.Equal(t, "loop.py", rec.Filename)
	assert.Equal(t, 0, rec.ErrorCount)
	assert.Equal(t, 1, rec.TipCount)
}

func TestConsumerAcksMalformedPayload(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	repo := &fakeAnalysisRepo{}

	consumer := NewConsumerService(pubSub, "test-topic", repo, nil, nil, nopLogger{})
	require.NoError(t, consumer.Consume(context.Background()))

	publisher := NewPublisherService("test-topic", pubSub)
	require.NoError(t, publisher.Publish(context.Background(), []byte("not json")))

	// a poisoned message must be dropped, not retried forever
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, repo.stored())
}
