package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-code-debugger/internal/dto"
	"ai-code-debugger/internal/entity"
	"ai-code-debugger/internal/pkg/logger"
	"ai-code-debugger/internal/repository/contract"
	"ai-code-debugger/internal/websocket"
	"ai-code-debugger/pkg/events"
	pktNats "ai-code-debugger/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process bus and stores finished analysis
// reports. Keeping the database write off the request path means a slow
// database never delays the analysis response.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	analysisRepo   contract.AnalysisRepository
	eventPublisher *pktNats.Publisher
	wsHub          *websocket.Hub
	logger         logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	analysisRepo contract.AnalysisRepository,
	eventPublisher *pktNats.Publisher,
	wsHub *websocket.Hub,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		analysisRepo:   analysisRepo,
		eventPublisher: eventPublisher,
		wsHub:          wsHub,
		logger:         log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.AnalysisCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payload never becomes valid, do not retry
		return
	}

	record := entity.AnalysisRecord{
		Id:         payload.ReportId,
		ClientId:   payload.ClientId,
		Filename:   payload.Filename,
		Mode:       payload.Mode,
		SourceCode: payload.Code,
		Report:     payload.Report,
		CreatedAt:  time.Now(),
	}
	if payload.Report != nil {
		record.ErrorCount = len(payload.Report.Errors)
		record.TipCount = len(payload.Report.PerformanceTips)
	}

	if err := cs.analysisRepo.Create(ctx, &record); err != nil {
		cs.logger.Error("Consumer", "Failed to store analysis record", map[string]interface{}{
			"report_id": payload.ReportId,
			"error":     err.Error(),
		})
		msg.Nack()
		return
	}

	// Integration event for anything listening outside this process. Losing
	// it does not invalidate the stored record, so failures only log.
	if cs.eventPublisher != nil {
		evt := events.AnalysisCompleted{
			ReportID:   payload.ReportId.String(),
			ClientID:   payload.ClientId,
			Filename:   payload.Filename,
			ErrorCount: record.ErrorCount,
			TipCount:   record.TipCount,
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn("Consumer", "Failed to publish analysis event", map[string]interface{}{
				"report_id": payload.ReportId,
				"error":     err.Error(),
			})
		}
	}

	if cs.wsHub != nil {
		cs.wsHub.Send(payload.ClientId, "analysis.stored", map[string]interface{}{
			"report_id":   payload.ReportId,
			"filename":    payload.Filename,
			"error_count": record.ErrorCount,
			"tip_count":   record.TipCount,
		})
	}

	cs.logger.Info("Consumer", "Analysis record stored", map[string]interface{}{
		"report_id": payload.ReportId,
		"client_id": payload.ClientId,
	})
	msg.Ack()
}
