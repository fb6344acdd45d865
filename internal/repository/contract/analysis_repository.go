package contract

import (
	"context"

	"ai-code-debugger/internal/entity"
	"ai-code-debugger/internal/repository/specification"
)

type AnalysisRepository interface {
	Create(ctx context.Context, record *entity.AnalysisRecord) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AnalysisRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AnalysisRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
