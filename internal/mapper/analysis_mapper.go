package mapper

import (
	"encoding/json"

	"ai-code-debugger/internal/entity"
	"ai-code-debugger/internal/model"
	"ai-code-debugger/pkg/analyzer"
)

type AnalysisMapper struct{}

func NewAnalysisMapper() *AnalysisMapper {
	return &AnalysisMapper{}
}

func (m *AnalysisMapper) ToModel(e *entity.AnalysisRecord) *model.AnalysisRecord {
	reportJSON, _ := json.Marshal(e.Report)
	return &model.AnalysisRecord{
		Id:         e.Id,
		ClientId:   e.ClientId,
		Filename:   e.Filename,
		Mode:       e.Mode,
		SourceCode: e.SourceCode,
		Report:     reportJSON,
		ErrorCount: e.ErrorCount,
		TipCount:   e.TipCount,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *AnalysisMapper) ToEntity(mod *model.AnalysisRecord) *entity.AnalysisRecord {
	var report analyzer.Report
	// A record with an unreadable report is still listable; the report
	// field just comes back empty.
	_ = json.Unmarshal(mod.Report, &report)

	updatedAt := mod.UpdatedAt
	return &entity.AnalysisRecord{
		Id:         mod.Id,
		ClientId:   mod.ClientId,
		Filename:   mod.Filename,
		Mode:       mod.Mode,
		SourceCode: mod.SourceCode,
		Report:     &report,
		ErrorCount: mod.ErrorCount,
		TipCount:   mod.TipCount,
		CreatedAt:  mod.CreatedAt,
		UpdatedAt:  &updatedAt,
	}
}

func (m *AnalysisMapper) ToEntities(models []*model.AnalysisRecord) []*entity.AnalysisRecord {
	entities := make([]*entity.AnalysisRecord, len(models))
	for i, mod := range models {
		entities[i] = m.ToEntity(mod)
	}
	return entities
}
