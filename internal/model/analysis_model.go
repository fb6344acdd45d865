package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AnalysisRecord struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientId   string         `gorm:"type:varchar(64);not null;index"` // Anonymous client ownership
	Filename   string         `gorm:"type:text"`
	Mode       string         `gorm:"type:varchar(20);not null;default:'basic'"`
	SourceCode string         `gorm:"type:text;not null"`
	Report     datatypes.JSON `gorm:"type:jsonb;not null"`
	ErrorCount int            `gorm:"not null;default:0"`
	TipCount   int            `gorm:"not null;default:0"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (AnalysisRecord) TableName() string {
	return "analysis_records"
}
