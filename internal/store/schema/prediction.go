package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
)

// PredictionSet is one ranked candidate combination with its confidence
type PredictionSet struct {
	Numbers    []int   `json:"numbers"`
	Confidence float64 `json:"confidence"`
}

// Prediction represents the predictions table - one forecast per
// (target_period, game). The primary Numbers/Confidence pair mirrors
// set 1 for backward-compatible consumers; Sets carries the full ranked
// alternatives. A verified row is frozen for audit integrity.
type Prediction struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TargetPeriod is the zero-padded period this forecast targets
	TargetPeriod string `gorm:"column:target_period;not null;type:varchar(20);uniqueIndex:uix_target_period_game,priority:1"`
	// Game identifies the lottery product
	Game domain.GameType `gorm:"column:game;not null;type:varchar(20);index;uniqueIndex:uix_target_period_game,priority:2"`

	// Numbers is the primary predicted combination (set 1)
	Numbers datatypes.JSONSlice[int] `gorm:"column:numbers;not null"`
	// Confidence is set 1's confidence score
	Confidence float64 `gorm:"column:confidence;not null"`
	// Sets holds the three ranked candidate sets
	Sets datatypes.JSONSlice[PredictionSet] `gorm:"column:sets"`

	// PremiumOnly restricts the unmasked result to privileged consumers
	PremiumOnly bool `gorm:"column:premium_only;not null;default:false"`
	// Verified marks that the real outcome has been compared exactly once
	Verified bool `gorm:"column:verified;not null;default:false"`
	// Matches is the intersection size of set 1 with the actual primary
	// numbers, nil until verified
	Matches *int `gorm:"column:matches"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for the Prediction model
func (Prediction) TableName() string {
	return "predictions"
}
