package schema

import (
	"time"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
)

// NumberStat represents the number_stats table - the derived
// frequency/gap aggregate per (number, game). The table is a cache of
// draw_results, never a source of truth: every value must be derivable
// by replaying the draw history.
type NumberStat struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Number is the ball number this row aggregates
	Number int `gorm:"column:number;not null;uniqueIndex:uix_number_game,priority:1"`
	// Game identifies the lottery product
	Game domain.GameType `gorm:"column:game;not null;type:varchar(20);index;uniqueIndex:uix_number_game,priority:2"`
	// Frequency is the cumulative appearance count within the stats window
	Frequency int `gorm:"column:frequency;not null;default:0"`
	// LastSeen is the draw date the number last appeared, nil if never
	LastSeen *time.Time `gorm:"column:last_seen"`
	// CurrentGap counts draws since the last appearance
	CurrentGap int `gorm:"column:current_gap;not null;default:0"`
	// MaxGap is the longest gap ever observed within the window
	MaxGap int `gorm:"column:max_gap;not null;default:0"`
}

// TableName specifies the table name for the NumberStat model
func (NumberStat) TableName() string {
	return "number_stats"
}
