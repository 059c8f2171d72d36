package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
)

// DrawResult represents the draw_results table - one historical drawing
// for one game. (draw_period, game) is unique; a record is immutable
// once written except for the raw HTML audit snapshot.
type DrawResult struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// DrawDate is the calendar date of the drawing
	DrawDate time.Time `gorm:"column:draw_date;not null;index"`
	// DrawPeriod is the zero-padded period identifier (natural sort key)
	DrawPeriod string `gorm:"column:draw_period;not null;type:varchar(20);uniqueIndex:uix_draw_period_game,priority:1"`
	// Game identifies the lottery product (mega645, power655)
	Game domain.GameType `gorm:"column:game;not null;type:varchar(20);index;uniqueIndex:uix_draw_period_game,priority:2"`
	// Numbers is the ordered list of drawn numbers (6 or 7 depending on game)
	Numbers datatypes.JSONSlice[int] `gorm:"column:numbers;not null"`

	// JackpotWon marks whether any jackpot tier had winners this period
	JackpotWon      bool  `gorm:"column:jackpot_won;not null;default:false"`
	JackpotValue    int64 `gorm:"column:jackpot_value;not null;default:0"`
	JackpotWinners  int   `gorm:"column:jackpot_winners;not null;default:0"`
	Jackpot2Value   int64 `gorm:"column:jackpot2_value;not null;default:0"`
	Jackpot2Winners int   `gorm:"column:jackpot2_winners;not null;default:0"`

	FirstPrizeValue    int64 `gorm:"column:first_prize_value;not null;default:0"`
	FirstPrizeWinners  int   `gorm:"column:first_prize_winners;not null;default:0"`
	SecondPrizeValue   int64 `gorm:"column:second_prize_value;not null;default:0"`
	SecondPrizeWinners int   `gorm:"column:second_prize_winners;not null;default:0"`
	ThirdPrizeValue    int64 `gorm:"column:third_prize_value;not null;default:0"`
	ThirdPrizeWinners  int   `gorm:"column:third_prize_winners;not null;default:0"`

	// RawHTML is the raw source snapshot kept for audit
	RawHTML string `gorm:"column:raw_html;type:text"`
	// CreatedAt is the timestamp when this draw was first ingested
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName specifies the table name for the DrawResult model
func (DrawResult) TableName() string {
	return "draw_results"
}

// PrimaryNumbers returns the first six drawn numbers. Statistics and
// verification use only the primary set even for the 7-number product.
func (d *DrawResult) PrimaryNumbers() []int {
	if len(d.Numbers) <= domain.PrimaryNumbers {
		return []int(d.Numbers)
	}
	return []int(d.Numbers)[:domain.PrimaryNumbers]
}
