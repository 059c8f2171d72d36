package domain

// GameType identifies a Vietlott lottery product
type GameType string

const (
	// GameMega645 represents Mega 6/45: six numbers drawn from 1..45
	GameMega645 GameType = "mega645"
	// GamePower655 represents Power 6/55: six primary numbers plus one
	// extra number drawn from 1..55
	GamePower655 GameType = "power655"
)

// PeriodWidth is the fixed zero-padded width of a draw period identifier.
// All periods are normalized to this width before comparison or storage.
const PeriodWidth = 5

// PrimaryNumbers is the number of primary drawn numbers used for
// statistics and prediction verification, regardless of game
const PrimaryNumbers = 6

// Valid reports whether the game type is a known product
func (g GameType) Valid() bool {
	switch g {
	case GameMega645, GamePower655:
		return true
	}
	return false
}

// MaxNumber returns the upper bound of the game's number range
func (g GameType) MaxNumber() int {
	if g == GamePower655 {
		return 55
	}
	return 45
}

// DrawCount returns the minimum count of numbers a valid result page
// must carry for the game (Power 6/55 includes the extra number)
func (g GameType) DrawCount() int {
	if g == GamePower655 {
		return 7
	}
	return 6
}

// PrizeTier identifies a prize tier row in the upstream results table.
// Upstream label text is locale-specific and not a stable contract, so
// tiers are matched through a configurable label table keyed by tier.
type PrizeTier string

const (
	TierJackpot  PrizeTier = "jackpot"
	TierJackpot2 PrizeTier = "jackpot2"
	TierFirst    PrizeTier = "first"
	TierSecond   PrizeTier = "second"
	TierThird    PrizeTier = "third"
)

// TierMatchOrder is the fixed priority in which tier labels are matched
// against a prize row. "Jackpot 2" must be tested before the plain
// jackpot rule so the two-jackpot product's rows are not conflated.
var TierMatchOrder = []PrizeTier{TierJackpot2, TierJackpot, TierFirst, TierSecond, TierThird}

// DefaultTierLabels are the upstream Vietnamese label fragments.
// Matching is substring-based.
func DefaultTierLabels() map[PrizeTier]string {
	return map[PrizeTier]string{
		TierJackpot:  "Jackpot",
		TierJackpot2: "Jackpot 2",
		TierFirst:    "Nhất",
		TierSecond:   "Nhì",
		TierThird:    "Ba",
	}
}
