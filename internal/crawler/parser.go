package crawler

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
)

// titlePattern captures the draw period and dd/mm/yyyy date from the
// results page header, e.g. "Kỳ quay thưởng #01234 | Ngày 15/08/2026"
var titlePattern = regexp.MustCompile(`#(\d+).*?(\d{2}/\d{2}/\d{4})`)

// ParsedDraw is the structured outcome of one results page
type ParsedDraw struct {
	Period  string
	Date    time.Time
	Numbers []int

	JackpotWon      bool
	JackpotValue    int64
	JackpotWinners  int
	Jackpot2Value   int64
	Jackpot2Winners int

	FirstPrizeValue    int64
	FirstPrizeWinners  int
	SecondPrizeValue   int64
	SecondPrizeWinners int
	ThirdPrizeValue    int64
	ThirdPrizeWinners  int
}

// Parser extracts draw records from upstream result pages. Tier labels
// are configurable because the upstream table uses localized prize
// names that may change independently of the page structure.
type Parser struct {
	tierLabels map[domain.PrizeTier]string
}

func NewParser(tierLabels map[domain.PrizeTier]string) *Parser {
	if len(tierLabels) == 0 {
		tierLabels = domain.DefaultTierLabels()
	}
	return &Parser{tierLabels: tierLabels}
}

// Parse transforms a raw results page into a ParsedDraw. A missing or
// malformed required fragment is a hard failure; prize values are best
// effort and default to zero.
func (p *Parser) Parse(html string, game domain.GameType) (*ParsedDraw, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, domain.NewParseError(game, "unreadable document", err.Error())
	}

	title := doc.Find(".chitietketqua_title h5").First()
	if title.Length() == 0 {
		return nil, domain.NewParseError(game, "results title header not found", html)
	}

	titleText := strings.TrimSpace(title.Text())
	match := titlePattern.FindStringSubmatch(titleText)
	if match == nil {
		return nil, domain.NewParseError(game, "period and date not found in title", titleText)
	}

	period, err := strconv.Atoi(match[1])
	if err != nil {
		return nil, domain.NewParseError(game, "period is not numeric", match[1])
	}
	date, err := time.Parse("02/01/2006", match[2])
	if err != nil {
		return nil, domain.NewParseError(game, "draw date is malformed", match[2])
	}

	var numbers []int
	doc.Find(".day_so_ket_qua_v2 span").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if num, err := strconv.Atoi(text); err == nil {
			numbers = append(numbers, num)
		}
	})
	if len(numbers) < game.DrawCount() {
		return nil, domain.NewParseError(game, "too few winning numbers", titleText)
	}

	parsed := &ParsedDraw{
		Period:  domain.NormalizePeriod(strconv.Itoa(period)),
		Date:    date,
		Numbers: numbers,
	}

	doc.Find("table.table-hover tbody tr").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() <= 3 {
			return
		}
		label := strings.TrimSpace(cols.Eq(0).Text())
		winners := digitsToInt(cols.Eq(2).Text())
		value := digitsToInt64(cols.Eq(3).Text())
		p.applyTier(parsed, label, winners, value)
	})

	parsed.JackpotWon = parsed.JackpotWinners+parsed.Jackpot2Winners > 0
	return parsed, nil
}

// applyTier routes a prize row to its tier slot. Matching is
// substring-based with a fixed priority so that a secondary jackpot
// label is claimed before the generic jackpot rule fires.
func (p *Parser) applyTier(parsed *ParsedDraw, label string, winners int, value int64) {
	for _, tier := range domain.TierMatchOrder {
		fragment := p.tierLabels[tier]
		if fragment == "" || !strings.Contains(label, fragment) {
			continue
		}
		switch tier {
		case domain.TierJackpot2:
			parsed.Jackpot2Value = value
			parsed.Jackpot2Winners = winners
		case domain.TierJackpot:
			parsed.JackpotValue = value
			parsed.JackpotWinners = winners
		case domain.TierFirst:
			parsed.FirstPrizeValue = value
			parsed.FirstPrizeWinners = winners
		case domain.TierSecond:
			parsed.SecondPrizeValue = value
			parsed.SecondPrizeWinners = winners
		case domain.TierThird:
			parsed.ThirdPrizeValue = value
			parsed.ThirdPrizeWinners = winners
		}
		return
	}
}

// digitsToInt64 strips every non-digit rune before parsing, so currency
// symbols and thousands separators never fail a row. Empty input is zero.
func digitsToInt64(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func digitsToInt(s string) int {
	return int(digitsToInt64(s))
}
