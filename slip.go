package betbook

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jetwong/betbook/date"
)

// Slip is the result of parsing the free-form text of a bet slip, as
// produced by an OCR pass over a screenshot or typed by hand. Every field is
// best effort; Confidence reports the share of fields actually recognized.
type Slip struct {
	Legs       []Leg
	Stake      decimal.Decimal
	Confidence float64
}

// ErrEmptySlip is returned when no match at all could be read from the text.
var ErrEmptySlip = fmt.Errorf("no wager found in slip text")

// leagueKeywords are the league names looked up verbatim in the slip text,
// most specific first.
var leagueKeywords = []string{
	"英超", "英甲", "英冠", "英锦赛", "足总杯", "联赛杯",
	"西甲", "西乙", "国王杯",
	"意甲", "意乙", "意杯",
	"德甲", "德乙", "德国杯",
	"法甲", "法乙", "法国杯",
	"欧冠", "欧联", "欧协联", "欧洲杯", "世界杯",
	"中超", "中甲", "中乙", "足协杯",
	"葡超", "荷甲", "比甲", "土超", "俄超",
	"美职", "墨西", "巴甲", "阿甲",
	"日职", "韩K", "澳超",
	"联赛", "杯赛", "友谊赛", "热身赛",
}

var betTypeKeywords = []struct {
	betType  string
	keywords []string
}{
	{"胜平负", []string{"胜平负", "让胜平负", "胜负平", "让胜负平", "SPF", "三项盘"}},
	{"让球", []string{"让球", "让球盘", "让分", "亚盘", "让分盘", "Handicap"}},
	{"大小球", []string{"大小球", "总进球", "大小", "Over/Under", "进球数"}},
}

var directionKeywords = []struct {
	direction string
	keywords  []string
}{
	{"主胜", []string{"主胜", "主队胜", "胜", "主", "Home", "Win"}},
	{"平局", []string{"平", "平局", "和", "Draw"}},
	{"主负", []string{"负", "主队负", "主负", "客胜", "客队胜", "Away", "Loss"}},
}

var (
	// team pair separators, tried in order. The bare whitespace one comes
	// last because it misfires easily.
	teamPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)([^\s\d]+?)\s*vs\s*([^\s\d]+)`),
		regexp.MustCompile(`([^\s\d]+?)\s*对\s*([^\s\d]+)`),
		regexp.MustCompile(`([^\s\d]+?)\s*[-—]\s*([^\s\d]+)`),
		regexp.MustCompile(`([^\s\d]+?)\s+([^\s\d]+)`),
	}
	teamNoise = regexp.MustCompile(`[^\p{Han}a-zA-Z\s]`)

	// "足球 | 欧洲冠军联赛" style headers carry the full league name.
	leagueHeader = regexp.MustCompile(`(?:足球|篮球)[\s\|｜·:：-]+([^\s\|｜·:：-]*联赛)`)

	fullDate  = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	monthDay  = regexp.MustCompile(`(\d{1,2})[月\-/](\d{1,2})日?`)
	oddsValue = regexp.MustCompile(`(?i)(?:赔率|@|odds)?[:：\s]*(\d+\.\d{1,3})`)

	handicapLabeled = regexp.MustCompile(`(?i)(?:让球|Handicap)[^\d]*([+\-])(\d+(?:\.\d+)?)`)
	handicapBare    = regexp.MustCompile(`([+\-])\s*(\d+(?:\.\d+)?)([^-\d]|$)`)
	overUnder       = regexp.MustCompile(`([大小])\s*(\d+(?:\.\d+)?)`)

	stakePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:金额|投注|下注|本金)[:：\s]*(\d+(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(\d+(?:\.\d{1,2})?)\s*元`),
		regexp.MustCompile(`(\d+(?:\.\d{1,2})?)\s*¥`),
	}
)

// ParseSlip extracts the wager described by a slip text. It recognizes the
// team pair, league, match date, bet type, selection, odds and stake, all of
// them optional but the team pair.
func ParseSlip(text string) (Slip, error) {
	home, away := extractTeams(text)
	if home == "" || away == "" {
		return Slip{}, ErrEmptySlip
	}

	league := extractLeague(text)
	day := extractDate(text)
	betType := extractBetType(text)
	if betType == "" {
		betType = DefaultBetType
	}
	selection, legOdds := extractSelectionAndOdds(text, betType, home, away)
	stake := extractStake(text)

	leg := Leg{
		HomeTeam:  home,
		AwayTeam:  away,
		League:    league,
		MatchTime: day.Minute(),
		BetType:   betType,
		Selection: selection,
		Odds:      legOdds,
	}

	fields := 0
	for _, ok := range []bool{home != "", away != "", league != "", betType != "", selection != "", !legOdds.IsZero(), !stake.IsZero()} {
		if ok {
			fields++
		}
	}

	return Slip{
		Legs:       []Leg{leg},
		Stake:      stake,
		Confidence: float64(fields) / 7,
	}, nil
}

// Record converts the slip into a draft ledger record, ready to be reviewed
// and then added to the book.
func (s Slip) Record() Record {
	return Normalize(Record{
		Status: Draft,
		Stake:  s.Stake,
		Legs:   s.Legs,
	})
}

func extractTeams(text string) (home, away string) {
	for _, p := range teamPatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		home = strings.TrimSpace(teamNoise.ReplaceAllString(m[1], ""))
		away = strings.TrimSpace(teamNoise.ReplaceAllString(m[2], ""))
		// a single rune is never a team name
		if len([]rune(home)) > 1 && len([]rune(away)) > 1 {
			return home, away
		}
	}
	return "", ""
}

func extractLeague(text string) string {
	if m := leagueHeader.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	for _, keyword := range leagueKeywords {
		if !strings.Contains(text, keyword) {
			continue
		}
		// keep any season prefix or suffix stuck to the keyword
		p := regexp.MustCompile(`([\d\-/年]*\s*` + regexp.QuoteMeta(keyword) + `[^\s]*)`)
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
		return keyword
	}
	return ""
}

func extractDate(text string) date.Date {
	if m := fullDate.FindStringSubmatch(text); m != nil {
		if d, err := date.Parse(m[1] + "-" + m[2] + "-" + m[3]); err == nil {
			return d
		}
	}
	today := date.Today()
	if m := monthDay.FindStringSubmatch(text); m != nil {
		if d, err := date.Parse(fmt.Sprintf("%d-%s-%s", today.Year(), m[1], m[2])); err == nil {
			return d
		}
	}
	switch {
	case strings.Contains(text, "今天"), strings.Contains(text, "今日"):
		return today
	case strings.Contains(text, "明天"), strings.Contains(text, "明日"):
		return today.Add(1)
	case strings.Contains(text, "后天"):
		return today.Add(2)
	}
	return today
}

func extractBetType(text string) string {
	lower := strings.ToLower(text)
	for _, bt := range betTypeKeywords {
		for _, keyword := range bt.keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				return bt.betType
			}
		}
	}
	return ""
}

func extractSelectionAndOdds(text, betType, home, away string) (selection string, legOdds decimal.Decimal) {
	switch betType {
	case "胜平负":
		for _, dir := range directionKeywords {
			for _, keyword := range dir.keywords {
				if strings.Contains(text, keyword) {
					selection = dir.direction
					break
				}
			}
			if selection != "" {
				break
			}
		}

	case "让球":
		// "皇家马德里 -1" style beats a bare handicap value.
		for _, side := range []struct{ team, label string }{{home, "主"}, {away, "客"}} {
			if side.team == "" {
				continue
			}
			p := regexp.MustCompile(regexp.QuoteMeta(side.team) + `\s*([+\-])\s*(\d+(?:\.\d+)?)`)
			if m := p.FindStringSubmatch(text); m != nil {
				selection = side.label + m[1] + m[2]
				break
			}
		}
		if selection == "" {
			if m := handicapLabeled.FindStringSubmatch(text); m != nil {
				selection = m[1] + m[2]
			} else if m := handicapBare.FindStringSubmatch(text); m != nil {
				selection = m[1] + m[2]
			}
		}

	case "大小球":
		if m := overUnder.FindStringSubmatch(text); m != nil {
			selection = m[1] + m[2]
		}
	}

	for _, m := range oddsValue.FindAllStringSubmatch(text, -1) {
		v, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		// plausible odds only, a year or a score is not 1.01..100
		if v.GreaterThanOrEqual(decimal.RequireFromString("1.01")) && v.LessThanOrEqual(decimal.NewFromInt(100)) {
			legOdds = v
			break
		}
	}
	return selection, legOdds
}

func extractStake(text string) decimal.Decimal {
	for _, p := range stakePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		if v.GreaterThanOrEqual(one) && v.LessThanOrEqual(decimal.NewFromInt(1_000_000)) {
			return v
		}
	}
	return decimal.Zero
}
