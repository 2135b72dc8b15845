package betbook

import (
	"fmt"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// MatchOdds is one in-sale football match with its win/draw/lose odds, as
// published by the China Sports Lottery (sporttery) public gateway.
type MatchOdds struct {
	Num       string // sale number, e.g. "周六001"
	League    string
	HomeTeam  string
	AwayTeam  string
	MatchTime string // "YYYY-MM-DD HH:mm" as published
	Win       decimal.Decimal
	Draw      decimal.Decimal
	Lose      decimal.Decimal
}

/*
	{
	    "value": {
	        "matchInfoList": [
	            {
	                "matchNumStr": "周六001",
	                "leagueAllName": "英格兰超级联赛",
	                "homeTeamAllName": "曼联",
	                "awayTeamAllName": "利物浦",
	                "matchDate": "2025-08-30",
	                "matchTime": "19:30",
	                "had": { "h": "1.98", "d": "3.40", "a": "3.55" }
	            }
	        ]
	    }
	}
*/
const sportteryAddr = "https://webapi.sporttery.cn/gateway/jc/football/getMatchCalculatorV1.qry?poolCode=had&channel=c"

// SportteryToday fetches the currently on-sale football matches and their
// win/draw/lose odds. Responses are cached on disk for the day.
func SportteryToday() ([]MatchOdds, error) {
	var jobj any
	if err := jwget(daily(), sportteryAddr, &jobj); err != nil {
		return nil, fmt.Errorf("error querying sporttery: %w", err)
	}
	return sportteryMatches(jobj)
}

// sportteryMatches reads the match list out of the gateway response.
func sportteryMatches(jobj any) ([]MatchOdds, error) {
	const path = "$.value.matchInfoList"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing sporttery response: %q %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing sporttery response: %q is not a list", path)
	}

	matches := make([]MatchOdds, 0, len(jlist))
	for _, jm := range jlist {
		m, ok := jm.(map[string]any)
		if !ok {
			continue
		}
		match := MatchOdds{
			Num:      str(m["matchNumStr"]),
			League:   str(m["leagueAllName"]),
			HomeTeam: str(m["homeTeamAllName"]),
			AwayTeam: str(m["awayTeamAllName"]),
		}
		if d, t := str(m["matchDate"]), str(m["matchTime"]); d != "" {
			match.MatchTime = d + " " + t
		}
		// The "had" pool holds the plain win/draw/lose odds.
		if had, ok := m["had"].(map[string]any); ok {
			match.Win = odds(had["h"])
			match.Draw = odds(had["d"])
			match.Lose = odds(had["a"])
		}
		matches = append(matches, match)
	}
	return matches, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// odds reads an odds value that this weird API returns sometimes as a
// string, sometimes as a number.
func odds(v any) decimal.Decimal {
	switch t := v.(type) {
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return decimal.NewFromFloat(f)
		}
	case float64:
		return decimal.NewFromFloat(t)
	}
	return decimal.Zero
}
