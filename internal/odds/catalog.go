package odds

import (
	"sort"
	"time"
)

// Catalog is an immutable list of betting options.
type Catalog struct {
	options []BettingOption
}

// NewCatalog copies options into a catalog.
func NewCatalog(options []BettingOption) *Catalog {
	return &Catalog{options: append([]BettingOption(nil), options...)}
}

// DefaultCatalog returns the built-in selection list.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultOptions)
}

// Options returns a copy of every option in catalog order.
func (c *Catalog) Options() []BettingOption {
	return append([]BettingOption(nil), c.options...)
}

// Len returns the number of options.
func (c *Catalog) Len() int {
	return len(c.options)
}

// Sports returns the distinct sports in the catalog, sorted.
func (c *Catalog) Sports() []string {
	return c.distinct(func(o BettingOption) string { return o.Sport })
}

// Bookmakers returns the distinct bookmakers in the catalog, sorted.
func (c *Catalog) Bookmakers() []string {
	return c.distinct(func(o BettingOption) string { return o.Bookmaker })
}

func (c *Catalog) distinct(key func(BettingOption) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, o := range c.options {
		k := key(o)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		values = append(values, k)
	}
	sort.Strings(values)
	return values
}

func kickoff(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

var defaultOptions = []BettingOption{
	{
		ID: 1, Event: "Manchester United vs Liverpool", Market: "Match Result", Selection: "Manchester United",
		Odds: 3.8, Probability: "26.3%", Confidence: ConfidenceMedium, StartTime: kickoff("2025-05-10T15:00:00Z"),
		League: "Premier League", Sport: "Football", Bookmaker: "Betfair", Trend: TrendUp,
	},
	{
		ID: 2, Event: "Arsenal vs Chelsea", Market: "Both Teams to Score", Selection: "Yes",
		Odds: 4.1, Probability: "24.4%", Confidence: ConfidenceHigh, StartTime: kickoff("2025-05-11T14:00:00Z"),
		League: "Premier League", Sport: "Football", Bookmaker: "Bet365", Trend: TrendStable,
	},
	{
		ID: 3, Event: "Los Angeles Lakers vs Golden State Warriors", Market: "Total Points", Selection: "Over 220.5",
		Odds: 3.9, Probability: "25.6%", Confidence: ConfidenceMedium, StartTime: kickoff("2025-05-10T02:30:00Z"),
		League: "NBA", Sport: "Basketball", Bookmaker: "DraftKings", Trend: TrendDown,
	},
	{
		ID: 4, Event: "Novak Djokovic vs Rafael Nadal", Market: "Match Winner", Selection: "Rafael Nadal",
		Odds: 4.2, Probability: "23.8%", Confidence: ConfidenceMedium, StartTime: kickoff("2025-05-12T12:00:00Z"),
		League: "ATP Masters", Sport: "Tennis", Bookmaker: "Unibet", Trend: TrendUp,
	},
	{
		ID: 5, Event: "New York Yankees vs Boston Red Sox", Market: "Run Line", Selection: "Yankees -1.5",
		Odds: 3.95, Probability: "25.3%", Confidence: ConfidenceHigh, StartTime: kickoff("2025-05-11T23:00:00Z"),
		League: "MLB", Sport: "Baseball", Bookmaker: "FanDuel", Trend: TrendStable,
	},
	{
		ID: 6, Event: "Barcelona vs Real Madrid", Market: "Asian Handicap", Selection: "Barcelona -0.5",
		Odds: 4.0, Probability: "25.0%", Confidence: ConfidenceHigh, StartTime: kickoff("2025-05-13T19:00:00Z"),
		League: "La Liga", Sport: "Football", Bookmaker: "Betfair", Trend: TrendUp,
	},
	{
		ID: 7, Event: "Boston Celtics vs Miami Heat", Market: "Handicap", Selection: "Miami Heat +7.5",
		Odds: 4.15, Probability: "24.1%", Confidence: ConfidenceMedium, StartTime: kickoff("2025-05-12T00:00:00Z"),
		League: "NBA", Sport: "Basketball", Bookmaker: "DraftKings", Trend: TrendDown,
	},
	{
		ID: 8, Event: "India vs Australia", Market: "Match Winner", Selection: "India",
		Odds: 3.75, Probability: "26.7%", Confidence: ConfidenceMedium, StartTime: kickoff("2025-05-14T09:00:00Z"),
		League: "International", Sport: "Cricket", Bookmaker: "Bet365", Trend: TrendStable,
	},
	{
		ID: 9, Event: "Jon Jones vs Stipe Miocic", Market: "Method of Victory", Selection: "Jones by KO/TKO",
		Odds: 4.25, Probability: "23.5%", Confidence: ConfidenceMedium, StartTime: kickoff("2025-05-15T03:00:00Z"),
		League: "UFC", Sport: "MMA", Bookmaker: "Unibet", Trend: TrendUp,
	},
	{
		ID: 10, Event: "Toronto Maple Leafs vs Montreal Canadiens", Market: "Total Goals", Selection: "Under 5.5",
		Odds: 3.85, Probability: "26.0%", Confidence: ConfidenceHigh, StartTime: kickoff("2025-05-11T00:00:00Z"),
		League: "NHL", Sport: "Hockey", Bookmaker: "FanDuel", Trend: TrendDown,
	},
}
