package accumulation

import "sort"

// Section thresholds, matching the report's published definitions.
const (
	ListMinMarketCap = 300_000_000_000

	premiumMaxReturn3D = 10.0

	fastMinReturn1D      = 10.0
	fastMinFlow1Turnover = 3.0

	overheatReturn3D = 20.0
	overheatReturn5D = 30.0

	interestMinFlow3Mcap = 0.3
	interestMaxReturn3D  = 10.0
)

// Sections is the report's four buckets. A candidate can land in more
// than one bucket except that interest excludes premium names.
type Sections struct {
	Premium  []Candidate
	Fast     []Candidate
	Overheat []Candidate
	Interest []Candidate
}

// Split buckets the candidates:
//
//	premium  - three straight days of net buying and the price has not
//	           run yet (3-day return still under 10%)
//	fast     - big one-day move backed by net buying worth 3%+ of the
//	           day's turnover, not yet overheated
//	overheat - 3-day return 20%+ or 5-day return 30%+
//	interest - 3-day net buying worth 0.3%+ of market cap with a
//	           contained 3-day return, minus anything already premium
//
// Small caps under the listing floor are dropped first. Each bucket is
// sorted by accumulation score, strongest first.
func Split(candidates []Candidate) Sections {
	var s Sections
	premiumTickers := make(map[string]bool)

	for _, c := range candidates {
		if c.MarketCap < ListMinMarketCap {
			continue
		}
		if c.Premium && c.Return3D <= premiumMaxReturn3D {
			s.Premium = append(s.Premium, c)
			premiumTickers[c.Ticker] = true
		}
		if c.ChangePct >= fastMinReturn1D &&
			c.Flow1DPctTurnover >= fastMinFlow1Turnover &&
			c.Return3D < overheatReturn3D {
			s.Fast = append(s.Fast, c)
		}
		if c.Return3D >= overheatReturn3D || c.Return5D >= overheatReturn5D {
			s.Overheat = append(s.Overheat, c)
		}
	}
	for _, c := range candidates {
		if c.MarketCap < ListMinMarketCap || premiumTickers[c.Ticker] {
			continue
		}
		if c.Flow3DPctMarketCap >= interestMinFlow3Mcap && c.Return3D <= interestMaxReturn3D {
			s.Interest = append(s.Interest, c)
		}
	}

	for _, bucket := range [][]Candidate{s.Premium, s.Fast, s.Overheat, s.Interest} {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Score > bucket[j].Score
		})
	}
	return s
}
