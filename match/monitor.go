package match

import "github.com/candela-systems/scholarmatch/core"

// MatchMonitor receives callbacks through the matching pipeline. All
// callbacks run on the calling goroutine in deterministic corpus order,
// so implementations need no synchronization of their own. Callbacks
// must be cheap; they sit on the request path.
type MatchMonitor interface {
	// Start is called once with the raw query text.
	Start(rawText string)

	// AfterAnalysis is called with the query analysis (generative or
	// heuristic) before any scoring happens.
	AfterAnalysis(analysis *core.QueryAnalysis)

	// ProfileScored is called for every profile that produced a
	// similarity score, whether or not it passed the threshold.
	ProfileScored(profile *core.Profile, score float64)

	// ProfileSkipped is called for every profile excluded from scoring,
	// with a short reason suitable for logging.
	ProfileSkipped(profile *core.Profile, reason string)

	// AfterRanking is called with the filtered, sorted, capped matches
	// before explanations are attached.
	AfterRanking(matches []*core.Match)

	// Finish is called once with the final result.
	Finish(result *core.MatchResult)
}

type noopMonitor struct{}

func (noopMonitor) Start(string)                         {}
func (noopMonitor) AfterAnalysis(*core.QueryAnalysis)    {}
func (noopMonitor) ProfileScored(*core.Profile, float64) {}
func (noopMonitor) ProfileSkipped(*core.Profile, string) {}
func (noopMonitor) AfterRanking([]*core.Match)           {}
func (noopMonitor) Finish(*core.MatchResult)             {}
