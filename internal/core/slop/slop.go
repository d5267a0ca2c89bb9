// Package slop turns a slop percentile into a verdict
package slop

// Verdict is the headline shown next to a placement
type Verdict struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type tier struct {
	min float64
	Verdict
}

// ordered by descending threshold, first match wins
var tiers = []tier{
	{95, Verdict{"MAXIMUM SLOP DETECTED", "You are the algorithm. The algorithm is you."}},
	{85, Verdict{"Corporate Email Energy", "Per my last message, please advise."}},
	{75, Verdict{"Aggressively Normal", "Your thoughts have been focus-grouped."}},
	{60, Verdict{"Statistically Average", "The model saw you coming."}},
	{45, Verdict{"Slightly Unpredictable", "A flicker of originality detected."}},
	{30, Verdict{"Interestingly Weird", "The model is mildly confused by you."}},
	{15, Verdict{"Delightfully Chaotic", "You broke the prediction engine."}},
	{5, Verdict{"Off The Distribution", "Are you even speaking English?"}},
}

var floor = Verdict{"SINGULARITY ACHIEVED", "GPT-2 has never seen anything like you."}

// Message picks the verdict for a slop percentile
func Message(slopPercentile float64) Verdict {
	for _, t := range tiers {
		if slopPercentile >= t.min {
			return t.Verdict
		}
	}
	return floor
}
