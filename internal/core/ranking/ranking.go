// Package ranking places one submission within its question's population
// everything here is recomputed per request from the full population
package ranking

import (
	"errors"
	"math"
	"sort"
)

// Histogram resolutions used by the API
const (
	AnalyzeBins      = 20
	DistributionBins = 10
	// MaxNeighbors is how many entries are reported on each side of the target
	MaxNeighbors = 2
)

// ErrTargetMissing means the target id is absent from a non empty population
var ErrTargetMissing = errors.New("ranking: target not in population")

// Entry is one scored submission
type Entry struct {
	ID         int64
	Text       string
	Perplexity float64
}

// Neighbor is a nearby submission shown to the user
type Neighbor struct {
	Text       string  `json:"text"`
	Perplexity float64 `json:"perplexity"`
}

// Neighbors holds up to MaxNeighbors entries on each side
type Neighbors struct {
	Lower  []Neighbor `json:"lower"`
	Higher []Neighbor `json:"higher"`
}

// Placement is the target's position
type Placement struct {
	Percentile     float64 `json:"percentile"`
	SlopPercentile float64 `json:"slop_percentile"`
	Rank           int     `json:"rank"`
	Total          int     `json:"total"`
}

// Hist is a fixed bin histogram, Bins holds each bin's lower edge
type Hist struct {
	Bins   []float64 `json:"bins"`
	Counts []int     `json:"counts"`
}

// Stats is everything Rank derives
type Stats struct {
	Placement Placement `json:"placement"`
	Neighbors Neighbors `json:"neighbors"`
	Histogram Hist      `json:"histogram"`
}

// Sorted returns a copy of population ordered by ascending perplexity
// equal perplexities keep their input order
func Sorted(population []Entry) []Entry {
	out := append([]Entry(nil), population...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Perplexity < out[j].Perplexity })
	return out
}

// Rank places targetID within population and bins the population into bins buckets
// an empty population yields rank 1 of 0 at percentile 100
func Rank(targetID int64, population []Entry, bins int) (Stats, error) {
	sorted := Sorted(population)
	total := len(sorted)

	values := make([]float64, total)
	for i, e := range sorted {
		values[i] = e.Perplexity
	}
	st := Stats{
		Neighbors: Neighbors{Lower: []Neighbor{}, Higher: []Neighbor{}},
		Histogram: Histogram(values, bins),
	}
	if total == 0 {
		st.Placement = Placement{Rank: 1, Percentile: 100, SlopPercentile: 0}
		return st, nil
	}

	pos := -1
	for i, e := range sorted {
		if e.ID == targetID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return Stats{}, ErrTargetMissing
	}

	rank := pos + 1
	pct := float64(rank) / float64(total) * 100
	st.Placement = Placement{
		Percentile:     pct,
		SlopPercentile: 100 - pct,
		Rank:           rank,
		Total:          total,
	}
	for _, e := range sorted[max(0, pos-MaxNeighbors):pos] {
		st.Neighbors.Lower = append(st.Neighbors.Lower, Neighbor{Text: e.Text, Perplexity: e.Perplexity})
	}
	for _, e := range sorted[pos+1 : min(total, pos+1+MaxNeighbors)] {
		st.Neighbors.Higher = append(st.Neighbors.Higher, Neighbor{Text: e.Text, Perplexity: e.Perplexity})
	}
	return st, nil
}

// Histogram counts values into bins equal width buckets between min and max
// bucket i is [lo_i, hi_i) except the last which also takes max
// min == max collapses to a single bucket, no values gives empty slices
func Histogram(values []float64, bins int) Hist {
	if len(values) == 0 || bins < 1 {
		return Hist{Bins: []float64{}, Counts: []int{}}
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return Hist{Bins: []float64{lo}, Counts: []int{len(values)}}
	}

	width := (hi - lo) / float64(bins)
	h := Hist{Bins: make([]float64, bins), Counts: make([]int, bins)}
	for i := range h.Bins {
		h.Bins[i] = lo + float64(i)*width
	}
	for _, v := range values {
		i := int(math.Floor((v - lo) / width))
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		h.Counts[i]++
	}
	return h
}

// BinSize returns the bucket width Histogram uses for values
func BinSize(values []float64, bins int) float64 {
	if len(values) == 0 || bins < 1 {
		return 0
	}
	d := Describe(values)
	return (d.Max - d.Min) / float64(bins)
}

// Summary is the distribution summary of a population
type Summary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Describe summarises values, median is the upper middle element sorted[n/2]
// callers must not pass an empty slice
func Describe(values []float64) Summary {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	return Summary{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   sum / float64(len(sorted)),
		Median: sorted[len(sorted)/2],
	}
}
