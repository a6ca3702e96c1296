package chart

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point is one (timestamp, value) sample.
type Point struct {
	T float64
	V float64
}

// Series is an ordered list of samples. Upstream order is kept as-is.
// An empty Series is valid and means "no data".
type Series []Point

// UnmarshalJSON decodes the upstream `[[ts, value], ...]` shape. Entries that
// are too short, null or non-numeric are skipped.
func (s *Series) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode series: %w", err)
	}
	out := make(Series, 0, len(raw))
	for _, r := range raw {
		var pair []*float64
		if err := json.Unmarshal(r, &pair); err != nil {
			continue
		}
		if len(pair) < 2 || pair[0] == nil || pair[1] == nil {
			continue
		}
		out = append(out, Point{T: *pair[0], V: *pair[1]})
	}
	*s = out
	return nil
}

// MarshalJSON encodes back to the upstream pair shape.
func (s Series) MarshalJSON() ([]byte, error) {
	pairs := make([][2]float64, len(s))
	for i, p := range s {
		pairs[i] = [2]float64{p.T, p.V}
	}
	return json.Marshal(pairs)
}

// ParseSeries decodes a JSON payload into a Series.
func ParseSeries(b []byte) (Series, error) {
	var s Series
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// Last returns the final sample.
func (s Series) Last() (Point, bool) {
	if len(s) == 0 {
		return Point{}, false
	}
	return s[len(s)-1], true
}

// Bounds holds the extent of a series.
type Bounds struct {
	MinT, MaxT float64
	MinV, MaxV float64
}

// Bounds returns the time and value extent. ok is false for an empty series.
func (s Series) Bounds() (b Bounds, ok bool) {
	if len(s) == 0 {
		return Bounds{}, false
	}
	b = Bounds{MinT: s[0].T, MaxT: s[0].T, MinV: s[0].V, MaxV: s[0].V}
	for _, p := range s[1:] {
		b.MinT = math.Min(b.MinT, p.T)
		b.MaxT = math.Max(b.MaxT, p.T)
		b.MinV = math.Min(b.MinV, p.V)
		b.MaxV = math.Max(b.MaxV, p.V)
	}
	return b, true
}

// Within returns the samples whose timestamp lies in [minT, maxT].
func (s Series) Within(minT, maxT float64) Series {
	out := make(Series, 0, len(s))
	for _, p := range s {
		if p.T >= minT && p.T <= maxT {
			out = append(out, p)
		}
	}
	return out
}
