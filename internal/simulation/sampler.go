package simulation

import "antcolony-sim/internal/common"

// WeightMap is an insertion-ordered mapping from node id to desirability.
// Order matters: the sampler accumulates and breaks ties in insertion order.
type WeightMap struct {
	keys   []int
	scores map[int]float64
}

// Weight is a single WeightMap entry.
type Weight struct {
	Node  int
	Score float64
}

// NewWeightMap creates an empty map.
func NewWeightMap() *WeightMap {
	return &WeightMap{scores: make(map[int]float64)}
}

// Set stores score for node. A new node is appended at the end of the order.
func (w *WeightMap) Set(node int, score float64) {
	if _, ok := w.scores[node]; !ok {
		w.keys = append(w.keys, node)
	}
	w.scores[node] = score
}

// Get returns the score of node.
func (w *WeightMap) Get(node int) (float64, bool) {
	s, ok := w.scores[node]
	return s, ok
}

// Len returns the number of entries.
func (w *WeightMap) Len() int {
	return len(w.keys)
}

// Entries returns a copy of the entries in insertion order.
func (w *WeightMap) Entries() []Weight {
	out := make([]Weight, len(w.keys))
	for i, k := range w.keys {
		out[i] = Weight{Node: k, Score: w.scores[k]}
	}
	return out
}

// Reset removes every entry.
func (w *WeightMap) Reset() {
	w.keys = w.keys[:0]
	clear(w.scores)
}

// WeightedChoice draws one key from w. It compares the running sum of the raw
// scores against a single uniform draw in [0, 1) and returns the first key at
// which the sum reaches the draw. The scores are not normalized, so when their
// total stays below the draw the key with the highest score wins, ties going
// to the earliest key. ok is false only for an empty map.
func WeightedChoice(w *WeightMap, rng common.RandomSource) (key int, ok bool) {
	if w.Len() == 0 {
		return 0, false
	}

	r := rng.Float64()
	sum := 0.0
	for _, k := range w.keys {
		sum += w.scores[k]
		if r <= sum {
			return k, true
		}
	}

	best := w.keys[0]
	for _, k := range w.keys[1:] {
		if w.scores[k] > w.scores[best] {
			best = k
		}
	}
	return best, true
}
