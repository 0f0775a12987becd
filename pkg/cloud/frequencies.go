package cloud

import (
	"math"
	"sort"

	"github.com/hed-standard/hedviz/pkg/errors"
)

// Frequencies maps words to their weight. Weights are relative; only the
// proportions matter for sizing.
type Frequencies map[string]int

// Validate checks that every word is drawable and at least one weight is
// positive.
func (f Frequencies) Validate() error {
	if len(f) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no words to draw")
	}
	positive := 0
	for word, weight := range f {
		if err := errors.ValidateWord(word); err != nil {
			return err
		}
		if weight > 0 {
			positive++
		}
	}
	if positive == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no words with a positive count")
	}
	return nil
}

// Positive returns a copy with non-positive entries dropped.
func (f Frequencies) Positive() Frequencies {
	out := make(Frequencies, len(f))
	for word, weight := range f {
		if weight > 0 {
			out[word] = weight
		}
	}
	return out
}

// Words returns the words ordered by descending weight, ties broken
// alphabetically.
func (f Frequencies) Words() []string {
	words := make([]string, 0, len(f))
	for word := range f {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if f[words[i]] != f[words[j]] {
			return f[words[i]] > f[words[j]]
		}
		return words[i] < words[j]
	})
	return words
}

// shapeWeights blends count-proportional and rank-based sizing before the
// weights reach the engine. relativeScaling 1 keeps sizes proportional to
// counts, 0 spaces them evenly by rank, values between interpolate. The
// shaped weights land on a fixed 1..1000 scale.
func shapeWeights(f Frequencies, relativeScaling float64) map[string]int {
	words := f.Words()
	out := make(map[string]int, len(words))
	if len(words) == 0 {
		return out
	}
	maxWeight := float64(f[words[0]])
	n := float64(len(words))
	for i, word := range words {
		proportional := float64(f[word]) / maxWeight
		ranked := (n - float64(i)) / n
		blended := relativeScaling*proportional + (1-relativeScaling)*ranked
		out[word] = max(1, int(math.Round(blended*1000)))
	}
	return out
}
