package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubClassifier(t *testing.T) {
	s := NewStubClassifier()

	// Random sampling: assert bounds and membership, never exact picks.
	for range 20 {
		labels, err := s.Classify(context.Background(), nil)
		require.NoError(t, err)
		require.NotEmpty(t, labels)
		require.LessOrEqual(t, len(labels), MaxLabels)

		seen := make(map[string]bool)
		for _, l := range labels {
			assert.Contains(t, stubDishes, l.Name)
			assert.GreaterOrEqual(t, l.Confidence, 0.3)
			assert.LessOrEqual(t, l.Confidence, 0.9)
			assert.False(t, seen[l.Name], "labels must be distinct")
			seen[l.Name] = true
		}

		// Confidence decays with position.
		for i := 1; i < len(labels); i++ {
			assert.LessOrEqual(t, labels[i].Confidence, labels[i-1].Confidence)
		}
	}
}
