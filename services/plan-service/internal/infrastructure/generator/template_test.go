package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnboard/pkg/api"
)

func TestTemplateGenerator_Shape(t *testing.T) {
	g := NewTemplateGenerator()

	tests := []struct {
		difficulty api.Difficulty
		perDay     int
	}{
		{api.Beginner, 2},
		{api.Intermediate, 3},
		{api.Advanced, 4},
	}

	for _, tt := range tests {
		t.Run(string(tt.difficulty), func(t *testing.T) {
			s := g.Generate("Go", tt.difficulty, 30)
			require.Len(t, s, 30)
			assert.Len(t, s["Day 1"], tt.perDay)
			assert.Len(t, s["Day 30"], tt.perDay)
			assert.Equal(t, 30*tt.perDay, s.ActivityCount())
		})
	}
}

func TestTemplateGenerator_Content(t *testing.T) {
	s := NewTemplateGenerator().Generate("  Rust  ", api.Intermediate, 4)

	require.Len(t, s, 4)
	assert.Contains(t, s["Day 1"][0], "Foundations: ")
	assert.Contains(t, s["Day 1"][0], "Rust")
	assert.Contains(t, s["Day 4"][0], "Projects: ")
}

func TestTemplateGenerator_DefaultDuration(t *testing.T) {
	s := NewTemplateGenerator().Generate("Go", api.Beginner, 0)
	assert.Len(t, s, api.DefaultDurationDays)
}
