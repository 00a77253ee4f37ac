package generator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom_IntBounds(t *testing.T) {
	rnd := NewRandom(1)

	for i := 0; i < 1000; i++ {
		v := rnd.Int(5, 120)
		assert.GreaterOrEqual(t, v, 5)
		assert.LessOrEqual(t, v, 120)
	}

	t.Run("swapped bounds", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			v := rnd.Int(10, 3)
			assert.GreaterOrEqual(t, v, 3)
			assert.LessOrEqual(t, v, 10)
		}
	})

	t.Run("single value", func(t *testing.T) {
		assert.Equal(t, 7, rnd.Int(7, 7))
	})
}

func TestRandom_Deterministic(t *testing.T) {
	a := NewRandom(42)
	b := NewRandom(42)
	for i := 0; i < 50; i++ {
		require.Equal(t, a.Int(0, 1000), b.Int(0, 1000))
	}
	assert.Equal(t, a.NewID(), b.NewID())
}

func TestElement(t *testing.T) {
	rnd := NewRandom(2)
	list := []string{"a", "b", "c"}

	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		seen[Element(rnd, list)] = true
	}
	assert.Len(t, seen, 3)

	assert.Panics(t, func() { Element(rnd, []string{}) })
}

func TestWeightedPick_Converges(t *testing.T) {
	rnd := NewRandom(3)
	const draws = 100000

	tests := []struct {
		name    string
		catalog []Weighted[string]
	}{
		{"device types", DeviceTypes},
		{"operating systems", OperatingSystems},
		{"browsers", Browsers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var total float64
			for _, e := range tt.catalog {
				total += e.Weight
			}

			counts := map[string]int{}
			for i := 0; i < draws; i++ {
				counts[WeightedPick(rnd, tt.catalog)]++
			}

			for _, e := range tt.catalog {
				expected := e.Weight / total
				observed := float64(counts[e.Value]) / draws
				assert.InDelta(t, expected, observed, 0.02, "label %s", e.Value)
			}
		})
	}
}

func TestWeightedPick_CitiesConverge(t *testing.T) {
	rnd := NewRandom(4)
	const draws = 100000

	var total float64
	for _, e := range Cities {
		total += e.Weight
	}

	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		counts[WeightedPick(rnd, Cities).Name]++
	}

	milano := float64(counts["Milano"]) / draws
	assert.InDelta(t, 15/total, milano, 0.02)
	assert.Len(t, counts, len(Cities))
}

func TestWeightedPick_Edges(t *testing.T) {
	rnd := NewRandom(5)

	single := []Weighted[int]{{Value: 9, Weight: 1}}
	assert.Equal(t, 9, WeightedPick(rnd, single))

	assert.Panics(t, func() { WeightedPick(rnd, []Weighted[int]{}) })
}

func TestRandom_NewID(t *testing.T) {
	rnd := NewRandom(6)

	ids := make(map[string]struct{}, 5000)
	for i := 0; i < 5000; i++ {
		id := rnd.NewID()
		require.Len(t, id, idLength)
		require.Regexp(t, `^[0-9a-z]+$`, id)
		ids[id] = struct{}{}
	}
	assert.Len(t, ids, 5000)
}

func TestRandom_TimeBetween(t *testing.T) {
	rnd := NewRandom(7)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	for i := 0; i < 1000; i++ {
		ts := rnd.TimeBetween(start, end)
		assert.False(t, ts.Before(start))
		assert.True(t, ts.Before(end))
	}

	assert.Equal(t, start, rnd.TimeBetween(start, start))
}

func TestRandom_Chance(t *testing.T) {
	rnd := NewRandom(8)
	hits := 0
	for i := 0; i < 100000; i++ {
		if rnd.Chance(0.98) {
			hits++
		}
	}
	assert.True(t, math.Abs(float64(hits)/100000-0.98) < 0.01)
}

func TestCatalogs(t *testing.T) {
	assert.Len(t, Cities, 50)
	assert.Len(t, Regions, 20)

	regions := map[string]bool{}
	for _, r := range Regions {
		regions[r] = true
	}
	for _, c := range Cities {
		assert.True(t, regions[c.Value.Region], "unknown region %q for %s", c.Value.Region, c.Value.Name)
		assert.GreaterOrEqual(t, c.Weight, 1.0)
		assert.LessOrEqual(t, c.Weight, 15.0)
	}

	assert.Panics(t, func() { mustCatalog[string]("empty", nil) })
	assert.Panics(t, func() { mustCatalog("zero", []Weighted[string]{{"x", 0}}) })
}
