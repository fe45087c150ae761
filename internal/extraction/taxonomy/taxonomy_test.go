package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("dietary", "vegan"))
	assert.True(t, IsValid("cuisine", "thai"))
	assert.True(t, IsValid("time", "under-15m"))

	assert.False(t, IsValid("dietary", "carnivore"))
	assert.False(t, IsValid("nonsense", "vegan"))
}

func TestValidate(t *testing.T) {
	validated := Validate(map[string][]string{
		"dietary": {"vegan", "flexitarian"},
		"cuisine": {"thai"},
		"mood":    {"cozy"},
		"course":  {"brunch"},
	})

	require.Len(t, validated, 2)
	assert.Equal(t, []string{"vegan"}, validated["dietary"])
	assert.Equal(t, []string{"thai"}, validated["cuisine"])

	// Unknown types and types with no surviving values are dropped.
	assert.NotContains(t, validated, "mood")
	assert.NotContains(t, validated, "course")
}

func TestCategorize(t *testing.T) {
	categories := Categorize(
		"Easy Vegan Thai Curry",
		"A quick weeknight dinner.",
		[]string{"tofu", "coconut milk", "curry paste"},
	)

	assert.Contains(t, categories["dietary"], "vegan")
	assert.Contains(t, categories["cuisine"], "thai")
	assert.Contains(t, categories["course"], "dinner")
	assert.Contains(t, categories["protein"], "tofu")
	assert.Contains(t, categories["difficulty"], "easy")
}

func TestCategorizeHyphenVariants(t *testing.T) {
	categories := Categorize("Gluten free banana bread", "", nil)
	assert.Contains(t, categories["dietary"], "gluten-free")

	categories = Categorize("Gluten-free banana bread", "", nil)
	assert.Contains(t, categories["dietary"], "gluten-free")
}

func TestCategorizeNoMatches(t *testing.T) {
	categories := Categorize("Mystery dish", "", nil)
	assert.Empty(t, categories)
}

func TestTimeBucket(t *testing.T) {
	assert.Equal(t, "under-15m", TimeBucket(10))
	assert.Equal(t, "15-30m", TimeBucket(15))
	assert.Equal(t, "15-30m", TimeBucket(30))
	assert.Equal(t, "30-60m", TimeBucket(45))
	assert.Equal(t, "30-60m", TimeBucket(60))
	assert.Equal(t, "over-60m", TimeBucket(90))
	assert.Equal(t, "", TimeBucket(0))
	assert.Equal(t, "", TimeBucket(-5))
}

func TestMerge(t *testing.T) {
	merged := Merge(
		map[string][]string{"dietary": {"vegan"}, "cuisine": {"thai"}},
		map[string][]string{"dietary": {"vegan", "gluten-free"}, "time": {"15-30m"}},
	)

	assert.Equal(t, []string{"vegan", "gluten-free"}, merged["dietary"])
	assert.Equal(t, []string{"thai"}, merged["cuisine"])
	assert.Equal(t, []string{"15-30m"}, merged["time"])
}
