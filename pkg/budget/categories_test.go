package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Valid(t *testing.T) {
	assert.True(t, CategoryHousing.Valid())
	assert.True(t, CategoryOther.Valid())
	assert.False(t, Category("Yacht Maintenance").Valid())
	assert.False(t, Category("housing").Valid(), "category values are case sensitive")
	assert.False(t, Category("").Valid())
}

func TestCategory_Info(t *testing.T) {
	info, ok := CategoryGroceries.Info()
	require.True(t, ok)
	assert.Equal(t, CategoryGroceries, info.Name)
	assert.True(t, info.IsEssential)
	assert.Contains(t, info.Examples, "Trader Joe's")

	_, ok = Category("nonsense").Info()
	assert.False(t, ok)
}

// The three group accessors plus Other must partition the full taxonomy:
// every category lands in exactly one group.
func TestCategoryGroups_Partition(t *testing.T) {
	seen := make(map[Category]int)
	for _, c := range EssentialCategories() {
		seen[c]++
	}
	for _, c := range WantsCategories() {
		seen[c]++
	}
	for _, c := range SavingsCategories() {
		seen[c]++
	}

	all := AllCategories()
	assert.Len(t, seen, len(all))
	for _, c := range all {
		assert.Equal(t, 1, seen[c], "category %q must be in exactly one group", c)
	}
}

func TestCategoryGroups_Membership(t *testing.T) {
	assert.NotContains(t, EssentialCategories(), CategoryEmergencyFund,
		"savings categories are not needs even though marked essential")
	assert.Contains(t, WantsCategories(), CategoryOther)
	assert.Contains(t, SavingsCategories(), CategoryExtraDebt)
}

func TestAllCategories_StableOrder(t *testing.T) {
	first := AllCategories()
	second := AllCategories()
	assert.Equal(t, first, second)
	assert.Equal(t, CategoryHousing, first[0])
	assert.Equal(t, CategoryOther, first[len(first)-1])

	// Returned slice is a copy; mutating it must not poison the order.
	first[0] = CategoryOther
	assert.Equal(t, CategoryHousing, AllCategories()[0])
}
