package stage

import (
	"testing"

	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testCapacities = []uint64{40000000, 80000000, 160000000, 200000000}
	testPrices     = []uint64{12000, 14000, 16000, 18000}
)

func TestNewTable(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		table, err := NewTable(testCapacities, testPrices)
		require.NoError(t, err)
		assert.Equal(t, 4, table.TierCount())
		assert.Equal(t, uint64(200000000), table.OverallCap())

		tier, err := table.TierAt(1)
		require.NoError(t, err)
		assert.Equal(t, entity.Tier{CumulativeCapacity: 80000000, UnitPrice: 14000}, tier)

		_, err = table.TierAt(4)
		assert.ErrorIs(t, err, errs.NotFound)
	})

	testcases := []struct {
		name       string
		capacities []uint64
		prices     []uint64
	}{
		{"empty", nil, nil},
		{"length_mismatch", []uint64{10, 20}, []uint64{1}},
		{"non_increasing", []uint64{10, 10}, []uint64{1, 2}},
		{"decreasing", []uint64{20, 10}, []uint64{1, 2}},
		{"zero_capacity", []uint64{0, 10}, []uint64{1, 2}},
		{"zero_price", []uint64{10, 20}, []uint64{1, 0}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTable(tc.capacities, tc.prices)
			assert.ErrorIs(t, err, errs.InvalidTiers)
		})
	}
}

func TestTableIndexOf(t *testing.T) {
	table, err := NewTable(testCapacities, testPrices)
	require.NoError(t, err)

	testcases := []struct {
		totalSold uint64
		expected  int
	}{
		{0, 0},
		{1, 0},
		{40000000, 0},
		{40000001, 1},
		{80000000, 1},
		{159999999, 2},
		{200000000, 3},
	}
	for _, tc := range testcases {
		assert.Equal(t, tc.expected, table.IndexOf(tc.totalSold), "totalSold %d", tc.totalSold)
	}
}

func TestTableTiersIsCopy(t *testing.T) {
	table, err := NewTable(testCapacities, testPrices)
	require.NoError(t, err)

	tiers := table.Tiers()
	tiers[0].UnitPrice = 1

	tier, err := table.TierAt(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(12000), tier.UnitPrice)
}
