package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/presale-ledger/common/errs"
	"github.com/gaze-network/presale-ledger/modules/presale/datagateway/mocks"
	"github.com/gaze-network/presale-ledger/modules/presale/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testRecords = []entity.PurchaseRecord{
	{Buyer: common.HexToAddress("0x00000000000000000000000000000000000000B1"), Quantity: 1500, Claimed: true},
	{Buyer: common.HexToAddress("0x00000000000000000000000000000000000000b2"), Quantity: 7},
}

func TestEncode(t *testing.T) {
	data, err := Encode(testRecords)
	require.NoError(t, err)

	rows, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []PurchaseRow{
		{Buyer: "0x00000000000000000000000000000000000000b1", Quantity: 1500, Claimed: true},
		{Buyer: "0x00000000000000000000000000000000000000b2", Quantity: 7},
	}, rows)
}

func TestEncodeOverflow(t *testing.T) {
	_, err := Encode([]entity.PurchaseRecord{{Quantity: 1 << 63}})
	assert.ErrorIs(t, err, errs.OverflowUint64)
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("no_destination", func(t *testing.T) {
		dg := mocks.NewPresaleDataGatewayWithTx(t)
		_, err := Run(ctx, dg, Config{})
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})

	t.Run("local_file", func(t *testing.T) {
		dg := mocks.NewPresaleDataGatewayWithTx(t)
		dg.EXPECT().GetPurchaseRecords(mock.Anything).Return(testRecords, nil)

		path := filepath.Join(t.TempDir(), "purchases.parquet")
		n, err := Run(ctx, dg, Config{Path: path})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		rows, err := Decode(data)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})
}
