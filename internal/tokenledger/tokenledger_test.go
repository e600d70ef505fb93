package tokenledger

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice   = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob     = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	spender = common.HexToAddress("0x000000000000000000000000000000000000c0de")
)

func TestTokenTransfer(t *testing.T) {
	ctx := context.Background()
	token := NewToken("Sale Token", "SALE", 18)
	require.NoError(t, token.Mint(alice, uint256.NewInt(100)))
	assert.Equal(t, uint256.NewInt(100), token.TotalSupply())

	t.Run("to_zero_address", func(t *testing.T) {
		err := token.Transfer(ctx, alice, common.Address{}, uint256.NewInt(1))
		assert.ErrorIs(t, err, ErrTransferToZeroAddress)
	})

	t.Run("exceeds_balance", func(t *testing.T) {
		err := token.Transfer(ctx, alice, bob, uint256.NewInt(101))
		assert.ErrorIs(t, err, ErrTransferExceedsBalance)
		balance, _ := token.BalanceOf(ctx, alice)
		assert.Equal(t, uint256.NewInt(100), balance)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, token.Transfer(ctx, alice, bob, uint256.NewInt(40)))
		aliceBalance, _ := token.BalanceOf(ctx, alice)
		bobBalance, _ := token.BalanceOf(ctx, bob)
		assert.Equal(t, uint256.NewInt(60), aliceBalance)
		assert.Equal(t, uint256.NewInt(40), bobBalance)
	})
}

func TestTokenTransferFrom(t *testing.T) {
	ctx := context.Background()
	token := NewToken("Tether USD", "USDT", 6)
	require.NoError(t, token.Mint(alice, uint256.NewInt(1000)))

	err := token.TransferFrom(ctx, spender, alice, bob, uint256.NewInt(1))
	assert.ErrorIs(t, err, ErrInsufficientAllowance)

	require.NoError(t, token.Approve(ctx, alice, spender, uint256.NewInt(500)))
	require.NoError(t, token.TransferFrom(ctx, spender, alice, bob, uint256.NewInt(200)))

	allowance, _ := token.Allowance(ctx, alice, spender)
	assert.Equal(t, uint256.NewInt(300), allowance)
	bobBalance, _ := token.BalanceOf(ctx, bob)
	assert.Equal(t, uint256.NewInt(200), bobBalance)

	// allowance without balance
	require.NoError(t, token.Approve(ctx, bob, spender, uint256.NewInt(1000)))
	err = token.TransferFrom(ctx, spender, bob, alice, uint256.NewInt(201))
	assert.ErrorIs(t, err, ErrTransferExceedsBalance)
	allowance, _ = token.Allowance(ctx, bob, spender)
	assert.Equal(t, uint256.NewInt(1000), allowance)
}

func TestTokenMintBurn(t *testing.T) {
	token := NewToken("Sale Token", "SALE", 18)
	assert.ErrorIs(t, token.Mint(common.Address{}, uint256.NewInt(1)), ErrMintToZeroAddress)

	require.NoError(t, token.Mint(alice, uint256.NewInt(10)))
	assert.ErrorIs(t, token.Burn(alice, uint256.NewInt(11)), ErrBurnExceedsBalance)
	require.NoError(t, token.Burn(alice, uint256.NewInt(4)))
	assert.Equal(t, uint256.NewInt(6), token.TotalSupply())
}

func TestBank(t *testing.T) {
	ctx := context.Background()
	bank := NewBank()
	require.NoError(t, bank.Deposit(alice, uint256.NewInt(5)))

	assert.ErrorIs(t, bank.Transfer(ctx, alice, bob, uint256.NewInt(6)), ErrTransferExceedsBalance)
	require.NoError(t, bank.Transfer(ctx, alice, bob, uint256.NewInt(5)))
	aliceBalance, err := bank.BalanceOf(ctx, alice)
	require.NoError(t, err)
	assert.True(t, aliceBalance.IsZero())
	bobBalance, err := bank.BalanceOf(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(5), bobBalance)
}
