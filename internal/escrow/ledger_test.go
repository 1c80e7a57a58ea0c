package escrow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carhive-backend/internal/domain"
)

func TestLedger_DepositAndBalances(t *testing.T) {
	l := NewLedger()

	require.NoError(t, l.DepositFee(domain.NewFunds(300)))
	require.NoError(t, l.DepositEscrow(domain.NewFunds(5000)))

	assert.Equal(t, uint64(300), l.Revenue())
	assert.Equal(t, uint64(5000), l.Deposits())
}

func TestLedger_DepositOverflow(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.DepositFee(domain.NewFunds(math.MaxUint64)))

	err := l.DepositFee(domain.NewFunds(1))
	assert.ErrorIs(t, err, domain.ErrFundsOverflow)
	assert.Equal(t, uint64(math.MaxUint64), l.Revenue())

	require.NoError(t, l.DepositEscrow(domain.NewFunds(math.MaxUint64)))
	err = l.DepositEscrow(domain.NewFunds(1))
	assert.ErrorIs(t, err, domain.ErrFundsOverflow)
}

func TestLedger_WithdrawFee(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.DepositFee(domain.NewFunds(1000)))

	t.Run("Exceeding balance fails and changes nothing", func(t *testing.T) {
		_, err := l.WithdrawFee(1001)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
		assert.Equal(t, uint64(1000), l.Revenue())
	})

	t.Run("Full balance drains to zero", func(t *testing.T) {
		f, err := l.WithdrawFee(1000)
		require.NoError(t, err)
		assert.Equal(t, uint64(1000), f.Value())
		assert.Equal(t, uint64(0), l.Revenue())
	})
}

func TestLedger_ForfeitDeposit(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.DepositEscrow(domain.NewFunds(5000)))

	l.ForfeitDeposit(5000)
	assert.Equal(t, uint64(0), l.Deposits())
	assert.Equal(t, uint64(5000), l.Revenue())

	t.Run("Over-forfeit panics", func(t *testing.T) {
		assert.Panics(t, func() { l.ForfeitDeposit(1) })
	})
}

func TestLedger_ReleaseDeposit(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.DepositEscrow(domain.NewFunds(5000)))

	f := l.ReleaseDeposit(5000)
	assert.Equal(t, uint64(5000), f.Value())
	assert.Equal(t, uint64(0), l.Deposits())

	t.Run("Over-release panics", func(t *testing.T) {
		assert.Panics(t, func() { l.ReleaseDeposit(1) })
	})
}

func TestLedger_Conservation(t *testing.T) {
	l := NewLedger()
	require.NoError(t, l.DepositFee(domain.NewFunds(300)))
	require.NoError(t, l.DepositEscrow(domain.NewFunds(5000)))
	deposited := uint64(5300)

	l.ForfeitDeposit(2000)
	withdrawn, err := l.WithdrawFee(100)
	require.NoError(t, err)
	released := l.ReleaseDeposit(3000)

	assert.Equal(t, deposited, l.Revenue()+l.Deposits()+withdrawn.Value()+released.Value())
}
