package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunds_Split(t *testing.T) {
	f := NewFunds(5300)

	fee, deposit, err := f.Split(300)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), fee.Value())
	assert.Equal(t, uint64(5000), deposit.Value())

	t.Run("Split beyond value", func(t *testing.T) {
		_, _, err := NewFunds(100).Split(101)
		assert.ErrorIs(t, err, ErrSplitExceedsValue)
	})

	t.Run("Split everything", func(t *testing.T) {
		all, rest, err := NewFunds(100).Split(100)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), all.Value())
		assert.Equal(t, uint64(0), rest.Value())
	})
}

func TestFunds_Merge(t *testing.T) {
	merged, err := Merge(NewFunds(300), NewFunds(5000))
	require.NoError(t, err)
	assert.Equal(t, uint64(5300), merged.Value())

	t.Run("Overflow", func(t *testing.T) {
		_, err := Merge(NewFunds(math.MaxUint64), NewFunds(1))
		assert.ErrorIs(t, err, ErrFundsOverflow)
	})
}
