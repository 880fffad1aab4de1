package curve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// curveAtThreshold drives the curve to a specific raised-SOL level by
// patching the real reserve the way a sequence of buys would have.
func curveAtThreshold(t *testing.T, realSol uint64) *BondingCurve {
	t.Helper()
	bc := newTestCurve(t)
	bc.VirtualSolReserves += realSol
	bc.RealSolReserves = realSol
	bc.RealTokenReserves = 100_000_000_000_000
	bc.TokensSold = InitialRealTokenReserves - bc.RealTokenReserves
	return bc
}

func TestGraduateAtExactThreshold(t *testing.T) {
	bc := curveAtThreshold(t, GraduationSolThreshold)

	res, err := Graduate(bc, defaultPolicy(), 99)
	require.NoError(t, err)

	require.Equal(t, uint64(72_250_000_000), res.LiquiditySol)
	require.Equal(t, uint64(8_500_000_000), res.CreatorReward)
	require.Equal(t, uint64(4_250_000_000), res.PlatformFee)
	require.Equal(t, uint64(GraduationSolThreshold),
		res.LiquiditySol+res.CreatorReward+res.PlatformFee)
	require.Equal(t, uint64(100_000_000_000_000), res.LiquidityTokens)

	require.True(t, bc.Graduated)
	require.Equal(t, int64(99), bc.GraduatedAt)
	require.Zero(t, bc.RealSolReserves)
	require.Zero(t, bc.RealTokenReserves)
}

func TestGraduateBelowThreshold(t *testing.T) {
	bc := curveAtThreshold(t, GraduationSolThreshold-1)
	before := *bc

	res, err := Graduate(bc, defaultPolicy(), 99)
	require.ErrorIs(t, err, ErrNotReadyForGraduation)
	require.Nil(t, res)
	require.Equal(t, before, *bc)
}

func TestGraduateIsOneShot(t *testing.T) {
	bc := curveAtThreshold(t, GraduationSolThreshold)

	_, err := Graduate(bc, defaultPolicy(), 99)
	require.NoError(t, err)

	res, err := Graduate(bc, defaultPolicy(), 100)
	require.ErrorIs(t, err, ErrAlreadyGraduated)
	require.Nil(t, res)

	// A retry must not resurrect any balance.
	require.Zero(t, bc.RealSolReserves)
	require.Zero(t, bc.RealTokenReserves)
	require.Equal(t, int64(99), bc.GraduatedAt)
}

func TestGraduatePaused(t *testing.T) {
	bc := curveAtThreshold(t, GraduationSolThreshold)
	pol := defaultPolicy()
	pol.Paused = true

	_, err := Graduate(bc, pol, 99)
	require.ErrorIs(t, err, ErrProtocolPaused)
	require.False(t, bc.Graduated)
}

func TestGraduateSplitNeverExceedsTotal(t *testing.T) {
	for _, extra := range []uint64{0, 1, 7, 19, 999_999_999} {
		bc := curveAtThreshold(t, GraduationSolThreshold+extra)
		total := bc.RealSolReserves

		res, err := Graduate(bc, defaultPolicy(), 1)
		require.NoError(t, err)

		sum := res.LiquiditySol + res.CreatorReward + res.PlatformFee
		require.LessOrEqual(t, sum, total)
		// Truncation can strand at most two lamports across the three cuts.
		require.LessOrEqual(t, total-sum, uint64(2))
	}
}

func TestBuyAfterGraduation(t *testing.T) {
	bc := curveAtThreshold(t, GraduationSolThreshold)
	_, err := Graduate(bc, defaultPolicy(), 1)
	require.NoError(t, err)

	_, err = Buy(bc, defaultPolicy(), 1_000_000_000, 0, 2)
	require.ErrorIs(t, err, ErrAlreadyGraduated)

	_, err = Sell(bc, defaultPolicy(), 1_000_000, 0, 2)
	require.ErrorIs(t, err, ErrAlreadyGraduated)
}
