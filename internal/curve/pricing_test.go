package curve

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func newTestCurve(t *testing.T) *BondingCurve {
	t.Helper()
	mint := solana.NewWallet().PublicKey()
	creator := solana.NewWallet().PublicKey()
	return NewBondingCurve(mint, creator, 1700000000)
}

func TestCurrentPriceInitial(t *testing.T) {
	bc := newTestCurve(t)

	price, err := bc.CurrentPrice()
	require.NoError(t, err)
	// 30e9 * 1e9 / 1.073e15, truncated.
	require.Equal(t, uint64(27_958), price)

	mcap, err := bc.MarketCap(TotalSupply)
	require.NoError(t, err)
	require.Equal(t, uint64(27_958_000_000), mcap)
}

func TestCurrentPriceZeroVirtualTokens(t *testing.T) {
	bc := newTestCurve(t)
	bc.VirtualTokenReserves = 0

	price, err := bc.CurrentPrice()
	require.NoError(t, err)
	require.Zero(t, price)

	mcap, err := bc.MarketCap(TotalSupply)
	require.NoError(t, err)
	require.Zero(t, mcap)
}

func TestTokensOutQuote(t *testing.T) {
	bc := newTestCurve(t)

	out, err := bc.TokensOut(990_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(34_277_831_558_568), out)
}

func TestTokensOutZeroInput(t *testing.T) {
	bc := newTestCurve(t)

	out, err := bc.TokensOut(0)
	require.NoError(t, err)
	require.Zero(t, out)
}

func TestTokensOutClampedToRealReserves(t *testing.T) {
	bc := newTestCurve(t)
	bc.RealTokenReserves = 1_000_000

	out, err := bc.TokensOut(990_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), out)
}

func TestTokensOutPureQuote(t *testing.T) {
	bc := newTestCurve(t)
	before := *bc

	_, err := bc.TokensOut(5_000_000_000)
	require.NoError(t, err)
	require.Equal(t, before, *bc)
}

func TestSolOutClampedToRealReserves(t *testing.T) {
	bc := newTestCurve(t)
	bc.RealSolReserves = 500_000

	out, err := bc.SolOut(50_000_000_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(500_000), out)
}

func TestSolOutZeroInput(t *testing.T) {
	bc := newTestCurve(t)

	out, err := bc.SolOut(0)
	require.NoError(t, err)
	require.Zero(t, out)
}

// The marginal price rises with every buy: a second identical purchase
// always yields fewer tokens than the first.
func TestBuyQuoteMonotonic(t *testing.T) {
	bc := newTestCurve(t)
	pol := PolicySnapshot{PlatformFeeBps: 0}

	first, err := Buy(bc, pol, 1_000_000_000, 0, 1)
	require.NoError(t, err)
	second, err := Buy(bc, pol, 1_000_000_000, 0, 2)
	require.NoError(t, err)

	require.Less(t, second.TokenAmount, first.TokenAmount)
}
