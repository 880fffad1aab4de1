package launch

import (
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"curve-launchpad/internal/curve"
)

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	mint := solana.NewWallet().PublicKey()
	creator := solana.NewWallet().PublicKey()

	asset, err := r.Register(mint, creator, "Dogwifcoin", "WIF", "https://example.com/wif.json", 1700000000)
	require.NoError(t, err)
	require.Equal(t, mint, asset.Mint)
	require.Equal(t, creator, asset.Creator)
	require.Equal(t, uint64(curve.TotalSupply), asset.TotalSupply)
	require.Equal(t, uint8(curve.TokenDecimals), asset.Decimals)

	got, err := r.Get(mint)
	require.NoError(t, err)
	require.Equal(t, asset, got)
	require.Equal(t, 1, r.Len())
}

func TestRegisterValidation(t *testing.T) {
	r := NewRegistry()
	mint := solana.NewWallet().PublicKey()
	creator := solana.NewWallet().PublicKey()

	tests := []struct {
		name    string
		tkName  string
		symbol  string
		uri     string
		wantErr error
	}{
		{name: "empty name", tkName: "", symbol: "WIF", wantErr: ErrInvalidNameLength},
		{name: "name too long", tkName: strings.Repeat("a", MaxNameLength+1), symbol: "WIF", wantErr: ErrInvalidNameLength},
		{name: "empty symbol", tkName: "Dogwifcoin", symbol: "", wantErr: ErrInvalidSymbolLength},
		{name: "symbol too long", tkName: "Dogwifcoin", symbol: strings.Repeat("W", MaxSymbolLength+1), wantErr: ErrInvalidSymbolLength},
		{name: "uri too long", tkName: "Dogwifcoin", symbol: "WIF", uri: strings.Repeat("u", MaxURILength+1), wantErr: ErrInvalidURILength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Register(mint, creator, tt.tkName, tt.symbol, tt.uri, 1)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
	require.Zero(t, r.Len())
}

func TestRegisterBoundaryLengths(t *testing.T) {
	r := NewRegistry()

	_, err := r.Register(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(),
		strings.Repeat("n", MaxNameLength), strings.Repeat("s", MaxSymbolLength), strings.Repeat("u", MaxURILength), 1)
	require.NoError(t, err)

	// An empty URI is allowed.
	_, err = r.Register(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), "N", "S", "", 1)
	require.NoError(t, err)
}

func TestRegisterDuplicateMint(t *testing.T) {
	r := NewRegistry()
	mint := solana.NewWallet().PublicKey()

	_, err := r.Register(mint, solana.NewWallet().PublicKey(), "First", "ONE", "", 1)
	require.NoError(t, err)

	_, err = r.Register(mint, solana.NewWallet().PublicKey(), "Second", "TWO", "", 2)
	require.ErrorIs(t, err, ErrAlreadyRegistered)

	got, err := r.Get(mint)
	require.NoError(t, err)
	require.Equal(t, "First", got.Name)
}

func TestRemoveFreesMint(t *testing.T) {
	r := NewRegistry()
	mint := solana.NewWallet().PublicKey()

	_, err := r.Register(mint, solana.NewWallet().PublicKey(), "First", "ONE", "", 1)
	require.NoError(t, err)

	r.Remove(mint)
	_, err = r.Get(mint)
	require.ErrorIs(t, err, ErrNotRegistered)
	require.Zero(t, r.Len())

	// The mint is registrable again after removal.
	_, err = r.Register(mint, solana.NewWallet().PublicKey(), "Second", "TWO", "", 2)
	require.NoError(t, err)
}

func TestGetUnknownMint(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get(solana.NewWallet().PublicKey())
	require.ErrorIs(t, err, ErrNotRegistered)
}
