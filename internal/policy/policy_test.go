package policy

import (
	"math"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"curve-launchpad/internal/curve"
)

func TestNewRejectsExcessiveFee(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	recipient := solana.NewWallet().PublicKey()

	_, err := New(authority, recipient, curve.MaxPlatformFeeBps+1)
	require.ErrorIs(t, err, ErrInvalidPlatformFee)

	g, err := New(authority, recipient, curve.MaxPlatformFeeBps)
	require.NoError(t, err)
	require.Equal(t, uint16(curve.MaxPlatformFeeBps), g.Snapshot().PlatformFeeBps)
}

func TestSnapshot(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	recipient := solana.NewWallet().PublicKey()

	g, err := New(authority, recipient, 100)
	require.NoError(t, err)

	snap := g.Snapshot()
	require.Equal(t, recipient, snap.FeeRecipient)
	require.Equal(t, uint16(100), snap.PlatformFeeBps)
	require.False(t, snap.Paused)
	require.Equal(t, authority, g.Authority())
}

func TestApplyRequiresAuthority(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	g, err := New(authority, solana.NewWallet().PublicKey(), 100)
	require.NoError(t, err)

	paused := true
	_, err = g.Apply(solana.NewWallet().PublicKey(), Update{Paused: &paused})
	require.ErrorIs(t, err, ErrInvalidAuthority)
	require.False(t, g.Snapshot().Paused)
}

func TestApplyPartialUpdate(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	recipient := solana.NewWallet().PublicKey()
	g, err := New(authority, recipient, 100)
	require.NoError(t, err)

	newFee := uint16(250)
	snap, err := g.Apply(authority, Update{PlatformFeeBps: &newFee})
	require.NoError(t, err)

	// Untouched fields survive the update.
	require.Equal(t, uint16(250), snap.PlatformFeeBps)
	require.Equal(t, recipient, snap.FeeRecipient)
	require.False(t, snap.Paused)

	newRecipient := solana.NewWallet().PublicKey()
	paused := true
	snap, err = g.Apply(authority, Update{FeeRecipient: &newRecipient, Paused: &paused})
	require.NoError(t, err)
	require.Equal(t, newRecipient, snap.FeeRecipient)
	require.Equal(t, uint16(250), snap.PlatformFeeBps)
	require.True(t, snap.Paused)
}

func TestApplyRejectsExcessiveFeeAtomically(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	g, err := New(authority, solana.NewWallet().PublicKey(), 100)
	require.NoError(t, err)

	badFee := uint16(curve.MaxPlatformFeeBps + 1)
	paused := true
	_, err = g.Apply(authority, Update{PlatformFeeBps: &badFee, Paused: &paused})
	require.ErrorIs(t, err, ErrInvalidPlatformFee)

	// The rejected update must not have applied its valid half either.
	snap := g.Snapshot()
	require.Equal(t, uint16(100), snap.PlatformFeeBps)
	require.False(t, snap.Paused)
}

func TestCounters(t *testing.T) {
	g, err := New(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), 100)
	require.NoError(t, err)

	g.RecordLaunch()
	g.RecordLaunch()
	g.RecordVolume(1_000_000_000)
	g.RecordVolume(500)

	launched, volume := g.Stats()
	require.Equal(t, uint64(2), launched)
	require.Equal(t, uint64(1_000_000_500), volume)
}

func TestRecordVolumeSaturates(t *testing.T) {
	g, err := New(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), 100)
	require.NoError(t, err)

	g.RecordVolume(math.MaxUint64 - 10)
	g.RecordVolume(100)

	_, volume := g.Stats()
	require.Equal(t, uint64(math.MaxUint64), volume)
}
