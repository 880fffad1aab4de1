package curve

// Protocol constants. These values are part of the external contract and
// must match any existing deployment bit for bit.
const (
	// TokenDecimals is the standard SPL token decimal count used by
	// launchpad mints.
	TokenDecimals = 6

	// TotalSupply is the fixed total supply of every launched token:
	// 1 billion tokens with 6 decimals.
	TotalSupply uint64 = 1_000_000_000 * 1_000_000

	// DefaultVirtualSolReserves seeds the curve with 30 SOL of virtual
	// liquidity before any real capital is deposited.
	DefaultVirtualSolReserves uint64 = 30 * 1_000_000_000

	// DefaultVirtualTokenReserves is the token side of the virtual pool
	// (~1.073B tokens).
	DefaultVirtualTokenReserves uint64 = 1_073_000_000 * 1_000_000

	// InitialRealTokenReserves is the portion of the supply actually
	// available for sale on the curve (793M tokens).
	InitialRealTokenReserves uint64 = 793_000_000 * 1_000_000

	// GraduationSolThreshold is the real SOL reserve at which a curve
	// becomes eligible for graduation (85 SOL).
	GraduationSolThreshold uint64 = 85 * 1_000_000_000

	// DefaultPlatformFeeBps is the default platform fee (1%).
	DefaultPlatformFeeBps uint16 = 100

	// MaxPlatformFeeBps caps the platform fee at 10%.
	MaxPlatformFeeBps uint16 = 1000

	// MinTradeAmount is the smallest accepted buy, in lamports (0.001 SOL).
	MinTradeAmount uint64 = 1_000_000

	// PriceScale gives spot prices sub-lamport precision: prices are
	// expressed in lamports per token scaled by 1e9.
	PriceScale uint64 = 1_000_000_000

	// bpsDenominator converts basis points to a fraction.
	bpsDenominator uint64 = 10_000
)

// Graduation split of the raised SOL, in whole percent.
const (
	GraduationLiquidityPercent     uint64 = 85
	CreatorGraduationRewardPercent uint64 = 10
	PlatformGraduationFeePercent   uint64 = 5
)

func init() {
	// The split must cover the raised SOL exactly. Checked once here, not
	// per call.
	if GraduationLiquidityPercent+CreatorGraduationRewardPercent+PlatformGraduationFeePercent != 100 {
		panic("curve: graduation split percentages must sum to 100")
	}
}
