package models

// Trade is one settled buy or sell as journaled by the engine.
type Trade struct {
	BaseModel
	Mint                 string `gorm:"index;not null;type:varchar(44)"`
	Trader               string `gorm:"index;not null;type:varchar(44)"`
	IsBuy                bool   `gorm:"not null"`
	GrossSolAmount       uint64 `gorm:"not null"`
	NetSolAmount         uint64 `gorm:"not null"`
	PlatformFee          uint64 `gorm:"not null"`
	TokenAmount          uint64 `gorm:"not null"`
	VirtualSolReserves   uint64 `gorm:"not null"`
	VirtualTokenReserves uint64 `gorm:"not null"`
	RealSolReserves      uint64 `gorm:"not null"`
	RealTokenReserves    uint64 `gorm:"not null"`
	Price                uint64 `gorm:"not null"`
	MarketCap            uint64 `gorm:"not null"`
	SettledAt            int64  `gorm:"index;not null"`
}

// Graduation records one curve's liquidity migration.
type Graduation struct {
	BaseModel
	Mint            string `gorm:"unique;not null;type:varchar(44)"`
	Creator         string `gorm:"index;not null;type:varchar(44)"`
	Pool            string `gorm:"type:varchar(44)"`
	FinalMarketCap  uint64 `gorm:"not null"`
	LiquiditySol    uint64 `gorm:"not null"`
	LiquidityTokens uint64 `gorm:"not null"`
	CreatorReward   uint64 `gorm:"not null"`
	PlatformFee     uint64 `gorm:"not null"`
	GraduatedAt     int64  `gorm:"index;not null"`
}
