package models

// CurveState is a persisted snapshot of one bonding curve. Amounts are
// raw integer units (lamports / token base units).
type CurveState struct {
	BaseModel
	Mint                 string `gorm:"unique;not null;type:varchar(44)"`
	Creator              string `gorm:"index;not null;type:varchar(44)"`
	VirtualSolReserves   uint64 `gorm:"not null"`
	VirtualTokenReserves uint64 `gorm:"not null"`
	RealSolReserves      uint64 `gorm:"not null"`
	RealTokenReserves    uint64 `gorm:"not null"`
	TokensSold           uint64 `gorm:"not null"`
	Graduated            bool   `gorm:"index;not null"`
	CurveCreatedAt       int64  `gorm:"not null"`
	GraduatedAt          int64
}
