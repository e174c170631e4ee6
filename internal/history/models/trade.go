// internal/history/models/trade.go
package models

// TradeRecord is one executed buy or sell, as reported on the event bus.
// Amounts are stored as numeric(20,0): uint64 does not fit in bigint.
type TradeRecord struct {
	BaseModel
	CurveAddress string `gorm:"index;not null;type:varchar(44)"`
	TokenMint    string `gorm:"index;not null;type:varchar(44)"`
	Trader       string `gorm:"index;not null;type:varchar(44)"`
	Side         string `gorm:"not null;type:varchar(4)"`
	Amount       uint64 `gorm:"not null;type:numeric(20,0)"`
	Lamports     uint64 `gorm:"not null;type:numeric(20,0)"`
	SupplyAfter  uint64 `gorm:"not null;type:numeric(20,0)"`
}
