// internal/history/models/curve.go
package models

// CurveRecord tracks every curve ever created and its current parameters.
type CurveRecord struct {
	BaseModel
	CurveAddress string `gorm:"unique;not null;type:varchar(44)"`
	TokenMint    string `gorm:"index;not null;type:varchar(44)"`
	Authority    string `gorm:"not null;type:varchar(44)"`
	InitialPrice uint64 `gorm:"not null;type:numeric(20,0)"`
	Slope        uint64 `gorm:"not null;type:numeric(20,0)"`
}
