package postgres

import "time"

// PriceBarRecord represents one stored daily bar.
type PriceBarRecord struct {
	ID uint `gorm:"primaryKey"`

	// unique index
	Symbol   string    `gorm:"type:text;not null;index:idx_price_bar_symbol;index:idx_symbol_interval_date,unique"`
	Interval string    `gorm:"type:varchar(10);not null;index:idx_symbol_interval_date,unique"`
	Date     time.Time `gorm:"type:date;not null;index:idx_symbol_interval_date,unique"`

	Open     float64 `gorm:"type:numeric;not null"`
	High     float64 `gorm:"type:numeric;not null"`
	Low      float64 `gorm:"type:numeric;not null"`
	Close    float64 `gorm:"type:numeric;not null"`
	AdjClose float64 `gorm:"type:numeric;not null"`

	Volume int64 `gorm:"not null"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the default table name for GORM.
func (PriceBarRecord) TableName() string {
	return "price_bar_record"
}
