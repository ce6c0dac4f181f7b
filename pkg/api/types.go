package api

// v0 contains public types for early SDK usage.

type ScanSpec struct {
	Chain  string `json:"chain" yaml:"chain"`
	Risk   string `json:"risk" yaml:"risk"`
	Limit  int    `json:"limit" yaml:"limit"`
	Top    int    `json:"top" yaml:"top"`
	Source string `json:"source" yaml:"source"`
}

type PickSummary struct {
	Position     int     `json:"position" yaml:"position"`
	Symbol       string  `json:"symbol" yaml:"symbol"`
	Name         string  `json:"name" yaml:"name"`
	QualityScore float64 `json:"quality_score" yaml:"quality_score"`
	Price        float64 `json:"price" yaml:"price"`
	MarketCap    float64 `json:"market_cap" yaml:"market_cap"`
}

type ScanStatus string

const (
	ScanPending   ScanStatus = "pending"
	ScanRunning   ScanStatus = "running"
	ScanSucceeded ScanStatus = "succeeded"
	ScanFailed    ScanStatus = "failed"
)
