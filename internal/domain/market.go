package domain

// AssetClassAssumption holds the arithmetic mean and standard deviation of one
// asset class's annual return, as fractions (0.10 = 10%).
type AssetClassAssumption struct {
	Mean   float64 `yaml:"mean" json:"mean"`
	StdDev float64 `yaml:"std_dev" json:"stdDev"`
}

// CorrelationAssumptions holds the pairwise correlation coefficients used by
// the closed-form portfolio variance. Sampling itself remains a single scalar
// draw per year; these only calibrate the blended volatility.
type CorrelationAssumptions struct {
	StockBond float64 `yaml:"stock_bond" json:"stockBond"`
	StockCash float64 `yaml:"stock_cash" json:"stockCash"`
	BondCash  float64 `yaml:"bond_cash" json:"bondCash"`
}

// MarketAssumptions is the explicit configuration object for return modeling.
// It is passed into constructors rather than read from package state so that
// concurrent calculations stay independent.
type MarketAssumptions struct {
	Stock        AssetClassAssumption   `yaml:"stock" json:"stock"`
	Bond         AssetClassAssumption   `yaml:"bond" json:"bond"`
	Cash         AssetClassAssumption   `yaml:"cash" json:"cash"`
	Correlations CorrelationAssumptions `yaml:"correlations" json:"correlations"`
}

// DefaultMarketAssumptions returns the long-term assumptions used when a
// scenario does not override them: stocks 10%/20%, bonds 5%/6%, cash 3%/1%,
// with stock-bond 0.1, stock-cash 0.0 and bond-cash 0.2 correlation.
func DefaultMarketAssumptions() MarketAssumptions {
	return MarketAssumptions{
		Stock: AssetClassAssumption{Mean: 0.10, StdDev: 0.20},
		Bond:  AssetClassAssumption{Mean: 0.05, StdDev: 0.06},
		Cash:  AssetClassAssumption{Mean: 0.03, StdDev: 0.01},
		Correlations: CorrelationAssumptions{
			StockBond: 0.1,
			StockCash: 0.0,
			BondCash:  0.2,
		},
	}
}
