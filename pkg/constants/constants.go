// Package constants provides shared constants for the fincalc engine and its adapters.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// QuartersPerYear is the number of payout quarters in a year
	QuartersPerYear = 4

	// DecimalPrecision is the number of decimal places kept for currency
	DecimalPrecision = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 paisa)
	CurrencyTolerance = 0.01
)

// Tenure units understood by finance.Request.
const (
	UnitMonths = "months"
	UnitYears  = "years"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the machine-readable JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default rate policy file name
	DefaultConfigFile = "rates.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides of policy keys
	EnvPrefix = "FINCALC"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodyBytes is the default maximum JSON request body (64 KB)
	DefaultMaxBodyBytes int64 = 64 * 1024

	// DefaultServiceName names the service in traces
	DefaultServiceName = "fincalc"
)
