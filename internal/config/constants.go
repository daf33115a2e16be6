package config

// Application constants
const (
	// AppName is shown in operator output
	AppName = "Sales Audit"

	// EnvPrefix is the prefix of every environment variable read by Load
	EnvPrefix = "SALESAUDIT"

	// Pipeline defaults
	DefaultInputFile   = "Ecommerce_Sales_Data_2024_2025.csv"
	DefaultOutputFile  = "Processed_Profitability_Audit.csv"
	DefaultPreviewRows = 5
	MaxPreviewRows     = 1000

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogOutput = "console"
	DefaultLogFile   = "logs/salesaudit.log"

	// Telemetry defaults
	DefaultTraceExporter = "none"
)

// configFileLocations are searched in order when no explicit config file is given
var configFileLocations = []string{
	"salesaudit.yaml",
	"configs/salesaudit.yaml",
}
