// Package shared holds helpers used across the sales audit packages.
//
// The testutil subpackage provides:
//
//	- a buffered slog handler for asserting on log output
//	- sample sales CSV fixtures
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    path := testutil.WriteSampleSalesCSV(t)
//	    ...
//	}
package shared
