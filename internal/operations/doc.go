// Package operations orchestrates the sales audit run as a sequence of steps.
//
// Core Components:
//
// Pipeline: builds the extract, transform and load steps from fixed Options
// and runs each of them once in dependency order. Every step runs inside an
// OpenTelemetry span and records the pipeline metrics.
//
// Step: a single unit of work. Validate decides whether the step can run;
// an ErrorTypeNoInput result skips it instead of failing it.
//
// Registry: holds the steps and orders them topologically.
//
// State: OperationState and StepState track status, timing and the values
// steps hand to each other (the loaded table and the run summary).
//
// Outcomes:
//
//	StatusCompleted    every step completed                 exit code 0
//	StatusLoadFailed   extract or transform failed          exit code 1
//	StatusNoInput      missing source or no data rows       exit code 2
//	StatusWriteFailed  the output could not be written      exit code 3
//
// A failed step skips every later step. Nothing is retried.
package operations
