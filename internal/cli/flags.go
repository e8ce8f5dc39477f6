// Package cli implements the command line entry points behind cmd/.
package cli

import "flag"

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port    int
	Config  string
	Verbose bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (overrides config)")
	flag.StringVar(&flags.Config, "config", "", "Path to config file")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// ReconcileFlags holds the CLI flags for the reconcile command.
type ReconcileFlags struct {
	WeekID  string
	FeePct  float64
	Config  string
	Verbose bool
}

// ParseReconcileFlags parses command line flags for the reconcile command.
func ParseReconcileFlags() *ReconcileFlags {
	flags := &ReconcileFlags{}
	flag.StringVar(&flags.WeekID, "week", "", "Week ID to reconcile (required)")
	flag.Float64Var(&flags.FeePct, "fee", -1, "Acquirer fee override as a fraction (e.g. 0.04)")
	flag.StringVar(&flags.Config, "config", "", "Path to config file")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}
