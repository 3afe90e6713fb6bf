// Command napctl loads recording sessions, stores them and runs analysis
// pipelines over them.
//
// Usage:
//
//	napctl [--config file] [--debug] <command> [flags]
//
// Examples:
//
//	napctl info testdata/A2929.json
//	napctl import testdata/A2929.json
//	napctl sessions
//	napctl run --pipeline analyses.hcl --session A2929-200711 --var bin=0.005
//	napctl psd testdata/A2929.json --signal lfp --interval 2
package main

import "github.com/cwbudde/algo-neuro/internal/cli"

func main() {
	cli.Execute()
}
