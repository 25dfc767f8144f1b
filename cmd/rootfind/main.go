// Command rootfind drives the lvroot solvers from the command line.
//
//	rootfind solve   --coeffs=-2,0,1 --min 0 --max 2 --method brent
//	rootfind bracket --coeffs=-6,11,-6,1 --min 0 --max 4 --inward --segments 8
//	rootfind system  --name circle-line --start 1.5,1.5 --method broyden
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
