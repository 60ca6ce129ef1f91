// Command cartonctl previews, scores and exports carton configurations
// without the desktop host.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
