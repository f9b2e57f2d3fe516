// Command redisext runs a key-value HTTP API over a Redis extension and
// offers one-shot commands against the same configuration.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
