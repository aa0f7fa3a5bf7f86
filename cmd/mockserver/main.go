// mockserver serves HTTP mocks from a directory of mock files.
package main

import (
	"os"

	"github.com/getmockd/mockserver/pkg/cli"
)

func main() {
	os.Exit(cli.Main())
}
