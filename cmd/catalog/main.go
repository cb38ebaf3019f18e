// Command catalog inspects catalog members, their layered traits and styles.
package main

import (
	"os"

	"github.com/mesh-intelligence/catalog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
