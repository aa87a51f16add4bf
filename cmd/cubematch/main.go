// Cubematch is a CLI tool for scanning a Rubik's cube's facelet colors
// and resolving them to a consistent cube state.
package main

import (
	"github.com/SeamusWaldron/cubematch/internal/cli"
)

func main() {
	cli.Execute()
}
