// Command qatrack is the quality tracking CLI and API server.
package main

import "github.com/mesh-intelligence/qatrack/internal/cli"

func main() {
	cli.Execute()
}
