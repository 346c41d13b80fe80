// Command laundryctl prices laundry orders from the command line.
package main

import "github.com/guttosm/laundry-service/internal/cli"

func main() {
	cli.Execute()
}
