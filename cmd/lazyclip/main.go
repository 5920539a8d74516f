package main

import "github.com/forPelevin/lazyclip/internal/cli"

func main() {
	cli.Main()
}
