package main

import "github.com/mattetrop/fluidhcen/cmd"

func main() {
	cmd.Execute()
}
