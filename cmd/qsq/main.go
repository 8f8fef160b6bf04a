package main

import "github.com/papapumpkin/qsq/cmd"

func main() {
	cmd.Execute()
}
