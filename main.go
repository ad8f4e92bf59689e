package main

import "github.com/mwolters/budgetcast/cmd"

func main() {
	cmd.Execute()
}
