package main

import "expensehub/cmd"

func main() {
	cmd.Execute()
}
