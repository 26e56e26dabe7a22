package main

import "branchscope/cmd"

func main() {
	cmd.Execute()
}
