package main

import "github.com/micaelmalta/agentic/cmd"

func main() {
	cmd.Execute()
}
