package main

import "redlens/cmd/cmd"

func main() {
	cmd.Execute()
}
