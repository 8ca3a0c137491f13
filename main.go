package main

import "github.com/mkalv/faktura/cmd"

func main() {
	cmd.Execute()
}
