package main

import "github.com/mawngo/gower/cmd"

func main() {
	cmd.NewCLI().Execute()
}
