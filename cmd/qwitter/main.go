package main

import "github.com/qwitter/cli/internal/cmd"

func main() {
	cmd.Execute()
}
