package main

import "github.com/certipro/certipro-cli/cmd"

func main() {
	cmd.Execute()
}
