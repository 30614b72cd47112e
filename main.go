package main

import "github.com/soildyn/gobem/cmd"

func main() {
	cmd.Execute()
}
