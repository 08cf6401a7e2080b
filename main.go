package main

import "github.com/wishshell/wish/cmd"

func main() {
	cmd.Execute()
}
