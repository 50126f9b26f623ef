package main

import "github.com/sadopc/gymstreak/cmd"

func main() {
	cmd.Execute()
}
