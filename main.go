package main

import "github.com/rasperon/portfolio/cmd"

func main() {
	cmd.Execute()
}
