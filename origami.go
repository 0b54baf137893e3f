package main

import "github.com/will-rowe/origami/cmd"

func main() {
	cmd.Execute()
}
