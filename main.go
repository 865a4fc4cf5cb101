package main

import "github.com/nathanhack/bersim/cmd"

func main() {
	cmd.Execute()
}
