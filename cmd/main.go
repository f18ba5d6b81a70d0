package main

import cmd "github.com/kerbaras/starwarspedia/cmd/starwarspedia"

func main() {
	cmd.Execute()
}
