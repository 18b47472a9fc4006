package main

import "github.com/twig-tracker/twig/cmd"

func main() {
	cmd.Execute()
}
