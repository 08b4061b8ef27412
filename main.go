package main

import "github.com/chrisdamba/foodvenues/cmd"

func main() {
	cmd.Execute()
}
