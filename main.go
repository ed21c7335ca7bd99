package main

import "github.com/taskrank/taskrank/cmd"

func main() {
	cmd.Execute()
}
