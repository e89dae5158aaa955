package main

import "github.com/ExpertsInside/Botty-McBotface/cmd"

func main() {
	cmd.Execute()
}
