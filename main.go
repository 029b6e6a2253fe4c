package main

import "github.com/tunepipe/tunepipe/cmd"

func main() {
	cmd.Execute()
}
