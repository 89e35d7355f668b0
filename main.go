package main

import "github.com/shmd/shmd/cmd"

func main() {
	cmd.Execute()
}
