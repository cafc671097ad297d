package main

import "github.com/mpapenbr/trackday-instructions/cmd"

func main() {
	cmd.Execute()
}
