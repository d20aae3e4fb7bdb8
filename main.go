package main

import "postindex/cmd"

func main() {
	cmd.Execute()
}
