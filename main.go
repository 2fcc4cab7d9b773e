package main

import "github.com/vibeworks/appweave/cmd"

func main() {
	cmd.Execute()
}
