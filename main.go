package main

import "github.com/yeymeap/L-systems/cmd"

func main() {
	cmd.Execute()
}
