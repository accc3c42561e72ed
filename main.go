package main

import "github.com/fretsense/fretsense/cmd"

func main() {
	cmd.Execute()
}
