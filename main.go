package main

import "planeage/cmd"

func main() {
	cmd.Execute()
}
