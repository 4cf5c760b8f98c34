package main

import "github.com/example/staybook/cmd"

func main() {
	cmd.Execute()
}
