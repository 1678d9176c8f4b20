package main

import "github.com/jeffrydegrande/resemble/cmd"

func main() {
	cmd.Execute()
}
