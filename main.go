package main

import "github.com/binshift/cnvmerge/cmd"

func main() {
	cmd.Execute()
}
