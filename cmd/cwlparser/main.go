package main

import "github.com/lijiang2014/cwlparser.go/cmd/cwlparser/cmd"

func main() {
	cmd.Execute()
}
