package main

import "github.com/gaurav-prasanna/pageutil/cmd"

func main() {
	cmd.Execute()
}
