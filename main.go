package main

import "github.com/thelocalist/localist/cmd"

func main() {
	cmd.Execute()
}
