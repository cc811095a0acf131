package main

import "github.com/harrisonrobin/tasksheet/pkg/cli"

func main() {
	cli.Execute()
}
