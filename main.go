package main

import "github.com/Nemesis2003/smartci-platform/cmd"

func main() {
	cmd.Execute()
}
