package main

import "github.com/KaramelBytes/finsight-cli/cmd"

func main() {
	cmd.Execute()
}
