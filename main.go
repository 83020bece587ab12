package main

import "kv-storage/cmd"

func main() {
	cmd.Execute()
}
