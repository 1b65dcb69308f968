package main

import "github.com/user/ytcut/cmd"

func main() {
	cmd.Execute()
}
