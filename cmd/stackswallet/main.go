package main

import "github.com/stacksline/stacks-wallet/cmd/stackswallet/cmd"

func main() {
	cmd.Execute()
}
