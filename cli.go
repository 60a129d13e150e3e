//go:build cli
// +build cli

package main

import (
	_ "conputodo.GO/custom"

	"conputodo.GO/cmd"
	"conputodo.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
