/*
Copyright © 2026 Paulo Suderio
*/
package main

import "github.com/dpaq7/forge-steel-summoner-sub001/cmd"

func main() {
	cmd.Execute()
}
