/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/SaiPhaniAnirudh/invoice-manager/cmd"

func main() {
	cmd.Execute()
}
