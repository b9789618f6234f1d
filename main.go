package main

import "print-shop/cmd"

func main() {
	cmd.Execute()
}
