package main

import "github.com/gobeaver/filemagic/internal/cmd"

func main() {
	cmd.Execute()
}
