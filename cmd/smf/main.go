package main

import (
	"fmt"
	"os"

	"github.com/kracgan/student-management-frontend/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
