package main

import (
	"github.com/BitVault/BitVault-Backend/api"
)

var envPath string = "."

func main() {
	server := api.NewServer(envPath)
	server.Start()
}
