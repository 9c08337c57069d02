// cmd/server/main.go
package main

import (
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/cli"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/router"
)

func main() {
	cli.Execute(router.Version)
}
