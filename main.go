package main

import (
	"context"
	"os/signal"
	"syscall"

	"cotacao/cmd"
	"cotacao/infra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	loadingEnv := infra.NewConfig()
	container := infra.NewContainerDI(ctx, loadingEnv)

	cmd.StartAPI(ctx, container)
}
