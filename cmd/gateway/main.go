package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"suzurigw/cmd/initialize"
	"suzurigw/gateway"
	"suzurigw/normalizer"
	"suzurigw/product"
)

func main() {
	initialize.DotEnv()

	log := initialize.Logger()

	client := initialize.SuzuriClientFromEnv(log)
	store := initialize.StorageFromEnv()

	products := product.NewService(client, normalizer.New(normalizer.Config{}), store, log)

	server := gateway.NewServer(echo.New(), initialize.Port(), products, log)

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGTERM, syscall.SIGINT)

	if err := server.Run(stopCh, 10*time.Second); err != nil {
		panic(err)
	}
}
