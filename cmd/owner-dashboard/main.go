package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kiwari-pos/owner-dashboard/internal/api"
	"github.com/kiwari-pos/owner-dashboard/internal/config"
	"github.com/kiwari-pos/owner-dashboard/internal/dashboard"
	"github.com/kiwari-pos/owner-dashboard/internal/socket"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	client := api.NewClient(cfg.APIBaseURL)
	sock := socket.Dial(cfg.SocketURL, cfg.ReconnectAttempts)

	dash := dashboard.New(client, sock,
		dashboard.WithPageSize(cfg.PageSize),
		dashboard.WithNotifier(func(n dashboard.Notification) {
			log.Printf("[%s] %s", n.Level, n.Message)
		}),
	)

	errCh := make(chan error, 2)
	go func() { errCh <- sock.Run(ctx) }()
	go func() { errCh <- dash.Run(ctx, sock.Events()) }()

	log.Printf("owner dashboard started (api=%s socket=%s)", cfg.APIBaseURL, cfg.SocketURL)

	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
