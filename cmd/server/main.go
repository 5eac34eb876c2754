// Command server runs the game master service: room administration, the
// generation endpoint and live room views.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"rpg-gamemaster/internal/bootstrap"
)

func main() {
	flags := pflag.NewFlagSet("server", pflag.ContinueOnError)
	var opts bootstrap.Options
	flags.StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.StringVar(&opts.Port, "port", "", "HTTP port, overrides SERVER_PORT")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewApp(ctx, opts)
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}
	app.Start()

	<-ctx.Done()
	logrus.Info("Shutdown signal received...")
	app.Shutdown()
}
