package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"banking-client/internal/config"
	"banking-client/internal/errs"
	"banking-client/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, errs.UserMessage(err))
		os.Exit(1)
	}
}

func run() error {
	if err := config.Config.Parse(); err != nil {
		return err
	}

	if err := config.Config.Validate(); err != nil {
		return err
	}

	logger := logging.New(config.Config.LogLevel)
	ctx := context.Background()

	s, err := openStore(ctx, config.Config.SessionStore)
	if err != nil {
		return err
	}

	appInstance := newApp(config.Config, s, os.Stdout, logger)
	defer func() {
		if err := appInstance.Close(); err != nil {
			logger.Error(err.Error())
		}
	}()

	return appInstance.Run(ctx, flag.Args())
}
