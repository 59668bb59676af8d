package main

import (
	"log"
	"os"

	"github.com/growthapp/garden/apps/shared"
	"github.com/growthapp/garden/core"
	logsvc "github.com/growthapp/garden/services/logger"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	app, err := shared.NewApp(conf, logger)
	if err != nil {
		logger.Fatal("setting up services", err)
	}

	// start CLI
	cli := commandLine{app: app}
	err = cli.run(os.Args)
	if cerr := app.Close(); cerr != nil {
		logger.Error("closing storage", cerr)
	}
	if err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}
