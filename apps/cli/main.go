package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/trezcool/academia/client"
	querycache "github.com/trezcool/academia/client/cache"
	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/auth"
	"github.com/trezcool/academia/core/session"
	logsvc "github.com/trezcool/academia/services/logger"
	notifysvc "github.com/trezcool/academia/services/notifier"
	filestore "github.com/trezcool/academia/storage/keystore/file"
)

func main() {
	var logger core.Logger = logsvc.NewZerologLogger(os.Stderr, core.Conf)
	if core.Conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(logger, core.Conf)
	}

	// restore the session before anything renders
	ks := filestore.New(filepath.Join(core.Conf.StorageDir, "session.json"))
	store := session.NewStore(ks, logger)
	store.Bootstrap()

	notifier := notifysvc.NewConsoleService(os.Stdout)
	nav := &consoleNavigator{out: os.Stdout}
	httpClient := &http.Client{Timeout: core.Conf.HTTPTimeout}

	authSvc := auth.NewService(&auth.Options{
		BaseURL:    core.Conf.APIBaseURL,
		Store:      store,
		Notifier:   notifier,
		Navigator:  nav,
		Logger:     logger,
		HTTPClient: httpClient,
	})
	api := client.NewBackend(&client.Options{
		BaseURL:    core.Conf.APIBaseURL,
		Tokens:     store,
		Cache:      querycache.New(core.Conf.CacheSize, core.Conf.CacheTTL),
		Logger:     logger,
		HTTPClient: httpClient,
	})

	cli := &commandLine{
		store:    store,
		auth:     authSvc,
		api:      api,
		notifier: notifier,
		nav:      nav,
		out:      os.Stdout,
		in:       os.Stdin,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
			os.Exit(1)
		}
	}
}
