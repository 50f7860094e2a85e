// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattermost/mattermost-server/v6/shared/mlog"

	"github.com/redmig/redmig/metrics"
	"github.com/redmig/redmig/migration"
	"github.com/redmig/redmig/store"
	"github.com/redmig/redmig/version"
)

var (
	configFile string
)

func init() {
	flag.StringVar(&configFile, "config", "config-redmig.json", "")
}

func main() {
	flag.Parse()

	config, err := migration.GetConfig(configFile)
	if err != nil {
		mlog.Error("unable to load config", mlog.Err(err), mlog.String("file", configFile))
		os.Exit(1)
	}
	if err = migration.SetupLogging(config); err != nil {
		mlog.Error("unable to configure logging", mlog.Err(err))
		os.Exit(1)
	}

	buildInfo := version.Full()
	mlog.Info("Loaded config",
		mlog.String("filename", configFile),
		mlog.String("version", buildInfo.Version),
		mlog.String("hash", buildInfo.Hash))

	metricsProvider := metrics.NewPrometheusProvider()
	metricsServer := metrics.NewServer(config.MetricsServerPort, metricsProvider.Handler(), true)
	metricsServer.Start()
	defer metricsServer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if config.RunTimeoutMinutes > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(config.RunTimeoutMinutes)*time.Minute)
		defer cancel()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sig
		mlog.Info("Received signal, aborting migration", mlog.String("signal", s.String()))
		cancel()
	}()

	source, err := migration.NewRedmineClient(config, metrics.NewTransport(nil, "redmine", metricsProvider))
	if err != nil {
		mlog.Error("unable to build redmine client", mlog.Err(err))
		os.Exit(1)
	}

	gitea, err := migration.NewGiteaClient(config.GiteaURL, config.GiteaAPIToken, metrics.NewTransport(nil, "gitea", metricsProvider))
	if err != nil {
		mlog.Error("unable to build gitea client", mlog.Err(err))
		os.Exit(1)
	}

	registry := store.NewFileRegistry(config.RegistryFile)

	mlog.Info("Starting migration",
		mlog.String("project", config.RedmineProject),
		mlog.String("repo", config.RepoOwner+"/"+config.RepoName))

	migrator := migration.New(config, source, gitea, registry, metricsProvider)
	if err = migrator.Run(ctx); err != nil {
		// The registry file keeps whatever was mapped before the failure;
		// rerunning with the same config resumes from there.
		mlog.Error("migration failed", mlog.Err(err))
		metricsServer.Stop()
		os.Exit(1)
	}

	mlog.Info("Migration finished")
}
