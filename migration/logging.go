// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package migration

import (
	"encoding/json"
	"strings"

	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/pkg/errors"
)

// SetupLogging configures the global mlog logger from the config's
// LogSettings block, mirroring how the config file lays it out.
func SetupLogging(config *Config) error {
	logger, err := mlog.NewLogger()
	if err != nil {
		return errors.Wrap(err, "unable to create logger")
	}

	cfg := make(mlog.LoggerConfiguration)

	if config.LogSettings.EnableConsole {
		cfg["console"] = mlog.TargetCfg{
			Type:         "console",
			Levels:       levelsUpTo(config.LogSettings.ConsoleLevel),
			Options:      json.RawMessage(`{"out": "stdout"}`),
			Format:       logFormat(config.LogSettings.ConsoleJSON),
			MaxQueueSize: 1000,
		}
	}

	if config.LogSettings.EnableFile {
		opts, mErr := json.Marshal(map[string]interface{}{
			"filename": GetLogFileLocation(config.LogSettings.FileLocation),
		})
		if mErr != nil {
			return errors.Wrap(mErr, "unable to marshal file target options")
		}
		cfg["file"] = mlog.TargetCfg{
			Type:         "file",
			Levels:       levelsUpTo(config.LogSettings.FileLevel),
			Options:      opts,
			Format:       logFormat(config.LogSettings.FileJSON),
			MaxQueueSize: 1000,
		}
	}

	if err = logger.ConfigureTargets(cfg, nil); err != nil {
		return errors.Wrap(err, "unable to configure log targets")
	}

	mlog.InitGlobalLogger(logger)

	return nil
}

func logFormat(asJSON bool) string {
	if asJSON {
		return "json"
	}
	return "plain"
}

// levelsUpTo expands a single threshold level name into the list of discrete
// levels mlog targets expect. Unknown names fall back to info.
func levelsUpTo(name string) []mlog.Level {
	ordered := []mlog.Level{
		mlog.LvlPanic,
		mlog.LvlFatal,
		mlog.LvlError,
		mlog.LvlWarn,
		mlog.LvlInfo,
		mlog.LvlDebug,
		mlog.LvlTrace,
	}

	threshold := strings.ToLower(name)
	if threshold == "" {
		threshold = "info"
	}

	for i, level := range ordered {
		if level.Name == threshold {
			return ordered[:i+1]
		}
	}

	return ordered[:5]
}

// GetLogFileLocation keeps a sane default when file logging is enabled but
// no path is configured.
func GetLogFileLocation(fileLocation string) string {
	if fileLocation == "" {
		return "redmig.log"
	}

	return fileLocation
}
