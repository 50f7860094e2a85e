// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package migration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type LogSettings struct {
	EnableConsole bool
	ConsoleJSON   bool
	ConsoleLevel  string
	EnableFile    bool
	FileJSON      bool
	FileLevel     string
	FileLocation  string
}

// Config carries everything a migration run needs: endpoints and credentials
// for both trackers, the vocabulary tables that translate source fields into
// target labels and usernames, and the knobs for retries and observability.
type Config struct {
	RedmineURL      string
	RedmineAPIToken string
	RedmineProject  string

	GiteaURL      string
	GiteaAPIToken string
	RepoOwner     string
	RepoName      string

	// TrackerLabels maps a source tracker/type name ("Bug") to the target
	// label name ("bug"). An issue whose tracker is missing here aborts the
	// run; posting it would drop its primary classification.
	TrackerLabels map[string]string

	// ClosedStatuses are the source statuses that close the target issue.
	ClosedStatuses []string

	// RejectedStatus additionally gets RejectedLabel attached.
	RejectedStatus string
	RejectedLabel  string

	// Usernames maps source user display names to target usernames. Users
	// missing from the map fall back to DefaultUsername; the renderer then
	// appends an attribution line naming the original author.
	Usernames       map[string]string
	DefaultUsername string

	RegistryFile string

	// TimeZone is the fixed zone journal timestamps are rendered in.
	TimeZone string

	IssuePageSize int

	// Label assignment on the target can lag issue creation. The reconciler
	// re-asserts the label set up to LabelRetryMax times.
	LabelRetryMax             int
	LabelRetryIntervalSeconds int

	// RunTimeoutMinutes bounds the whole run; zero means no timeout.
	// Mappings persisted before the deadline survive for a resumed run.
	RunTimeoutMinutes int

	MetricsServerPort string

	LogSettings LogSettings
}

func (config *Config) SetDefaults() {
	if len(config.ClosedStatuses) == 0 {
		config.ClosedStatuses = []string{"Resolved", "Closed", "Rejected"}
	}
	if config.RejectedStatus == "" {
		config.RejectedStatus = "Rejected"
	}
	if config.RejectedLabel == "" {
		config.RejectedLabel = "wontfix"
	}
	if config.RegistryFile == "" {
		config.RegistryFile = "redmig-registry.json"
	}
	if config.TimeZone == "" {
		config.TimeZone = "Europe/Amsterdam"
	}
	if config.IssuePageSize == 0 {
		config.IssuePageSize = 50
	}
	if config.LabelRetryMax == 0 {
		config.LabelRetryMax = 10
	}
	if config.LabelRetryIntervalSeconds == 0 {
		config.LabelRetryIntervalSeconds = 2
	}
	if config.MetricsServerPort == "" {
		config.MetricsServerPort = "9000"
	}
}

func (config *Config) Validate() error {
	if config.RedmineURL == "" || config.RedmineAPIToken == "" {
		return errors.New("redmine url and api token are required")
	}
	if config.RedmineProject == "" {
		return errors.New("redmine project is required")
	}
	if config.GiteaURL == "" || config.GiteaAPIToken == "" {
		return errors.New("gitea url and api token are required")
	}
	if config.RepoOwner == "" || config.RepoName == "" {
		return errors.New("target repository owner and name are required")
	}
	if len(config.TrackerLabels) == 0 {
		return errors.New("at least one tracker to label mapping is required")
	}

	return nil
}

func findConfigFile(fileName string) string {
	if _, err := os.Stat("./config/" + fileName); err == nil {
		fileName, _ = filepath.Abs("./config/" + fileName)
	} else if _, err := os.Stat(fileName); err == nil {
		fileName, _ = filepath.Abs(fileName)
	}

	return fileName
}

func GetConfig(fileName string) (*Config, error) {
	fileName = findConfigFile(fileName)

	file, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open config file")
	}
	defer file.Close()

	config := &Config{}
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, errors.Wrap(err, "unable to decode config file")
	}

	config.SetDefaults()
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return config, nil
}
