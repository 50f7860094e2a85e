// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	config := &Config{}
	config.SetDefaults()

	require.Equal(t, []string{"Resolved", "Closed", "Rejected"}, config.ClosedStatuses)
	require.Equal(t, "Rejected", config.RejectedStatus)
	require.Equal(t, "wontfix", config.RejectedLabel)
	require.Equal(t, "redmig-registry.json", config.RegistryFile)
	require.Equal(t, "Europe/Amsterdam", config.TimeZone)
	require.Equal(t, 50, config.IssuePageSize)
	require.Equal(t, 10, config.LabelRetryMax)
	require.Equal(t, 2, config.LabelRetryIntervalSeconds)
	require.Equal(t, "9000", config.MetricsServerPort)
}

func TestSetDefaultsKeepsExplicitValues(t *testing.T) {
	config := &Config{
		ClosedStatuses: []string{"Done"},
		TimeZone:       "UTC",
		IssuePageSize:  25,
	}
	config.SetDefaults()

	require.Equal(t, []string{"Done"}, config.ClosedStatuses)
	require.Equal(t, "UTC", config.TimeZone)
	require.Equal(t, 25, config.IssuePageSize)
}

func TestValidate(t *testing.T) {
	t.Run("complete config passes", func(t *testing.T) {
		require.NoError(t, testConfig().Validate())
	})

	for name, mutate := range map[string]func(*Config){
		"missing redmine token":  func(c *Config) { c.RedmineAPIToken = "" },
		"missing project":        func(c *Config) { c.RedmineProject = "" },
		"missing gitea url":      func(c *Config) { c.GiteaURL = "" },
		"missing repo name":      func(c *Config) { c.RepoName = "" },
		"missing tracker labels": func(c *Config) { c.TrackerLabels = nil },
	} {
		t.Run(name, func(t *testing.T) {
			config := testConfig()
			mutate(config)
			require.Error(t, config.Validate())
		})
	}
}

func TestGetConfig(t *testing.T) {
	t.Run("valid file loads with defaults applied", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"RedmineURL": "https://redmine.example.com",
			"RedmineAPIToken": "source-token",
			"RedmineProject": "acme",
			"GiteaURL": "https://gitea.example.com",
			"GiteaAPIToken": "target-token",
			"RepoOwner": "acme",
			"RepoName": "acme-app",
			"TrackerLabels": {"Bug": "bug"}
		}`), 0o600))

		config, err := GetConfig(path)
		require.NoError(t, err)
		require.Equal(t, "acme", config.RedmineProject)
		require.Equal(t, "wontfix", config.RejectedLabel)
		require.Equal(t, 50, config.IssuePageSize)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := GetConfig(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})

	t.Run("incomplete file fails validation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"RedmineURL": "https://redmine.example.com"}`), 0o600))

		_, err := GetConfig(path)
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid config")
	})
}
