// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package migration

import "fmt"

// UnmappedTrackerError aborts the run: an issue whose tracker has no label
// mapping would otherwise be posted without its primary classification.
type UnmappedTrackerError struct {
	Tracker string
}

func (e *UnmappedTrackerError) Error() string {
	return fmt.Sprintf("no label mapping for tracker %q", e.Tracker)
}

// Translator maps source field vocabulary (tracker, status, user names) onto
// the target's label and username vocabulary. All tables come from the
// config; nothing here is ambient state.
type Translator struct {
	trackerLabels   map[string]string
	closedStatuses  map[string]bool
	rejectedStatus  string
	rejectedLabel   string
	usernames       map[string]string
	defaultUsername string
}

func NewTranslator(config *Config) *Translator {
	closed := make(map[string]bool, len(config.ClosedStatuses))
	for _, status := range config.ClosedStatuses {
		closed[status] = true
	}

	return &Translator{
		trackerLabels:   config.TrackerLabels,
		closedStatuses:  closed,
		rejectedStatus:  config.RejectedStatus,
		rejectedLabel:   config.RejectedLabel,
		usernames:       config.Usernames,
		defaultUsername: config.DefaultUsername,
	}
}

// LabelsFor returns the ordered, de-duplicated label names for an issue:
// the tracker's type label, plus the rejected label when the status is the
// closed-rejected state.
func (t *Translator) LabelsFor(tracker, status string) ([]string, error) {
	typeLabel, ok := t.trackerLabels[tracker]
	if !ok {
		return nil, &UnmappedTrackerError{Tracker: tracker}
	}

	labels := []string{typeLabel}
	if status == t.rejectedStatus && t.rejectedLabel != typeLabel {
		labels = append(labels, t.rejectedLabel)
	}

	return labels, nil
}

// IsClosed reports whether the source status closes the target issue.
func (t *Translator) IsClosed(status string) bool {
	return t.closedStatuses[status]
}

// Username resolves a source user display name to a target username. Users
// missing from the table fall back to the configured default; with no default
// configured the empty string is returned and the caller decides whether to
// omit the field.
func (t *Translator) Username(name string) (username string, fellBack bool) {
	if username, ok := t.usernames[name]; ok {
		return username, false
	}

	return t.defaultUsername, true
}
