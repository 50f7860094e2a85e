// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package migration

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/redmig/redmig/model"
)

// propertyKind is the closed set of rendering rules for journal details.
// Every recognized property name maps onto exactly one kind; anything else
// falls through to kindGeneric and renders its raw values.
type propertyKind int

const (
	kindGeneric propertyKind = iota
	kindStatus
	kindTracker
	kindProject
	kindAssignee
	kindDoneRatio
	kindRelation
	kindLongText
	kindCustomField
)

const journalTimestampFormat = "Jan 2, 2006 15:04 MST"

// relationNames maps the source's relation journal keys to readable labels.
var relationNames = map[string]string{
	"blocks":      "Blocks",
	"blocked":     "Blocked by",
	"precedes":    "Precedes",
	"follows":     "Follows",
	"relates":     "Related to",
	"duplicates":  "Duplicates",
	"duplicated":  "Duplicated by",
	"copied_to":   "Copied to",
	"copied_from": "Copied from",
}

var attrNames = map[string]string{
	"status_id":      "Status",
	"tracker_id":     "Tracker",
	"project_id":     "Project",
	"assigned_to_id": "Assignee",
	"done_ratio":     "% Done",
	"priority_id":    "Priority",
	"category_id":    "Category",
	"subject":        "Subject",
	"description":    "Description",
}

// JournalRenderer turns one source change event into a single comment body.
// The lookup tables are explicit inputs; the renderer holds no state that
// changes between calls, so rendering is deterministic.
type JournalRenderer struct {
	tables     *model.Tables
	translator *Translator
	location   *time.Location
}

func NewJournalRenderer(config *Config, translator *Translator, tables *model.Tables) (*JournalRenderer, error) {
	location, err := time.LoadLocation(config.TimeZone)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown time zone %q", config.TimeZone)
	}

	return &JournalRenderer{
		tables:     tables,
		translator: translator,
		location:   location,
	}, nil
}

// Render composes the full comment body for one change event: the free-text
// note, a separator rule when both note and field changes are present, one
// clause per field change, and a trailing timestamp line. An event with
// neither note nor changes still renders its timestamp line.
func (r *JournalRenderer) Render(event *model.ChangeEvent) (string, error) {
	clauses := make([]string, 0, len(event.Details))
	for _, detail := range event.Details {
		clause, err := r.renderDetail(detail)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, clause)
	}

	note := strings.TrimSpace(strings.ReplaceAll(event.Notes, "\r\n", "\n"))

	var parts []string
	if note != "" {
		parts = append(parts, note)
	}
	if len(clauses) > 0 {
		if note != "" {
			parts = append(parts, "---")
		}
		parts = append(parts, strings.Join(clauses, "\n"))
	}

	timestamp := event.CreatedOn.In(r.location).Format(journalTimestampFormat)
	parts = append(parts, fmt.Sprintf("*Originally posted on %s*", timestamp))

	if _, fellBack := r.translator.Username(event.User.Name); fellBack && event.User.Name != "" {
		parts = append(parts, fmt.Sprintf("*Originally authored by %s*", event.User.Name))
	}

	return strings.Join(parts, "\n\n"), nil
}

func (r *JournalRenderer) renderDetail(detail model.FieldChange) (string, error) {
	kind := classify(detail)
	label := displayName(kind, detail)

	oldValue, err := r.renderValue(kind, detail.OldValue)
	if err != nil {
		return "", errors.Wrapf(err, "unable to render old value of %q", detail.Name)
	}
	newValue, err := r.renderValue(kind, detail.NewValue)
	if err != nil {
		return "", errors.Wrapf(err, "unable to render new value of %q", detail.Name)
	}

	if oldValue == "" {
		oldValue = "None"
	}

	if kind == kindLongText {
		return fmt.Sprintf("**%s** changed from\n\n%s\n\nto\n\n%s",
			label, blockQuote(oldValue), blockQuote(newValue)), nil
	}

	return fmt.Sprintf("*%s changed from %s to %s*", label, oldValue, newValue), nil
}

// renderValue applies the per-kind value rule: code resolution for status,
// tracker, project and assignee, a percent suffix for done ratios, and a
// cross-reference marker for relation targets so the rewrite pass can pick
// them up later.
func (r *JournalRenderer) renderValue(kind propertyKind, raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	switch kind {
	case kindStatus:
		return resolveCode(raw, r.tables.Statuses, "status")
	case kindTracker:
		return resolveCode(raw, r.tables.Trackers, "tracker")
	case kindProject:
		return resolveCode(raw, r.tables.Projects, "project")
	case kindAssignee:
		// Historic users may be gone from the directory; keep the raw code
		// rather than failing the whole render.
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			if name, ok := r.tables.Users[id]; ok {
				return name, nil
			}
		}
		return raw, nil
	case kindDoneRatio:
		return raw + "%", nil
	case kindRelation:
		return "#" + raw, nil
	default:
		return strings.ReplaceAll(raw, "\r\n", "\n"), nil
	}
}

func classify(detail model.FieldChange) propertyKind {
	switch detail.Property {
	case "relation":
		return kindRelation
	case "cf":
		return kindCustomField
	}

	switch detail.Name {
	case "status_id":
		return kindStatus
	case "tracker_id":
		return kindTracker
	case "project_id":
		return kindProject
	case "assigned_to_id":
		return kindAssignee
	case "done_ratio":
		return kindDoneRatio
	case "subject", "description":
		return kindLongText
	}

	return kindGeneric
}

func displayName(kind propertyKind, detail model.FieldChange) string {
	switch kind {
	case kindRelation:
		if name, ok := relationNames[detail.Name]; ok {
			return name
		}
		return detail.Name
	case kindCustomField:
		return fmt.Sprintf("Custom field %s", detail.Name)
	}

	if name, ok := attrNames[detail.Name]; ok {
		return name
	}

	name := strings.ReplaceAll(strings.TrimSuffix(detail.Name, "_id"), "_", " ")
	if name == "" {
		return detail.Name
	}

	return strings.ToUpper(name[:1]) + name[1:]
}

// resolveCode maps a numeric journal code through its directory table.
// A code that cannot be resolved would render as a bare number, which reads
// as garbage in the migrated history, so it is an error.
func resolveCode(raw string, table map[int64]string, what string) (string, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Older journals occasionally carry the name already.
		return raw, nil
	}

	name, ok := table[id]
	if !ok {
		return "", errors.Errorf("no %s with code %d in the lookup table", what, id)
	}

	return name, nil
}

// blockQuote renders text as a Markdown quote, re-indenting embedded
// newlines as quote continuations.
func blockQuote(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}

	return strings.Join(lines, "\n")
}
