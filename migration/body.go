// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package migration

import (
	"fmt"
	"strings"

	"github.com/redmig/redmig/model"
)

// composeIssueBody renders the target issue body: the original description,
// a metadata table pointing back at the source issue, and the non-empty
// custom fields. The layout is Markdown, which both trackers render.
func composeIssueBody(config *Config, issue *model.SourceIssue) string {
	description := strings.ReplaceAll(issue.Description, "\r\n", "\n")
	sourceURL := fmt.Sprintf("%s/issues/%d", strings.TrimSuffix(config.RedmineURL, "/"), issue.ID)

	assignedTo := "-"
	if issue.AssignedTo != nil {
		assignedTo = issue.AssignedTo.Name
	}

	category := "-"
	if issue.Category != nil {
		category = issue.Category.Name
	}

	var b strings.Builder
	b.WriteString("## Description\n")
	b.WriteString(description)
	b.WriteString("\n\n## Imported from Redmine\n")
	b.WriteString("| Property | Value |\n")
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(&b, "| ID | [%d](%s) |\n", issue.ID, sourceURL)
	fmt.Fprintf(&b, "| Priority | %s |\n", issue.Priority.Name)
	fmt.Fprintf(&b, "| Status | %s |\n", issue.Status.Name)
	fmt.Fprintf(&b, "| Issue type | %s |\n", issue.Tracker.Name)
	fmt.Fprintf(&b, "| Author | %s |\n", issue.Author.Name)
	fmt.Fprintf(&b, "| Assigned to | %s |\n", assignedTo)
	fmt.Fprintf(&b, "| Category | %s |\n", category)
	fmt.Fprintf(&b, "| Progress | %d%% |\n", issue.DoneRatio)

	customFields := issue.PresentCustomFields()
	if len(customFields) > 0 {
		b.WriteString("\n## Custom fields\n")
		b.WriteString("| Field | Value |\n")
		b.WriteString("| --- | --- |\n")
		for _, cf := range customFields {
			fmt.Fprintf(&b, "| %s | %s |\n", cf.Name, cf.Value)
		}
	}

	return b.String()
}
