// Copyright (c) 2022-present Redmig Authors. All Rights Reserved.
// See License.txt for license information.

package migration

import (
	"context"
	"sort"

	"github.com/mattermost/mattermost-server/v6/shared/mlog"
	"github.com/pkg/errors"

	"github.com/redmig/redmig/metrics"
	"github.com/redmig/redmig/model"
	"github.com/redmig/redmig/store"
)

// Migrator drives the two-phase migration. Phase one creates every target
// issue with its rendered journal comments and fills the identifier
// registry; phase two rewrites the deferred cross-references once the
// registry is complete. All shared state (registry, deferred references,
// label table) is owned here and passed down explicitly.
type Migrator struct {
	Config      *Config
	Source      SourceService
	GiteaClient *GiteaClient
	Registry    store.Registry
	Metrics     metrics.Provider

	translator *Translator
	deferred   []*model.DeferredReference
}

func New(config *Config, source SourceService, gitea *GiteaClient, registry store.Registry, metricsProvider metrics.Provider) *Migrator {
	return &Migrator{
		Config:      config,
		Source:      source,
		GiteaClient: gitea,
		Registry:    registry,
		Metrics:     metricsProvider,
		translator:  NewTranslator(config),
	}
}

// Run executes the whole migration. A fatal error before the phase barrier
// leaves the registry file as the authoritative record of partial progress;
// a later run resumes by skipping every already-registered issue.
func (m *Migrator) Run(ctx context.Context) error {
	if err := m.Registry.Load(); err != nil {
		return errors.Wrap(err, "unable to load identifier registry")
	}
	if prior := m.Registry.Len(); prior > 0 {
		mlog.Info("resuming from a previous run", mlog.Int("registered_mappings", prior))
	}

	tables, err := m.Source.FetchTables(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to fetch source lookup tables")
	}

	renderer, err := NewJournalRenderer(m.Config, m.translator, tables)
	if err != nil {
		return err
	}

	labelTable, err := m.fetchLabelTable(ctx)
	if err != nil {
		return err
	}

	issues, err := m.Source.ListIssues(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to list source issues")
	}

	mlog.Info("starting phase one", mlog.Int("issues", len(issues)))

	reconciler := NewReconciler(m.Config, m.GiteaClient.Issues, m.Metrics.IncreaseReconcileRetries)

	for _, issue := range issues {
		if err = ctx.Err(); err != nil {
			return err
		}

		if m.Registry.Has(issue.ID) {
			mlog.Debug("issue already migrated, skipping", mlog.Int64("issue", issue.ID))
			m.Metrics.IncreaseIssuesSkipped()
			continue
		}
		if issue.IsPrivate {
			mlog.Debug("issue is private, skipping", mlog.Int64("issue", issue.ID))
			m.Metrics.IncreaseIssuesSkipped()
			continue
		}

		full, fErr := m.Source.GetIssue(ctx, issue.ID)
		if fErr != nil {
			return fErr
		}

		if err = m.migrateIssue(ctx, full, labelTable, renderer, reconciler); err != nil {
			return errors.Wrapf(err, "unable to migrate issue %d", issue.ID)
		}
	}

	// Phase barrier: every issue and every comment exists and the registry
	// is closed before the first rewrite happens. Forward references are
	// only resolvable from here on.
	mlog.Info("starting phase two", mlog.Int("deferred_references", len(m.deferred)))

	totalTokens := 0
	for _, ref := range m.deferred {
		totalTokens += len(ref.Tokens)
	}

	rewriter := NewReferenceRewriter(m.Registry, m.GiteaClient.Issues, m.Config.RepoOwner, m.Config.RepoName)
	unresolved, err := rewriter.Rewrite(ctx, m.deferred)
	for i := 0; i < totalTokens-unresolved; i++ {
		m.Metrics.IncreaseReferencesRewritten()
	}
	for i := 0; i < unresolved; i++ {
		m.Metrics.IncreaseReferencesUnresolved()
	}
	m.deferred = nil
	if err != nil {
		return errors.Wrap(err, "unable to rewrite deferred references")
	}

	if unresolved > 0 {
		mlog.Warn("migration finished with unresolved references", mlog.Int("unresolved_tokens", unresolved))
	}
	mlog.Info("migration complete",
		mlog.Int("migrated_issues", m.Registry.Len()),
		mlog.Int("rewritten_tokens", totalTokens-unresolved))

	return nil
}

// migrateIssue walks one issue through Translated, Created, JournalApplied
// and Registered. Any error aborts the run; an issue is never silently
// dropped.
func (m *Migrator) migrateIssue(ctx context.Context, issue *model.SourceIssue, labelTable map[string]int64, renderer *JournalRenderer, reconciler *Reconciler) error {
	labelNames, err := m.translator.LabelsFor(issue.Tracker.Name, issue.Status.Name)
	if err != nil {
		return err
	}
	labelSpec, err := labelSpecFor(labelNames, labelTable)
	if err != nil {
		return err
	}

	req := &model.CreateIssueRequest{
		Title:  issue.Subject,
		Body:   composeIssueBody(m.Config, issue),
		Closed: m.translator.IsClosed(issue.Status.Name),
		Labels: labelSpec,
	}
	if issue.AssignedTo != nil {
		if username, _ := m.translator.Username(issue.AssignedTo.Name); username != "" {
			req.Assignee = username
		}
	}
	sudo, _ := m.translator.Username(issue.Author.Name)

	created, err := m.GiteaClient.Issues.Create(ctx, m.Config.RepoOwner, m.Config.RepoName, req, sudo)
	if err != nil && req.Assignee != "" && model.IsUnprocessable(err) {
		// The intended assignee does not exist on the target. Losing the
		// assignment beats losing the issue.
		mlog.Warn("assignee rejected by target, retrying without assignee",
			mlog.Int64("issue", issue.ID),
			mlog.String("assignee", req.Assignee))
		req.Assignee = ""
		created, err = m.GiteaClient.Issues.Create(ctx, m.Config.RepoOwner, m.Config.RepoName, req, sudo)
	}
	if err != nil {
		return errors.Wrap(err, "unable to create target issue")
	}

	mlog.Info("created issue",
		mlog.Int64("source", issue.ID),
		mlog.Int64("target", created.Number),
		mlog.String("subject", issue.Subject))

	if err = reconciler.EnsureLabels(ctx, created.Number, labelSpec, created.Labels); err != nil {
		return err
	}

	if err = m.Registry.Record(issue.ID, created.Number); err != nil {
		return err
	}
	if err = m.Registry.Persist(); err != nil {
		return err
	}

	m.capture(created.Number, 0, req.Body)

	events := append([]model.ChangeEvent(nil), issue.Journals...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].CreatedOn.Before(events[j].CreatedOn) })

	for i := range events {
		event := &events[i]

		rendered, rErr := renderer.Render(event)
		if rErr != nil {
			return errors.Wrapf(rErr, "unable to render journal %d", event.ID)
		}

		commentSudo, _ := m.translator.Username(event.User.Name)
		comment, cErr := m.GiteaClient.Issues.CreateComment(ctx, m.Config.RepoOwner, m.Config.RepoName,
			created.Number, &model.CreateCommentRequest{Body: rendered}, commentSudo)
		if cErr != nil {
			return errors.Wrapf(cErr, "unable to post journal %d as comment", event.ID)
		}

		m.Metrics.IncreaseCommentsPosted()
		m.capture(created.Number, comment.ID, rendered)
	}

	m.Metrics.IncreaseIssuesMigrated()

	return nil
}

// capture records posted text for the phase-two rewrite when it contains
// at least one issue reference.
func (m *Migrator) capture(issueIndex, commentID int64, text string) {
	tokens := ScanReferences(text)
	if len(tokens) == 0 {
		return
	}

	m.deferred = append(m.deferred, &model.DeferredReference{
		RepoOwner:  m.Config.RepoOwner,
		RepoName:   m.Config.RepoName,
		IssueIndex: issueIndex,
		CommentID:  commentID,
		Text:       text,
		Tokens:     tokens,
	})
}

func (m *Migrator) fetchLabelTable(ctx context.Context) (map[string]int64, error) {
	labels, err := m.GiteaClient.Labels.ListLabels(ctx, m.Config.RepoOwner, m.Config.RepoName)
	if err != nil {
		return nil, errors.Wrap(err, "unable to list target repository labels")
	}

	table := make(map[string]int64, len(labels))
	for _, label := range labels {
		table[label.Name] = label.ID
	}

	return table, nil
}

// labelSpecFor translates label names into the ordered, de-duplicated ID set
// the issue is created with. A name the repository does not carry is a
// configuration error and stops the run.
func labelSpecFor(names []string, table map[string]int64) ([]int64, error) {
	seen := make(map[int64]bool, len(names))
	spec := make([]int64, 0, len(names))

	for _, name := range names {
		id, ok := table[name]
		if !ok {
			return nil, errors.Errorf("target repository has no label named %q", name)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		spec = append(spec, id)
	}

	return spec, nil
}
