package workflow

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/glosskit/glossflow/internal/approval"
	"github.com/glosskit/glossflow/internal/assign"
	"github.com/glosskit/glossflow/internal/constants"
	"github.com/glosskit/glossflow/internal/dataset"
	"github.com/glosskit/glossflow/internal/directory"
	"github.com/glosskit/glossflow/internal/extract"
	"github.com/glosskit/glossflow/internal/ghclient"
	"github.com/glosskit/glossflow/internal/log"
	"github.com/glosskit/glossflow/internal/model"
	"github.com/glosskit/glossflow/internal/validate"
)

// Orchestrator drives the contribution state machine for one repository.
type Orchestrator struct {
	platform  Platform
	matcher   *assign.Matcher
	overrides RuleOverrides

	governancePath string
}

// RuleOverrides are operator-level routing overrides layered on top of the
// repository governance config. Zero values leave the governed rule intact.
type RuleOverrides struct {
	MinApprovals int
	MaxAssignees int
	Strategy     directory.SelectionStrategy
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRuleOverrides applies operator-level routing overrides.
func WithRuleOverrides(overrides RuleOverrides) Option {
	return func(o *Orchestrator) {
		o.overrides = overrides
	}
}

// WithGovernancePath overrides the in-repo path of the governance config.
func WithGovernancePath(path string) Option {
	return func(o *Orchestrator) {
		if path != "" {
			o.governancePath = path
		}
	}
}

// New creates an Orchestrator.
func New(platform Platform, matcher *assign.Matcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		platform:       platform,
		matcher:        matcher,
		governancePath: constants.GovernanceConfigPath,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ruleFor resolves the governed routing rule for a category, then applies
// operator overrides.
func (o *Orchestrator) ruleFor(gov *directory.GovernanceConfig, category string) directory.RoutingRule {
	rule := gov.RuleFor(category)
	if o.overrides.MinApprovals > 0 {
		rule.MinApprovals = o.overrides.MinApprovals
	}
	if o.overrides.MaxAssignees > 0 {
		rule.MaxAssignees = o.overrides.MaxAssignees
	}
	if o.overrides.Strategy != "" {
		rule.Strategy = o.overrides.Strategy
	}
	return rule
}

// successLabels are applied together when validation passes. They are added
// before failure labels are removed so a crash mid-run leaves a resumable,
// recognizable state.
var successLabels = []string{
	constants.LabelAutoValidated,
	constants.LabelReadyForReview,
}

// allFailureLabels is the complete set cleared on a successful validation.
var allFailureLabels = []string{
	constants.LabelNeedsMoreInfo,
	constants.LabelIncomplete,
	constants.LabelInvalidFormat,
	constants.LabelNeedsImprovement,
	constants.LabelDuplicateFound,
}

// HandleCreated runs the full pipeline for a newly opened submission.
func (o *Orchestrator) HandleCreated(ctx context.Context, ev model.ContributionCreated) error {
	return o.processSubmission(ctx, ev.ID, true)
}

// HandleEdited re-runs the full pipeline after a submission edit.
func (o *Orchestrator) HandleEdited(ctx context.Context, ev model.ContributionEdited) error {
	return o.processSubmission(ctx, ev.ID, false)
}

// Label runs only the extraction and labeling stage for one issue.
func (o *Orchestrator) Label(ctx context.Context, number int) error {
	issue, err := o.platform.GetIssue(ctx, number)
	if err != nil {
		return err
	}
	_, err = o.labelSubmission(ctx, issue)
	return err
}

// Validate runs labeling and validation without touching assignment.
// The returned result is nil when the issue is not a contribution.
func (o *Orchestrator) Validate(ctx context.Context, number int) (*validate.Result, error) {
	issue, err := o.platform.GetIssue(ctx, number)
	if err != nil {
		return nil, err
	}

	contribution, err := o.labelSubmission(ctx, issue)
	if err != nil {
		return nil, err
	}
	if contribution.Kind == model.KindUnknown {
		log.Info("not a glossary contribution, skipping validation", "issue", number)
		return nil, nil
	}

	gov, snapshot, comments, err := o.loadRunInputs(ctx, number)
	if err != nil {
		return nil, err
	}
	contribution.Category = gov.DomainFor(contribution.Field(extract.FieldCategory))

	result := validate.Validate(contribution.Kind, contribution.Fields, contribution.CheckedAgreements, snapshot)
	if !result.Eligible() {
		return &result, o.reportValidationFailure(ctx, contribution, comments, result)
	}
	return &result, o.markValidated(ctx, contribution, comments, result)
}

// Assign runs reviewer assignment for an already-validated issue and
// returns the selected logins with the directory they came from.
func (o *Orchestrator) Assign(ctx context.Context, number int) ([]string, directory.Directory, error) {
	issue, err := o.platform.GetIssue(ctx, number)
	if err != nil {
		return nil, nil, err
	}

	kind := model.KindFromLabels(issue.Labels)
	if kind == model.KindUnknown {
		return nil, nil, fmt.Errorf("issue #%d carries no contribution label", number)
	}

	fields, _ := extract.Extract(issue.Body)
	contribution := &model.Contribution{
		ID:     issue.Number,
		Kind:   kind,
		Fields: fields,
		Labels: issue.Labels,
	}
	if !contribution.HasLabel(constants.LabelReadyForReview) {
		return nil, nil, fmt.Errorf("issue #%d is not ready for review", number)
	}

	gov, _, comments, err := o.loadRunInputs(ctx, number)
	if err != nil {
		return nil, nil, err
	}
	contribution.Category = gov.DomainFor(contribution.Field(extract.FieldCategory))

	return o.assignReviewers(ctx, contribution, gov, comments)
}

// processSubmission executes label → validate → assign for one issue,
// re-deriving everything from current platform state.
func (o *Orchestrator) processSubmission(ctx context.Context, number int, isNew bool) error {
	issue, err := o.platform.GetIssue(ctx, number)
	if err != nil {
		return err
	}

	contribution, err := o.labelSubmission(ctx, issue)
	if err != nil {
		return err
	}
	if contribution.Kind == model.KindUnknown {
		log.Info("not a glossary contribution, skipping pipeline", "issue", number)
		return nil
	}

	gov, snapshot, comments, err := o.loadRunInputs(ctx, number)
	if err != nil {
		return err
	}

	if isNew && contribution.Kind == model.KindTermAddition {
		if err := o.postOnce(ctx, number, comments, commentWelcome, "", welcomeComment()); err != nil {
			return err
		}
	}

	contribution.Category = gov.DomainFor(contribution.Field(extract.FieldCategory))

	result := validate.Validate(contribution.Kind, contribution.Fields, contribution.CheckedAgreements, snapshot)
	if !result.Eligible() {
		return o.reportValidationFailure(ctx, contribution, comments, result)
	}

	if err := o.markValidated(ctx, contribution, comments, result); err != nil {
		return err
	}

	// Reviewer assignment happens only on the transition into
	// ready-for-review; later edits of an already-reviewed issue must not
	// reshuffle assignees.
	if contribution.HasLabel(constants.LabelReadyForReview) {
		return nil
	}
	_, _, err = o.assignReviewers(ctx, contribution, gov, comments)
	return err
}

// labelSubmission extracts fields, detects the contribution kind and
// replaces type labels idempotently. Unrecognized submissions get a single
// fallback label.
func (o *Orchestrator) labelSubmission(ctx context.Context, issue *ghclient.IssueState) (*model.Contribution, error) {
	fields, checked := extract.Extract(issue.Body)

	kind := model.KindFromLabels(issue.Labels)
	if kind == model.KindUnknown {
		kind = extract.DetectKind(issue.Title, issue.Body)
	}

	contribution := &model.Contribution{
		ID:                issue.Number,
		Title:             issue.Title,
		RawBody:           issue.Body,
		Kind:              kind,
		Fields:            fields,
		CheckedAgreements: checked,
		Labels:            issue.Labels,
	}

	if kind == model.KindUnknown {
		fallback := extract.FallbackLabel(issue.Title, issue.Body)
		if !contribution.HasLabel(fallback) {
			if err := o.platform.AddLabels(ctx, issue.Number, []string{fallback}); err != nil {
				return nil, err
			}
		}
		return contribution, nil
	}

	add := []string{kind.Label(), kind.TypeLabel()}

	var remove []string
	for _, other := range []model.Kind{
		model.KindTermAddition,
		model.KindTermModification,
		model.KindContributorAddition,
		model.KindOrganizationAddition,
	} {
		if other == kind {
			continue
		}
		for _, stale := range []string{other.Label(), other.TypeLabel()} {
			if contribution.HasLabel(stale) {
				remove = append(remove, stale)
			}
		}
	}

	if err := o.applyLabels(ctx, issue.Number, add, remove); err != nil {
		return nil, err
	}
	log.Info("submission labeled", "issue", issue.Number, "kind", kind)
	return contribution, nil
}

// loadRunInputs fetches the governance config, the term dataset snapshot
// and the comment history in parallel. A missing or unparsable governance
// config degrades to an empty one; a corrupt dataset is fatal because the
// duplicate check cannot run safely without it.
func (o *Orchestrator) loadRunInputs(ctx context.Context, number int) (*directory.GovernanceConfig, []model.Term, []model.Comment, error) {
	var (
		gov      *directory.GovernanceConfig
		snapshot []model.Term
		comments []model.Comment
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := o.platform.FileContent(gctx, o.governancePath)
		if err != nil {
			return err
		}
		if data == nil {
			log.Warn("governance config not found, using defaults")
			gov = &directory.GovernanceConfig{}
			return nil
		}
		parsed, err := directory.ParseGovernanceConfig(data)
		if err != nil {
			log.Warn("governance config unparsable, using defaults", "error", err)
			gov = &directory.GovernanceConfig{}
			return nil
		}
		gov = parsed
		return nil
	})

	g.Go(func() error {
		data, err := o.platform.FileContent(gctx, constants.TermsDatasetPath)
		if err != nil {
			return err
		}
		if data == nil {
			return nil
		}
		terms, err := dataset.DecodeTerms(data)
		if err != nil {
			return fmt.Errorf("term dataset snapshot: %w", err)
		}
		snapshot = terms
		return nil
	})

	g.Go(func() error {
		var err error
		comments, err = o.platform.ListComments(gctx, number)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return gov, snapshot, comments, nil
}

// reportValidationFailure applies the failure labels and posts one
// consolidated comment covering every finding.
func (o *Orchestrator) reportValidationFailure(ctx context.Context, c *model.Contribution, comments []model.Comment, result validate.Result) error {
	fp := validationFingerprint(result)
	if err := o.postOnce(ctx, c.ID, comments, commentValidationFailed, fp, validationFailureComment(result)); err != nil {
		return err
	}

	add := []string{constants.LabelNeedsMoreInfo}
	if result.Duplicate != nil {
		add = append(add, constants.LabelDuplicateFound)
	}
	if len(result.MissingFields) > 0 || len(result.MissingAgreements) > 0 {
		add = append(add, constants.LabelIncomplete)
	}
	if len(result.FormatErrors) > 0 {
		add = append(add, constants.LabelInvalidFormat)
	}
	if len(result.QualityIssues) > 0 {
		add = append(add, constants.LabelNeedsImprovement)
	}

	if err := o.applyLabels(ctx, c.ID, add, successLabels); err != nil {
		return err
	}
	log.Info("validation failed", "issue", c.ID,
		"missing", len(result.MissingFields),
		"format", len(result.FormatErrors),
		"agreements", len(result.MissingAgreements),
		"duplicate", result.Duplicate != nil)
	return nil
}

// markValidated flips the issue into ready-for-review and posts the success
// comment plus optional quality suggestions.
func (o *Orchestrator) markValidated(ctx context.Context, c *model.Contribution, comments []model.Comment, result validate.Result) error {
	if err := o.applyLabels(ctx, c.ID, successLabels, allFailureLabels); err != nil {
		return err
	}

	if len(result.QualityIssues) > 0 {
		fp := fingerprint(result.QualityIssues...)
		if err := o.postOnce(ctx, c.ID, comments, commentSuggestions, fp, suggestionsComment(result.QualityIssues)); err != nil {
			return err
		}
	}

	if err := o.postOnce(ctx, c.ID, comments, commentValidationOK, "", validationSuccessComment()); err != nil {
		return err
	}
	log.Info("validation passed", "issue", c.ID, "suggestions", len(result.QualityIssues))
	return nil
}

// assignReviewers resolves the directory, selects reviewers and requests
// review. An empty directory is an operator-facing failure; an empty
// selection is reported distinctly and leaves the contribution valid.
func (o *Orchestrator) assignReviewers(ctx context.Context, c *model.Contribution, gov *directory.GovernanceConfig, comments []model.Comment) ([]string, directory.Directory, error) {
	dir, err := o.resolveDirectory(ctx, gov)
	if err != nil {
		return nil, nil, err
	}

	rule := o.ruleFor(gov, c.Kind.Label())
	assignees := o.matcher.Select(c.Category, dir, rule)
	if len(assignees) == 0 {
		log.Warn("no eligible reviewer for contribution", "issue", c.ID, "category", c.Kind.Label(), "domain", c.Category)
		return nil, dir, fmt.Errorf("issue #%d: %w", c.ID, ErrNoEligibleReviewers)
	}

	if err := o.platform.AddAssignees(ctx, c.ID, assignees); err != nil {
		return nil, dir, err
	}

	fp := fingerprint(assignees...)
	if err := o.postOnce(ctx, c.ID, comments, commentAssignment, fp, assignmentComment(assignees, dir, rule, c.Category)); err != nil {
		return nil, dir, err
	}
	return assignees, dir, nil
}

// resolveDirectory loads the reviewer roster from the governance config,
// falling back to platform-granted permissions. Both sources empty means
// the run fails loudly; an empty roster must never read as "approved".
func (o *Orchestrator) resolveDirectory(ctx context.Context, gov *directory.GovernanceConfig) (directory.Directory, error) {
	dir := gov.Directory()
	if len(dir) > 0 {
		return dir, nil
	}

	permissions, err := o.platform.CollaboratorPermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	dir = directory.FromPermissions(permissions)
	if len(dir) == 0 {
		return nil, ErrDirectoryUnavailable
	}
	return dir, nil
}

// mergeTriggerPayload is the repository dispatch payload for downstream
// materialization.
type mergeTriggerPayload struct {
	IssueNumber int    `json:"issue_number"`
	Trigger     string `json:"trigger"`
}

// HandleComment re-evaluates approval state after a comment event. The full
// comment history is aggregated from scratch every time so duplicate or
// out-of-order delivery cannot skew the tally.
func (o *Orchestrator) HandleComment(ctx context.Context, ev model.CommentPosted) error {
	// Only vote-shaped comments can change approval state.
	if !approval.IsApproval(ev.Body) && !approval.IsRejection(ev.Body) {
		log.Debug("comment is not a vote, ignoring", "issue", ev.ContributionID)
		return nil
	}
	_, _, err := o.EvaluateApproval(ctx, ev.ContributionID)
	return err
}

// EvaluateApproval recomputes the approval tally for one issue and applies
// the resulting state transition. The returned tally is nil when the issue
// is not a contribution.
func (o *Orchestrator) EvaluateApproval(ctx context.Context, number int) (*approval.Tally, directory.RoutingRule, error) {
	var rule directory.RoutingRule

	issue, err := o.platform.GetIssue(ctx, number)
	if err != nil {
		return nil, rule, err
	}

	kind := model.KindFromLabels(issue.Labels)
	if kind == model.KindUnknown {
		log.Debug("comment on non-contribution issue, ignoring", "issue", issue.Number)
		return nil, rule, nil
	}

	gov, _, comments, err := o.loadRunInputs(ctx, issue.Number)
	if err != nil {
		return nil, rule, err
	}

	dir, err := o.resolveDirectory(ctx, gov)
	if err != nil {
		return nil, rule, err
	}

	fields, _ := extract.Extract(issue.Body)
	domain := gov.DomainFor(fields[extract.FieldCategory])
	rule = o.ruleFor(gov, kind.Label())

	tally := approval.Aggregate(comments, dir, rule, domain)

	contribution := &model.Contribution{ID: issue.Number, Labels: issue.Labels}

	switch {
	case tally.QuorumMet:
		return &tally, rule, o.completeApproval(ctx, contribution, comments, tally, rule)
	case len(tally.Rejections) > 0:
		return &tally, rule, o.recordRejection(ctx, contribution, comments, tally)
	default:
		fp := fingerprint(fmt.Sprintf("%d/%d", len(tally.Approvals), rule.MinApprovals))
		return &tally, rule, o.postOnce(ctx, contribution.ID, comments, commentPending, fp, pendingComment(tally, rule))
	}
}

// completeApproval flips the issue to approved and emits the merge trigger.
// The dispatch fires only on the transition; an issue already carrying the
// approved label emits nothing on re-delivery.
func (o *Orchestrator) completeApproval(ctx context.Context, c *model.Contribution, comments []model.Comment, tally approval.Tally, rule directory.RoutingRule) error {
	alreadyApproved := c.HasLabel(constants.LabelApproved)

	fp := fingerprint(approvalVoteKey(tally))
	if err := o.postOnce(ctx, c.ID, comments, commentApproved, fp, approvalCompleteComment(tally, rule)); err != nil {
		return err
	}

	remove := []string{constants.LabelNeedsChanges, constants.LabelReadyForReview}
	if err := o.applyLabels(ctx, c.ID, []string{constants.LabelApproved}, remove); err != nil {
		return err
	}

	if alreadyApproved {
		return nil
	}
	log.Info("quorum reached", "issue", c.ID, "approvals", len(tally.Approvals))
	return o.platform.Dispatch(ctx, constants.MergeDispatchEventType, mergeTriggerPayload{
		IssueNumber: c.ID,
		Trigger:     "admin_approval",
	})
}

// recordRejection moves the contribution back into the revision cycle.
func (o *Orchestrator) recordRejection(ctx context.Context, c *model.Contribution, comments []model.Comment, tally approval.Tally) error {
	fp := fingerprint(approvalVoteKey(tally))
	if err := o.postOnce(ctx, c.ID, comments, commentRejected, fp, rejectionComment(tally)); err != nil {
		return err
	}

	remove := []string{constants.LabelApproved}
	if err := o.applyLabels(ctx, c.ID, []string{constants.LabelNeedsChanges}, remove); err != nil {
		return err
	}
	log.Info("contribution rejected", "issue", c.ID, "rejections", len(tally.Rejections))
	return nil
}

// approvalVoteKey folds the counted voters into a stable fingerprint input.
func approvalVoteKey(tally approval.Tally) string {
	parts := make([]string, 0, len(tally.Approvals)+len(tally.Rejections))
	for _, v := range tally.Approvals {
		parts = append(parts, "+"+v.Login)
	}
	for _, v := range tally.Rejections {
		parts = append(parts, "-"+v.Login)
	}
	return strings.Join(parts, ",")
}

// applyLabels adds before removing so an interrupted run leaves a
// recognizable superset state rather than a label-less issue.
func (o *Orchestrator) applyLabels(ctx context.Context, number int, add, remove []string) error {
	if err := o.platform.AddLabels(ctx, number, add); err != nil {
		return err
	}
	for _, label := range remove {
		if err := o.platform.RemoveLabel(ctx, number, label); err != nil {
			return err
		}
	}
	return nil
}

// postOnce posts a marker-stamped comment unless one with the same marker
// already exists. Suppression is a correctness requirement: repeated runs
// over unchanged state must not spam the submitter.
func (o *Orchestrator) postOnce(ctx context.Context, number int, comments []model.Comment, kind, fp string, body string) error {
	if fp == "" {
		fp = fingerprint(kind)
	}
	if alreadyPosted(comments, kind, fp) {
		log.Debug("comment already posted, suppressing", "issue", number, "kind", kind)
		return nil
	}
	return o.platform.AddComment(ctx, number, body+"\n"+marker(kind, fp))
}

// validationFingerprint folds every blocking finding into one fingerprint.
func validationFingerprint(result validate.Result) string {
	var parts []string
	parts = append(parts, result.MissingFields...)
	parts = append(parts, result.FormatErrors...)
	parts = append(parts, result.MissingAgreements...)
	if result.Duplicate != nil {
		parts = append(parts, result.Duplicate.Message)
	}
	return fingerprint(parts...)
}
