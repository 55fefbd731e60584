package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/glosskit/glossflow/internal/constants"
	"github.com/glosskit/glossflow/internal/dataset"
	"github.com/glosskit/glossflow/internal/directory"
	"github.com/glosskit/glossflow/internal/extract"
	"github.com/glosskit/glossflow/internal/model"
	"github.com/glosskit/glossflow/internal/output"
)

// NewCmdMaterialize creates the materialize command.
func NewCmdMaterialize(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Write an approved contribution into the dataset",
		Long: `Converts an approved contribution issue into a dataset record and
writes it to the local checkout. Existing entries are updated in place;
the dataset stays sorted and deduplicated.

With --check, no issue is read: the local dataset is verified for
duplicate entries and ordering violations instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaterialize(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Issue, "issue", "i", 0, "Issue number to materialize")
	cmd.Flags().StringVar(&opts.DatasetRoot, "dataset-root", "", "Local dataset checkout directory")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Verify dataset integrity instead of materializing")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Materialize even without the approved label")

	return cmd
}

func runMaterialize(cmd *cobra.Command, opts *Options) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	store := dataset.NewStore(cfg.GetDatasetRoot())

	if opts.Check {
		terms, err := store.LoadTerms()
		if err != nil {
			return err
		}
		findings := dataset.CheckIntegrity(terms)
		output.IntegrityFindings(os.Stdout, findings)
		if len(findings) > 0 {
			return fmt.Errorf("%d integrity finding(s)", len(findings))
		}
		return nil
	}

	if opts.Issue == 0 {
		return fmt.Errorf("--issue is required unless --check is given")
	}

	p, err := buildPipeline(ctx, opts)
	if err != nil {
		return err
	}

	issue, err := p.client.GetIssue(ctx, opts.Issue)
	if err != nil {
		return err
	}

	kind := model.KindFromLabels(issue.Labels)
	if kind == model.KindUnknown {
		return fmt.Errorf("issue #%d carries no contribution label", issue.Number)
	}

	fields, checked := extract.Extract(issue.Body)

	var gov *directory.GovernanceConfig
	if data, err := p.client.FileContent(ctx, cfg.GetGovernancePath()); err == nil && data != nil {
		gov, _ = directory.ParseGovernanceConfig(data)
	}

	contribution := &model.Contribution{
		ID:                issue.Number,
		Title:             issue.Title,
		RawBody:           issue.Body,
		Kind:              kind,
		Fields:            fields,
		CheckedAgreements: checked,
		Category:          gov.DomainFor(fields[extract.FieldCategory]),
		Labels:            issue.Labels,
	}

	if !opts.Force && !contribution.HasLabel(constants.LabelApproved) {
		return fmt.Errorf("issue #%d is not approved (use --force to override)", issue.Number)
	}

	now := time.Now().UTC()

	switch kind {
	case model.KindTermAddition, model.KindTermModification:
		terms, err := store.LoadTerms()
		if err != nil {
			return err
		}
		term := dataset.TermFromContribution(contribution,
			dataset.DiscussionURL(p.client.Owner(), p.client.Repo(), issue.Number), now)
		terms = dataset.UpsertTerm(terms, term, now)
		if err := store.SaveTerms(terms); err != nil {
			return err
		}
		fmt.Printf("Materialized term %q (%d terms total)\n", term.ID, len(terms))

	case model.KindContributorAddition:
		contributors, err := store.LoadContributors()
		if err != nil {
			return err
		}
		contributor := dataset.ContributorFromContribution(contribution, now)
		contributors = dataset.UpsertContributor(contributors, contributor)
		if err := store.SaveContributors(contributors); err != nil {
			return err
		}
		fmt.Printf("Materialized contributor %q\n", contributor.GithubUsername)

	case model.KindOrganizationAddition:
		orgs, err := store.LoadOrganizations()
		if err != nil {
			return err
		}
		org := dataset.OrganizationFromContribution(contribution)
		orgs = dataset.UpsertOrganization(orgs, org)
		if err := store.SaveOrganizations(orgs); err != nil {
			return err
		}
		fmt.Printf("Materialized organization %q\n", org.Name)

	default:
		return fmt.Errorf("unsupported contribution kind: %s", kind)
	}

	return nil
}
