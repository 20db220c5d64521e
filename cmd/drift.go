package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"catalog-manager/core/config"
	"catalog-manager/core/database"
	"catalog-manager/core/logger"
	"catalog-manager/core/reconcile"
	"catalog-manager/feature/variants"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	driftProduct     string
	driftOptionsFile string
	driftCommit      bool
	driftDryRun      bool
	driftYes         bool
)

// driftCmd reports variant drift for one product and optionally commits it.
var driftCmd = &cobra.Command{
	Use:   "drift",
	Short: "Report variant drift for a product (and optionally commit it)",
	Long: `Compares every combination of a product's options with its existing variants.

Reports variants to create, variants to delete and unchanged variants.
Optionally commits the drift: creates missing variants and deletes obsolete ones.

Examples:
  # Report only
  drift --product 42

  # Report against an edited option set
  drift --product 42 --options-file options.json

  # Commit with interactive confirmation
  drift --product 42 --commit

  # Commit with auto-confirm (non-interactive)
  drift --product 42 --commit --yes`,
	RunE: runDrift,
}

func init() {
	driftCmd.Flags().StringVar(&driftProduct, "product", "", "Product ID")
	driftCmd.Flags().StringVar(&driftOptionsFile, "options-file", "", "JSON file with the option state to compare (defaults to stored options)")
	driftCmd.Flags().BoolVar(&driftCommit, "commit", false, "Create and delete variants to resolve the drift")
	driftCmd.Flags().BoolVar(&driftDryRun, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	driftCmd.Flags().BoolVar(&driftYes, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	_ = driftCmd.MarkFlagRequired("product")

	RootCmd.AddCommand(driftCmd)
}

func runDrift(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	var options []reconcile.Option
	if driftOptionsFile != "" {
		options, err = readOptionsFile(driftOptionsFile)
		if err != nil {
			return err
		}
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// One-shot runs always read fresh variants
	cfg.Variants.CacheTTLSeconds = 0
	svc, err := newVariantsService(ctx, cfg, db, nil, l)
	if err != nil {
		return err
	}

	l.Info("Computing variant drift", zap.String("product_id", driftProduct))

	if !driftCommit || driftDryRun {
		result, err := svc.Preview(ctx, driftProduct, options)
		if err != nil {
			return fmt.Errorf("failed to compute drift: %w", err)
		}
		printDriftReport(l, result.Summary, result.ToCreate, result.ToDelete)
		if driftDryRun {
			l.Info("Dry-run mode: No changes were made.")
		} else {
			l.Info("No actions requested. Use --commit to create and delete variants.")
		}
		return nil
	}

	view, err := svc.Drift(ctx, driftProduct, variants.DriftRequest{Options: options})
	if err != nil {
		return fmt.Errorf("failed to compute drift: %w", err)
	}

	printDriftReport(l, view.Summary, view.ToCreate, view.ToDelete)

	if len(view.ToCreate)+len(view.ToDelete) == 0 {
		l.Info("No actions required: variants match the options.")
		return nil
	}

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Committing drift...")
	outcome, err := svc.Commit(ctx, view.SessionID)
	if outcome == nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	l.Info("Commit finished",
		zap.Int("created", len(outcome.Created)),
		zap.Int("deleted", len(outcome.Deleted)),
		zap.Int("failed", len(outcome.Failures)),
		zap.String("report", outcome.ReportKey),
	)
	for _, f := range outcome.Failures {
		l.Error("Commit item failed",
			zap.String("op", string(f.Op)),
			zap.String("variant_id", f.VariantID),
			zap.String("title", f.Title),
			zap.String("error", f.Error),
		)
	}
	if err != nil {
		return fmt.Errorf("commit finished with %d failures: %w", len(outcome.Failures), err)
	}
	return nil
}

// readOptionsFile loads an option state exported by the editor.
func readOptionsFile(path string) ([]reconcile.Option, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	var options []reconcile.Option
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, fmt.Errorf("failed to parse options file %s: %w", path, err)
	}
	if options == nil {
		return nil, errors.New("options file must contain a JSON array")
	}
	return options, nil
}

// printDriftReport logs the drift summary and a sample of each set.
func printDriftReport(l *zap.Logger, s reconcile.DriftSummary, toCreate, toDelete []reconcile.Variant) {
	l.Info("Drift report",
		zap.Int("combinations", s.Combinations),
		zap.Int("existing", s.Existing),
		zap.Int("to_create", s.ToCreate),
		zap.Int("to_delete", s.ToDelete),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("malformed_pairs", s.MalformedPairs),
	)

	sample := func(label string, list []reconcile.Variant) {
		maxShow := 5
		if len(list) < maxShow {
			maxShow = len(list)
		}
		for _, v := range list[:maxShow] {
			l.Info("Sample "+label,
				zap.String("id", v.ID),
				zap.String("title", v.Title),
				zap.Int("prices", len(v.Prices)),
			)
		}
		if len(list) > maxShow {
			l.Info("Additional variants not shown", zap.String("set", label), zap.Int("count", len(list)-maxShow))
		}
	}
	sample("create", toCreate)
	sample("delete", toDelete)
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if driftYes {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm creating and deleting variants: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
