package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/tdalbo/wowvault/internal/backup"
	"github.com/tdalbo/wowvault/internal/cli"
	apperrors "github.com/tdalbo/wowvault/internal/errors"
	"github.com/tdalbo/wowvault/internal/logging"
	"github.com/tdalbo/wowvault/internal/paths"
	"github.com/tdalbo/wowvault/internal/wow"
)

// maxRenderedErrors caps how many failed files are printed before the
// rest collapse into a count.
const maxRenderedErrors = 5

var (
	createPathFlag    string
	createAccountFlag string
	createAddons      []string
	createInteractive bool
	createOnConflict  string
	createDestination string
	createSaveProfile bool
)

func init() {
	backupCreateCmd.Flags().StringVar(&createPathFlag, "path", "", "Installation path (default: scan)")
	backupCreateCmd.Flags().StringVar(&createAccountFlag, "account", "", "Account name (default: the only account)")
	backupCreateCmd.Flags().StringSliceVar(&createAddons, "addons", nil, "Addons to back up (default: all)")
	backupCreateCmd.Flags().BoolVarP(&createInteractive, "interactive", "i", false, "Select addons interactively")
	backupCreateCmd.Flags().StringVar(&createOnConflict, "on-conflict", "", "Conflict strategy: overwrite, skip, backup, prompt")
	backupCreateCmd.Flags().StringVar(&createDestination, "destination", "", "Backup destination (default: from config)")
	backupCreateCmd.Flags().BoolVar(&createSaveProfile, "save-profile", false, "Save the selection as a named profile")
	backupCmd.AddCommand(backupCreateCmd)
}

var backupCreateCmd = &cobra.Command{
	Use:   "create [profile]",
	Short: "Create a verified backup",
	Long: `Create a backup of addon SavedVariables files under the given
profile name ("default" when omitted).

If a saved profile with that name exists, its addon selection is used
unless --addons or --interactive overrides it. Every copied file is
verified against its source hashes; the backup only reports success
when the destination provably holds the same bytes as the source.`,
	Example: `  # Back up all addons under the profile name "raid"
  wowvault backup create raid

  # Back up a subset
  wowvault backup create raid --addons Details,DeadlyBossMods

  # Pick addons interactively and save the selection
  wowvault backup create raid --interactive --save-profile

  # Keep existing destination files
  wowvault backup create raid --on-conflict skip`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackupCreate,
}

func runBackupCreate(c *cobra.Command, args []string) error {
	return runBackupCreateWithWriter(c, args, os.Stdout)
}

func runBackupCreateWithWriter(c *cobra.Command, args []string, w io.Writer) error {
	profileName := "default"
	if len(args) > 0 {
		profileName = args[0]
	}

	sc := newScanner(c)
	inst, err := cli.ResolveInstallation(sc, createPathFlag)
	if err != nil {
		return err
	}
	account, err := cli.ResolveAccount(sc, inst, createAccountFlag)
	if err != nil {
		return err
	}

	files, err := sc.AddonFiles(inst, account)
	if err != nil {
		return err
	}
	if files.Len() == 0 {
		return apperrors.NewUserError(errors.New("no addon files to back up"),
			"Run 'wowvault addons' to see what was scanned")
	}

	store := wow.NewProfileStore(paths.ProfilesDir())
	selection, err := selectAddons(files, store, profileName)
	if err != nil {
		return err
	}
	files, err = cli.FilterAddons(files, selection)
	if err != nil {
		return err
	}

	profile := &wow.Profile{
		Name:         profileName,
		Addons:       files.Names(),
		Installation: inst,
		AccountName:  account,
	}

	mgr, err := newBackupManager(c, profile)
	if err != nil {
		return err
	}

	res, err := mgr.CreateBackup(c.Context(), profile, files)
	if err != nil {
		if errors.Is(err, backup.ErrSessionActive) {
			return apperrors.NewUserError(err, "Wait for the running backup to finish")
		}
		var spaceErr *backup.InsufficientSpaceError
		if errors.As(err, &spaceErr) {
			return apperrors.NewSystemError(err, "Free up space at the destination or change backup.destination")
		}
		return apperrors.NewSystemError(err, "Check permissions on the backup destination")
	}

	renderResult(w, res)

	if createSaveProfile {
		if err := store.Save(profile); err != nil {
			return apperrors.NewSystemError(err, "Check permissions on the data directory")
		}
		fmt.Fprintf(w, "\nSaved profile %q\n", profileName)
	}

	if !res.Success {
		return apperrors.NewExitError(errors.New("backup completed with errors"), apperrors.ExitSystem)
	}
	return nil
}

// selectAddons decides which addons to back up: interactive selection,
// the --addons flag, a saved profile's selection, or everything.
func selectAddons(files *wow.AddonFileMap, store *wow.ProfileStore, profileName string) ([]string, error) {
	if createInteractive {
		return pickAddons(files)
	}
	if len(createAddons) > 0 {
		return createAddons, nil
	}
	if saved, err := store.Load(profileName); err == nil && len(saved.Addons) > 0 {
		return saved.Addons, nil
	}
	return nil, nil
}

// pickAddons runs the fuzzy multi-select over scanned addons.
func pickAddons(files *wow.AddonFileMap) ([]string, error) {
	names := files.Names()

	idxs, err := fuzzyfinder.FindMulti(
		names,
		func(i int) string {
			return fmt.Sprintf("%s (%d files)", names[i], len(files.Files(names[i])))
		},
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, apperrors.NewUserError(errors.New("selection aborted"), "")
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	selected := make([]string, len(idxs))
	for i, idx := range idxs {
		selected[i] = names[idx]
	}
	return selected, nil
}

// newBackupManager assembles the engine from config and flags.
func newBackupManager(c *cobra.Command, profile *wow.Profile) (*backup.Manager, error) {
	strategy := cfg.Conflict.Strategy
	if createOnConflict != "" {
		strategy = createOnConflict
	}
	policy, err := backup.ParsePolicy(strategy)
	if err != nil {
		return nil, apperrors.NewUserError(err, "Valid strategies: overwrite, skip, backup, prompt")
	}

	destination := cfg.Backup.Destination
	if createDestination != "" {
		destination = createDestination
	}

	opts := []backup.Option{
		backup.WithConflictPolicy(policy),
		backup.WithBackupSuffix(cfg.Conflict.BackupSuffix),
		backup.WithTimestampFolder(cfg.Backup.TimestampFolder),
		backup.WithValidation(cfg.Backup.ValidateIntegrity),
		backup.WithMetadata(cfg.Backup.WriteMetadata),
		backup.WithLogger(logging.FromContext(c.Context())),
	}
	if policy == backup.PolicyPrompt {
		opts = append(opts, backup.WithDecisionFunc(promptDecision(c)))
	}

	return backup.NewManager(destination, opts...), nil
}

// promptDecision asks the user on stderr how to handle one collision.
// Reads fall back to skip on EOF, matching the non-interactive default.
func promptDecision(c *cobra.Command) backup.DecisionFunc {
	reader := bufio.NewReader(c.InOrStdin())
	return func(source, dest string) (backup.Decision, error) {
		for {
			fmt.Fprintf(c.ErrOrStderr(), "%s exists. [o]verwrite, [s]kip, [b]ackup, [c]ancel addon? ", dest)
			line, err := reader.ReadString('\n')
			if err != nil {
				return backup.DecisionSkip, nil
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "o", "overwrite":
				return backup.DecisionOverwrite, nil
			case "s", "skip", "":
				return backup.DecisionSkip, nil
			case "b", "backup":
				return backup.DecisionBackup, nil
			case "c", "cancel":
				return backup.DecisionCancel, nil
			}
		}
	}
}

// renderResult prints the outcome of one backup run.
func renderResult(w io.Writer, res *backup.Result) {
	if res.Success {
		fmt.Fprintf(w, "%sBackup complete%s\n", colorGreen+colorBold, colorReset)
	} else {
		fmt.Fprintf(w, "%sBackup completed with errors%s\n", colorRed+colorBold, colorReset)
	}

	fmt.Fprintf(w, "  location: %s\n", res.BackupDir)
	fmt.Fprintf(w, "  copied:   %d (%s)\n", len(res.Copied), formatSize(res.TotalSize))
	if len(res.Skipped) > 0 {
		fmt.Fprintf(w, "  skipped:  %d\n", len(res.Skipped))
	}
	fmt.Fprintf(w, "  duration: %s\n", res.Duration().Round(time.Millisecond))

	renderFileErrors(w, res.Failed)
	renderValidationErrors(w, res.ValidationErrors)
}

func renderFileErrors(w io.Writer, failed []backup.FileError) {
	if len(failed) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%sFailed files:%s\n", colorRed, colorReset)
	for i, f := range failed {
		if i == maxRenderedErrors {
			fmt.Fprintf(w, "  %s+%d more%s\n", colorGray, len(failed)-maxRenderedErrors, colorReset)
			break
		}
		fmt.Fprintf(w, "  %s: %s\n", f.Path, f.Reason)
	}
}

func renderValidationErrors(w io.Writer, errs []backup.ValidationError) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%sValidation errors:%s\n", colorRed, colorReset)
	for i, v := range errs {
		if i == maxRenderedErrors {
			fmt.Fprintf(w, "  %s+%d more%s\n", colorGray, len(errs)-maxRenderedErrors, colorReset)
			break
		}
		fmt.Fprintf(w, "  %s: %s\n", v.Dest, v.Reason)
	}
}
