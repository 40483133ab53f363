package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/antoine/hireme/internal/store"
)

var dbCommand = &cobra.Command{
	Use:   "db",
	Short: "Inspect and update the offers index",
}

var dbListCommand = &cobra.Command{
	Use:   "list",
	Short: "List discovered job offers",
	RunE:  runDBListCmd,
}

var dbShowCommand = &cobra.Command{
	Use:   "show <offer-key>",
	Short: "Show one offer with its generated resumes",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBShowCmd,
}

var dbSearchCommand = &cobra.Command{
	Use:   "search <query>",
	Short: "Search offers by title or company",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBSearchCmd,
}

var dbArchiveCommand = &cobra.Command{
	Use:   "archive <offer-key>",
	Short: "Archive an offer so it no longer appears in listings",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBArchiveCmd,
}

var dbResumesCommand = &cobra.Command{
	Use:   "resumes <offer-key>",
	Short: "List resumes generated for an offer",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBResumesCmd,
}

var dbSelectCommand = &cobra.Command{
	Use:   "select <resume-id>",
	Short: "Mark a generated resume as the version to apply with",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBSelectCmd,
}

var dbApplyCommand = &cobra.Command{
	Use:   "apply <offer-key> <status>",
	Short: "Update an offer's application status",
	Long: `Moves the application for an offer to a new status. Valid statuses:
not_applied, resume_generated, applied, interview_scheduled, interviewed,
offer_received, accepted, rejected, withdrawn.`,
	Args: cobra.ExactArgs(2),
	RunE: runDBApplyCmd,
}

var dbApplicationsCommand = &cobra.Command{
	Use:   "applications",
	Short: "List tracked applications",
	RunE:  runDBApplicationsCmd,
}

var dbStatsCommand = &cobra.Command{
	Use:   "stats",
	Short: "Show job search statistics",
	RunE:  runDBStatsCmd,
}

var (
	dbConfigPath    string
	dbOnlyProcessed bool
	dbApplyNotes    string
	dbStatusFilter  string
)

func init() {
	dbCommand.PersistentFlags().StringVar(&dbConfigPath, "config", "", "Path to config.json file")
	dbListCommand.Flags().BoolVar(&dbOnlyProcessed, "processed", false, "Only show offers with completed extraction")
	dbApplyCommand.Flags().StringVar(&dbApplyNotes, "notes", "", "Notes to attach to the application")
	dbApplicationsCommand.Flags().StringVar(&dbStatusFilter, "status", "", "Only show applications with this status")

	dbCommand.AddCommand(dbListCommand, dbShowCommand, dbSearchCommand, dbArchiveCommand,
		dbResumesCommand, dbSelectCommand, dbApplyCommand, dbApplicationsCommand, dbStatsCommand)
	rootCmd.AddCommand(dbCommand)
}

func openDB() (*store.DB, error) {
	cfg, err := resolveConfig(dbConfigPath)
	if err != nil {
		return nil, err
	}
	return store.OpenDB(cfg.DBPath)
}

func runDBListCmd(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	offers, err := db.ListOffers(context.Background(), dbOnlyProcessed)
	if err != nil {
		return err
	}
	if len(offers) == 0 {
		fmt.Println("No offers found. Run 'hireme find <query>' first.")
		return nil
	}
	return printOffers(offers)
}

func runDBSearchCmd(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	offers, err := db.SearchOffers(context.Background(), args[0])
	if err != nil {
		return err
	}
	if len(offers) == 0 {
		fmt.Printf("No offers match %q.\n", args[0])
		return nil
	}
	return printOffers(offers)
}

func runDBShowCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	offer, err := db.GetOffer(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Key:        %s\n", offer.Key)
	fmt.Printf("Title:      %s\n", offer.Title)
	fmt.Printf("Company:    %s\n", offer.Company)
	fmt.Printf("Location:   %s\n", offer.Location)
	fmt.Printf("Source:     %s\n", offer.Source)
	fmt.Printf("URL:        %s\n", offer.URL)
	fmt.Printf("Processed:  %s\n", yesNo(offer.Processed))
	fmt.Printf("Archived:   %s\n", yesNo(offer.Archived))
	fmt.Printf("Discovered: %s\n", offer.DiscoveredAt.Format("2006-01-02"))

	resumes, err := db.ListResumes(ctx, offer.Key)
	if err != nil {
		return err
	}
	if len(resumes) == 0 {
		fmt.Println("\nNo resumes generated yet. Run 'hireme generate " + offer.Key + "'.")
		return nil
	}
	fmt.Println("\nGenerated resumes:")
	return printResumes(resumes)
}

func runDBArchiveCmd(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.ArchiveOffer(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Offer %s archived.\n", args[0])
	return nil
}

func runDBResumesCmd(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	resumes, err := db.ListResumes(context.Background(), args[0])
	if err != nil {
		return err
	}
	if len(resumes) == 0 {
		fmt.Printf("No resumes generated for %s yet.\n", args[0])
		return nil
	}
	return printResumes(resumes)
}

func runDBSelectCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid resume id %q", args[0])
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.SelectResume(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("Resume %d selected.\n", id)
	return nil
}

func runDBApplyCmd(cmd *cobra.Command, args []string) error {
	status := store.ApplicationStatus(args[1])
	if !status.IsValid() {
		valid := make([]string, 0, len(store.ApplicationStatuses()))
		for _, s := range store.ApplicationStatuses() {
			valid = append(valid, string(s))
		}
		return fmt.Errorf("invalid status %q, valid: %s", args[1], strings.Join(valid, ", "))
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.SetApplicationStatus(context.Background(), args[0], status, dbApplyNotes); err != nil {
		return err
	}
	fmt.Printf("Application for %s updated to %q.\n", args[0], status)
	return nil
}

func runDBApplicationsCmd(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	apps, err := db.ListApplications(context.Background(), store.ApplicationStatus(dbStatusFilter))
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		fmt.Println("No applications tracked yet. Use 'hireme db apply <offer-key> <status>'.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OFFER\tTITLE\tCOMPANY\tSTATUS\tAPPLIED\tUPDATED")
	for _, a := range apps {
		applied := "-"
		if a.AppliedAt.Valid {
			applied = a.AppliedAt.Time.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.OfferKey, a.Title, a.Company, a.Status, applied,
			a.UpdatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func runDBStatsCmd(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	stats, err := db.GetStats(context.Background())
	if err != nil {
		return err
	}

	fmt.Println("Job search statistics")
	fmt.Printf("  Offers tracked:    %d\n", stats.TotalOffers)
	fmt.Printf("  Offers processed:  %d\n", stats.ProcessedOffers)
	fmt.Printf("  Resumes generated: %d\n", stats.TotalResumes)
	fmt.Println("  Application funnel:")
	for _, status := range store.ApplicationStatuses() {
		fmt.Printf("    %-20s %d\n", status, stats.ByStatus[status])
	}
	return nil
}

func printOffers(offers []store.Offer) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tTITLE\tCOMPANY\tLOCATION\tSOURCE\tPROCESSED\tDISCOVERED")
	for _, o := range offers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.Key, o.Title, o.Company, o.Location, o.Source, yesNo(o.Processed),
			o.DiscoveredAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func printResumes(resumes []store.Resume) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROFILE\tMODEL\tSELECTED\tGENERATED\tPDF")
	for _, r := range resumes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.ProfileName, r.Model, yesNo(r.Selected),
			r.GeneratedAt.Format("2006-01-02"), r.PDFPath)
	}
	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
