package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/auth"
	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/claims"
	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
	"github.com/FACorreiaa/go-claims-templui/internal/app/report"
)

type ClaimsCmd struct {
	List   ClaimsListCmd   `cmd:"" help:"List your claims"`
	Show   ClaimsShowCmd   `cmd:"" help:"Show claim details"`
	Report ClaimsReportCmd `cmd:"" help:"Download the PDF damage report"`
}

type ClaimsListCmd struct{}

func (l *ClaimsListCmd) Run(ctx context.Context, globals *Globals) error {
	_, client, err := globals.require(auth.UserOnly)
	if err != nil {
		return err
	}
	list, err := client.ClaimHistory(ctx)
	if err != nil {
		return explain("failed to list claims", err)
	}
	printClaims(globals.Out, list, false)
	return nil
}

func printClaims(out io.Writer, list []models.ClaimSummary, withUser bool) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No claims found.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if withUser {
		fmt.Fprintln(w, "ID\tUSER\tVEHICLE\tSTATUS\tESTIMATE")
	} else {
		fmt.Fprintln(w, "ID\tVEHICLE\tSTATUS\tESTIMATE")
	}
	for _, c := range list {
		if withUser {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.UserEmail, c.VehicleMakeModel, claims.Label(c.Status), claims.FormatCurrency(c.EstimatedTotal))
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.VehicleMakeModel, claims.Label(c.Status), claims.FormatCurrency(c.EstimatedTotal))
	}
	_ = w.Flush()
}

type ClaimsShowCmd struct {
	ID int64 `arg:"" help:"Claim ID"`
}

func (s *ClaimsShowCmd) Run(ctx context.Context, globals *Globals) error {
	_, client, err := globals.require(auth.AnyAuthenticated)
	if err != nil {
		return err
	}
	d, err := client.GetClaim(ctx, s.ID)
	if err != nil {
		return explain("failed to load claim", err)
	}

	out := globals.Out
	fmt.Fprintf(out, "Claim #%d\n", d.ID)
	fmt.Fprintf(out, "Status:   %s\n", claims.Label(d.Status))
	fmt.Fprintf(out, "Vehicle:  %s %s\n", d.VehicleMakeModel, d.VehicleRegistrationNumber)
	fmt.Fprintf(out, "Client:   %s %s\n", d.FirstName, d.LastName)
	if !claims.ReportReady(d.Status) {
		fmt.Fprintln(out, "Analysis is still in progress.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PART\tDAMAGE\tACTION\tAMOUNT")
	for _, it := range d.LineItems {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.Part, it.DamageType, it.Action, claims.FormatCurrency(it.Amount))
	}
	_ = w.Flush()

	b := claims.BreakdownFor(d.Status, d.EstimatedTotal)
	if b.Limited {
		fmt.Fprintf(out, "Original: %s\nDeduction: -%s\n", claims.FormatCurrency(b.Original), claims.FormatCurrency(b.Deduction))
	}
	fmt.Fprintf(out, "Subtotal: %s\nTotal:    %s\n", claims.FormatCurrency(b.Subtotal), claims.FormatCurrency(b.Final))
	return nil
}

type ClaimsReportCmd struct {
	ID     int64  `arg:"" help:"Claim ID"`
	Output string `short:"o" help:"Output file (defaults to Claim_Report_<id>.pdf)" type:"path"`
}

func (r *ClaimsReportCmd) Run(ctx context.Context, globals *Globals) error {
	_, client, err := globals.require(auth.AnyAuthenticated)
	if err != nil {
		return err
	}
	d, err := client.GetClaim(ctx, r.ID)
	if err != nil {
		return explain("failed to load claim", err)
	}
	if !claims.ReportReady(d.Status) {
		return fmt.Errorf("claim #%d has no report yet (status %s)", d.ID, claims.Label(d.Status))
	}

	data, err := report.FromClaimDetail(d, time.Now())
	if err != nil {
		return err
	}
	pdf, err := report.Render(data)
	if err != nil {
		return err
	}

	path := r.Output
	if path == "" {
		path = report.Filename(d.ID)
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(globals.Out, "Report written to %s\n", path)
	return nil
}
