package commands

import (
	"context"
	"fmt"

	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/auth"
	"github.com/FACorreiaa/go-claims-templui/internal/app/domain/claims"
)

type AdminCmd struct {
	List      AdminListCmd      `cmd:"" help:"List every claim with dashboard totals"`
	SetStatus AdminSetStatusCmd `cmd:"" name:"set-status" help:"Approve or reject a claim"`
}

type AdminListCmd struct {
	Pending bool `help:"Only show claims awaiting a decision"`
}

func (l *AdminListCmd) Run(ctx context.Context, globals *Globals) error {
	_, client, err := globals.require(auth.AdminOnly)
	if err != nil {
		return err
	}
	all, err := client.AllClaims(ctx)
	if err != nil {
		return explain("failed to list claims", err)
	}

	stats := claims.Summarise(all)
	fmt.Fprintf(globals.Out, "Total: %d  Completed: %d  Pending: %d  Users: %d\n\n",
		stats.Total, stats.Completed, stats.Pending, stats.UniqueUsers)

	if l.Pending {
		filtered := all[:0:0]
		for _, c := range all {
			if !claims.IsDecided(c.Status) {
				filtered = append(filtered, c)
			}
		}
		all = filtered
	}
	printClaims(globals.Out, all, true)
	return nil
}

type AdminSetStatusCmd struct {
	ID     int64  `arg:"" help:"Claim ID"`
	Status string `arg:"" enum:"CLAIM_APPROVED,CLAIM_REJECTED" help:"New status (CLAIM_APPROVED or CLAIM_REJECTED)"`
}

func (s *AdminSetStatusCmd) Run(ctx context.Context, globals *Globals) error {
	if !claims.ValidDecision(s.Status) {
		return fmt.Errorf("invalid status %q", s.Status)
	}
	_, client, err := globals.require(auth.AdminOnly)
	if err != nil {
		return err
	}
	if err := client.UpdateClaimStatus(ctx, s.ID, s.Status); err != nil {
		return explain("failed to update status", err)
	}
	fmt.Fprintf(globals.Out, "Claim #%d marked %s\n", s.ID, claims.Label(s.Status))
	return nil
}
