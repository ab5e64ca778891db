package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
)

// NewHistoryCmd выводит последние отправки.
func NewHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent uploads",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := buildApp(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.close(); err != nil {
					log.Printf("Close error: %v", err)
				}
			}()

			recs, err := a.container.CaptureService.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(w, "no uploads yet")
				return nil
			}
			for _, r := range recs {
				status := "failed"
				if r.Success {
					status = "ok"
				}
				fmt.Fprintf(w, "%s  %-6s %3d  focus=%.1f brightness=%.1f  %d bytes  %s\n",
					r.CreatedAt.Format(time.RFC3339), status, r.StatusCode,
					r.Metrics.Focus, r.Metrics.Brightness, r.Bytes, r.ID)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of records to show")
	return cmd
}
