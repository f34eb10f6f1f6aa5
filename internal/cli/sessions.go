package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect and sweep the session store",
	}
	cmd.AddCommand(newSessionsListCmd(), newSessionsPurgeCmd())
	return cmd
}

func newSessionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			recs, err := st.ListCredentials(cmd.Context())
			if err != nil {
				return fmt.Errorf("list sessions: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, "No active sessions.")
				return nil
			}

			fmt.Fprintf(out, "%-16s  %-20s  %-8s  %-15s  %s\n", "ID", "USER", "ROLE", "CREATED", "EXPIRES")
			for _, rec := range recs {
				username, role := "-", "-"
				if rec.Identity != nil {
					username = rec.Identity.Username
					role = string(rec.Identity.Role)
				}
				id := rec.ID
				if len(id) > 16 {
					id = id[:16]
				}
				fmt.Fprintf(out, "%-16s  %-20s  %-8s  %-15s  %s\n",
					id, username, role,
					humanize.Time(rec.CreatedAt),
					humanize.Time(rec.ExpiresAt),
				)
			}
			return nil
		},
	}
}

func newSessionsPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete expired sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.PurgeExpired(cmd.Context())
			if err != nil {
				return fmt.Errorf("purge sessions: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d expired session(s).\n", n)
			return nil
		},
	}
}
