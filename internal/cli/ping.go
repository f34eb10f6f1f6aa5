package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// defaultServer returns the front end URL, checking SMF_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("SMF_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

func newPingCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that the front end is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: 5 * time.Second}
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, serverURL+"/healthz", nil)
			if err != nil {
				return err
			}
			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("ping %s: %w", serverURL, err)
			}
			defer resp.Body.Close()

			var health struct {
				Status         string `json:"status"`
				Version        string `json:"version"`
				Uptime         string `json:"uptime"`
				Store          string `json:"store"`
				ActiveSessions int    `json:"active_sessions"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
				return fmt.Errorf("parse health response: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Server:   %s\n", serverURL)
			fmt.Fprintf(out, "Status:   %s\n", health.Status)
			fmt.Fprintf(out, "Version:  %s\n", health.Version)
			fmt.Fprintf(out, "Uptime:   %s\n", health.Uptime)
			fmt.Fprintf(out, "Store:    %s\n", health.Store)
			fmt.Fprintf(out, "Sessions: %d\n", health.ActiveSessions)

			if health.Status != "healthy" {
				return fmt.Errorf("server reports %s", health.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", defaultServer(), "Front end URL (or SMF_SERVER env)")
	return cmd
}
