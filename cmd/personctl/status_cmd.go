package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
)

type statusOptions struct {
	BaseURL string
	Timeout time.Duration
}

type importStatus struct {
	StartTime     *string `json:"startTime"`
	Status        string  `json:"status"`
	EndTime       *string `json:"endTime"`
	ProcessedRows int64   `json:"processedRows"`
	RunID         string  `json:"runId"`
	Error         string  `json:"error"`
}

func newStatusCmd() *cobra.Command {
	var opts statusOptions

	cmd := &cobra.Command{
		Use:   "status --url <url>",
		Short: "Show the import status of a running server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(opts.BaseURL) == "" {
				return errors.New("--url is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.Timeout)
			defer cancel()

			status, err := fetchStatus(ctx, opts.BaseURL)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("status:"), status.Status)
			fmt.Fprintf(out, "%s %d\n", labelColor.Sprint("processed rows:"), status.ProcessedRows)
			if status.RunID != "" {
				fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("run:"), status.RunID)
			}
			if status.StartTime != nil {
				fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("started:"), *status.StartTime)
			}
			if status.EndTime != nil {
				fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("finished:"), *status.EndTime)
			}
			if status.Error != "" {
				fmt.Fprintf(out, "%s %s\n", labelColor.Sprint("error:"), failureColor.Sprint(status.Error))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.BaseURL, "url", "http://localhost:8080", "server base URL")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 10*time.Second, "request timeout")

	return cmd
}

func fetchStatus(ctx context.Context, baseURL string) (importStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/api/people/import/status", nil)
	if err != nil {
		return importStatus{}, errors.Wrap(err, "build request")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return importStatus{}, errors.Wrap(err, "request status")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return importStatus{}, errors.Errorf("status request failed: status=%d", resp.StatusCode)
	}

	var status importStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return importStatus{}, errors.Wrap(err, "decode status")
	}
	return status, nil
}
