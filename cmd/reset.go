package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var resetPort int

var resetCmd = &cobra.Command{
	Use:   "reset <exercise-id>",
	Short: "Restore an exercise's starter code",
	Long: `Discards your saved HTML and CSS for the exercise and restores its starter code.
Completion is kept. When a lab server is running, the reset goes through it so
open pages update; otherwise the store is changed directly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id := args[0]

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		port := cfg.Port
		if resetPort != 0 {
			port = resetPort
		}

		served, err := resetViaServer(ctx, fmt.Sprintf("http://127.0.0.1:%d", port), id)
		if err != nil {
			return err
		}
		if served {
			fmt.Printf("Reset %s to its starter code (running lab on port %d).\n", id, port)
			return nil
		}

		rt, err := openRuntime(ctx, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.manager.ResetExercise(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Reset %s to its starter code.\n", id)
		return nil
	},
}

func init() {
	resetCmd.Flags().IntVar(&resetPort, "port", 0, "port of a running lab (overrides config)")
	rootCmd.AddCommand(resetCmd)
}

// resetViaServer asks a running lab at baseURL to reset the exercise. It
// returns false when nothing is listening, so the caller can write the
// store itself.
func resetViaServer(ctx context.Context, baseURL, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/reset/"+url.PathEscape(id), nil)
	if err != nil {
		return false, fmt.Errorf("building reset request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		var opErr *net.OpError
		if errors.As(err, &opErr) && opErr.Op == "dial" {
			return false, nil
		}
		return false, fmt.Errorf("contacting running lab: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		// Something else owns the port.
		return false, nil
	default:
		return false, fmt.Errorf("running lab rejected reset (%s): %s", resp.Status, strings.TrimSpace(string(body)))
	}
}
