package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	rootCmd   = &cobra.Command{
		Use:   "mediabatch",
		Short: "Media batch downloader CLI",
		Long:  `A command-line client for the media batch download server.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:5000", "Server URL")
	submitCmd.Flags().String("format", "mp3", "Output format: mp3 or mp4")

	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(healthCmd)
}

var submitCmd = &cobra.Command{
	Use:   "submit [links]",
	Short: "Submit a batch of semicolon-delimited links",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")

		payload := map[string]string{
			"links":  args[0],
			"format": format,
		}

		data, _ := json.Marshal(payload)
		resp, err := http.Post(serverURL+"/process", "application/json", bytes.NewBuffer(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}

		var result struct {
			Total               int    `json:"total"`
			Succeeded           int    `json:"succeeded"`
			FormatRequested     string `json:"format_requested"`
			TranscoderAvailable bool   `json:"transcoder_available"`
			Results             []struct {
				Success bool   `json:"success"`
				Title   string `json:"title"`
				URL     string `json:"url"`
				File    string `json:"file"`
				Message string `json:"message"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid response: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Downloaded %d of %d as %s (transcoder available: %v)\n",
			result.Succeeded, result.Total, result.FormatRequested, result.TranscoderAvailable)
		for _, item := range result.Results {
			if item.Success {
				fmt.Printf("  ok      %s -> %s/download/%s\n", item.Title, serverURL, item.File)
			} else {
				fmt.Printf("  failed  %s: %s\n", item.URL, item.Message)
			}
		}
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent batches",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := http.Get(serverURL + "/api/v1/batches")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		var batches []struct {
			ID        string `json:"id"`
			Format    string `json:"format"`
			Total     int    `json:"total"`
			Succeeded int    `json:"succeeded"`
			CreatedAt string `json:"created_at"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&batches); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid response: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tFORMAT\tTOTAL\tSUCCEEDED\tCREATED")
		for _, b := range batches {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", b.ID, b.Format, b.Total, b.Succeeded, b.CreatedAt)
		}
		w.Flush()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show processing statistics",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := http.Get(serverURL + "/api/v1/stats")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		fmt.Println(string(body))
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := http.Get(serverURL + "/health")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: server unreachable: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		fmt.Println(string(body))
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
