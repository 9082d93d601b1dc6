package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shandysiswandi/csvjson/internal/app"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "csvjson",
		Short:         "Serve a CSV dataset as JSON over HTTP",
		Long:          `csvjson keeps an in-memory dataset of id,name,email records, serves it on GET /data and replaces it from CSV posted to POST /upload.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(cmd.Flags())
			if err != nil {
				return err
			}

			wait, err := application.Start()
			if err != nil {
				return err
			}
			<-wait // Wait for the application to receive a termination signal

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			application.Stop(ctx)
			return nil
		},
	}

	cmd.Flags().StringP("file", "f", "", "CSV file to load into the dataset at startup")
	cmd.Flags().StringP("config", "c", "", "optional YAML config file")
	cmd.Flags().String("address", "127.0.0.1:8080", "HTTP listen address")
	cmd.Flags().String("on-startup-parse-error", "abort", "what to do when the startup file fails to load: abort or fallback")

	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
