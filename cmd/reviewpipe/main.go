// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/poiesic/reviewpipe"
	"github.com/poiesic/reviewpipe/config"
	"github.com/poiesic/reviewpipe/ingestion"
	"github.com/poiesic/reviewpipe/storage"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "reviewpipe",
		Usage: "Ingest product review files from object storage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a config file (yaml, toml or json)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Process an S3 event document",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "event",
						Aliases:  []string{"e"},
						Usage:    "Path to the event JSON, or - for stdin",
						Required: true,
					},
				},
			},
			{
				Name:   "lambda",
				Usage:  "Serve S3 events from the AWS Lambda runtime",
				Action: lambdaCommand,
			},
			{
				Name:   "count",
				Usage:  "Print the number of persisted records",
				Action: countCommand,
			},
			{
				Name:   "list",
				Usage:  "Print every persisted record as JSON lines",
				Action: listCommand,
			},
			{
				Name:   "get",
				Usage:  "Print a persisted record as JSON",
				Action: getCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Record identifier",
						Required: true,
					},
				},
			},
		},
	}
}

func openService(c *cli.Context) (*reviewpipe.Service, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	svc, err := reviewpipe.Open(c.Context, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open service: %w", err)
	}
	return svc, nil
}

func readEvent(c *cli.Context, path string) (events.S3Event, error) {
	var event events.S3Event

	var r io.Reader
	if path == "-" {
		r = c.App.Reader
	} else {
		f, err := os.Open(path)
		if err != nil {
			return event, err
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&event); err != nil {
		return event, fmt.Errorf("decoding event: %w", err)
	}
	return event, nil
}

func ingestCommand(c *cli.Context) error {
	event, err := readEvent(c, c.String("event"))
	if err != nil {
		return err
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	summary := svc.Handle(c.Context, ingestion.NotificationsFromS3Event(event))
	fmt.Fprintln(c.App.Writer, summary.String())
	if summary.Failed() {
		return errors.New("every notification in the batch failed")
	}
	return nil
}

func lambdaCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	lambda.StartWithOptions(svc.HandleS3Event, lambda.WithContext(c.Context))
	return nil
}

func countCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	count, err := svc.RecordStore().CountRecords(c.Context)
	if err != nil {
		return fmt.Errorf("counting records: %w", err)
	}
	fmt.Fprintln(c.App.Writer, count)
	return nil
}

func getCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	record, err := svc.RecordStore().GetRecord(c.Context, c.String("id"))
	if err != nil {
		return fmt.Errorf("getting record %s: %w", c.String("id"), err)
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

func listCommand(c *cli.Context) error {
	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	lister, ok := svc.RecordStore().(storage.RecordLister)
	if !ok {
		return errors.New("record store does not support listing")
	}
	records, err := lister.ListRecords(c.Context)
	if err != nil {
		return fmt.Errorf("listing records: %w", err)
	}

	enc := json.NewEncoder(c.App.Writer)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return err
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
