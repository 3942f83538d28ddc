package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/poiesic/reviewpipe/core"
)

var reviews = []core.Record{
	{ProductName: "Sony TV", Price: 12000, Comment: "I loved this product", Rating: 4.85},
	{ProductName: "Electric Kettle", Price: 35.5, Comment: "Boils fast, but it is loud", Rating: 3.9},
	{ProductName: "Desk Lamp", Price: 20, Comment: "Dim, flickers, and the switch broke", Rating: 1.5},
	{ProductName: "Noise Cancelling Headphones", Price: 299.99, Comment: "Quiet flights at last", Rating: 4.7},
	{ProductName: "Espresso Machine", Price: 450, Comment: "Great crema, steep learning curve", Rating: 4.2},
	{ProductName: "Running Shoes", Price: 89.95, Comment: "Comfortable from day one", Rating: 4.5},
	{ProductName: "Cast Iron Skillet", Price: 42, Comment: "Heavy, but it will outlive me", Rating: 4.9},
	{ProductName: "Smart Watch", Price: 199, Comment: "Battery barely lasts a day", Rating: 2.8},
}

var (
	rootDir      = flag.String("root", "./buckets", "directory holding one sub-directory per bucket")
	bucket       = flag.String("bucket", "reviews", "bucket to write the sample files into")
	seedFileName = flag.String("src", "", "file of delimited review lines to upload as an extra .txt object")
)

func init() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// delimited renders records in the semicolon-separated text layout.
func delimited(records []core.Record) string {
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "ProductName: %s, Price: %g, Review: %s, Rating: %g;\n",
			r.ProductName, r.Price, r.Comment, r.Rating)
	}
	return b.String()
}

// structured renders records as a JSON array.
func structured(records []core.Record) (string, error) {
	type entry struct {
		ProductName string
		Price       float64
		Review      string
		Rating      float64
	}
	entries := make([]entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, entry{r.ProductName, r.Price, r.Comment, r.Rating})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeObject(key, content string) error {
	path := filepath.Join(*rootDir, *bucket, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	slog.Info("writing object", "bucket", *bucket, "key", key, "bytes", len(content))
	return os.WriteFile(path, []byte(content), 0o644)
}

func createdRecord(key string, size int64, at time.Time) events.S3EventRecord {
	return events.S3EventRecord{
		EventVersion: "2.1",
		EventSource:  "aws:s3",
		EventTime:    at,
		EventName:    "ObjectCreated:Put",
		S3: events.S3Entity{
			SchemaVersion: "1.0",
			Bucket: events.S3Bucket{
				Name: *bucket,
				Arn:  "arn:aws:s3:::" + *bucket,
			},
			Object: events.S3Object{
				Key:  url.QueryEscape(key),
				Size: size,
			},
		},
	}
}

func main() {
	half := len(reviews) / 2
	jsonContent, err := structured(reviews[:half])
	if err != nil {
		panic(err)
	}

	objects := []struct{ key, content string }{
		{"seed/reviews.json", jsonContent},
		{"seed/reviews.txt", delimited(reviews[half:])},
	}

	if seedFileName != nil && *seedFileName != "" {
		lines, err := linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
		var b strings.Builder
		for line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
		objects = append(objects, struct{ key, content string }{"seed/" + filepath.Base(*seedFileName) + ".txt", b.String()})
	}

	now := time.Now().UTC()
	event := events.S3Event{}
	for _, obj := range objects {
		if err := writeObject(obj.key, obj.content); err != nil {
			panic(err)
		}
		event.Records = append(event.Records, createdRecord(obj.key, int64(len(obj.content)), now))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(event); err != nil {
		panic(err)
	}
}
