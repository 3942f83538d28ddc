package ingestion

import (
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/poiesic/reviewpipe/core"
)

// NotificationsFromS3Event converts an S3 event into notifications, one per
// record and in record order. Object keys arrive URL-encoded and are decoded
// here; a key that fails to decode is kept as received.
func NotificationsFromS3Event(event events.S3Event) []core.Notification {
	batch := make([]core.Notification, 0, len(event.Records))
	for _, rec := range event.Records {
		key := rec.S3.Object.Key
		if rec.S3.Object.URLDecodedKey != "" {
			key = rec.S3.Object.URLDecodedKey
		} else if decoded, err := url.QueryUnescape(key); err == nil {
			key = decoded
		}
		batch = append(batch, core.Notification{
			Container: rec.S3.Bucket.Name,
			Key:       key,
			Kind:      eventKind(rec.EventName),
		})
	}
	return batch
}

// eventKind maps S3 event names such as "ObjectCreated:Put" or
// "s3:ObjectCreated:Copy" to an EventKind.
func eventKind(name string) core.EventKind {
	name = strings.TrimPrefix(name, "s3:")
	if strings.HasPrefix(name, "ObjectCreated") {
		return core.EventCreated
	}
	return core.EventOther
}
