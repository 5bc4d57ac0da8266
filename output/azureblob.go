package output

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/cenkalti/backoff/v4"

	"aptos-etl/core"
)

// AzureBlobSink is the cloud object-store sink, standing in for the
// spec's "cloud bucket" destination (spec §4.9). Records are grouped into
// half-hour buckets by their block unix timestamp and uploaded as one
// newline-delimited blob per bucket, path
// "{date}/{hour}/{00|30}/{family}_{firstIndex}.jsonl", matching the
// original's GCS half-hour-bucketing scheme, retried until success.
type AzureBlobSink struct {
	client        *azblob.Client
	containerName string
}

// NewAzureBlobSink opens a client from a connection string.
func NewAzureBlobSink(connectionString, containerName string) (*AzureBlobSink, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("output: azblob client: %w", err)
	}
	return &AzureBlobSink{client: client, containerName: containerName}, nil
}

func (s *AzureBlobSink) Publish(family string, record any) error {
	return s.PublishBatch(family, []any{record}, []core.UnixTimestamp{{}})
}

func (s *AzureBlobSink) PublishBatch(family string, records []any, timestamps []core.UnixTimestamp) error {
	if len(records) == 0 {
		return nil
	}
	if len(timestamps) != len(records) {
		return fmt.Errorf("output: azblob: %d records but %d timestamps", len(records), len(timestamps))
	}
	encoded, err := marshalAll(records)
	if err != nil {
		return err
	}

	buckets := bucketByHalfHour(timestamps)
	for _, bucket := range buckets {
		body := joinJSONLines(encoded[bucket.start:bucket.end])
		blobName := fmt.Sprintf("%s/%s_%d.jsonl", bucket.path, family, bucket.start)
		if err := s.uploadUntilSuccess(blobName, body); err != nil {
			return err
		}
	}
	return nil
}

type halfHourBucket struct {
	path       string
	start, end int
}

// bucketByHalfHour groups contiguous records sharing the same date/hour/
// half-hour window, assuming timestamps arrive in ascending order (per
// spec §4.7, records are buffered in pull order).
func bucketByHalfHour(timestamps []core.UnixTimestamp) []halfHourBucket {
	var buckets []halfHourBucket
	var curPath string
	start := 0
	for i, ts := range timestamps {
		path := halfHourPath(ts)
		if i == 0 {
			curPath = path
			continue
		}
		if path != curPath {
			buckets = append(buckets, halfHourBucket{path: curPath, start: start, end: i})
			start = i
			curPath = path
		}
	}
	buckets = append(buckets, halfHourBucket{path: curPath, start: start, end: len(timestamps)})
	return buckets
}

func halfHourPath(ts core.UnixTimestamp) string {
	t := ts.Time()
	minuteBucket := "00"
	if t.Minute() >= 30 {
		minuteBucket = "30"
	}
	return fmt.Sprintf("%s/%d/%s", t.Format("2006-01-02"), t.Hour(), minuteBucket)
}

func joinJSONLines(lines [][]byte) []byte {
	var out []byte
	for i, line := range lines {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, line...)
	}
	return out
}

func (s *AzureBlobSink) uploadUntilSuccess(blobName string, body []byte) error {
	return backoff.Retry(func() error {
		_, err := s.client.UploadBuffer(context.Background(), s.containerName, blobName, body, nil)
		return err
	}, &linearBackoff{})
}

func (s *AzureBlobSink) Close() error { return nil }
