package variants

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"catalog-manager/core/reconcile"
	"catalog-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// ErrReportNotFound is returned when an archived report does not exist.
var ErrReportNotFound = errors.New("report not found")

const reportTimeFormat = "20060102T150405.000Z"

// ReportInfo describes one archived commit report.
type ReportInfo struct {
	Name         string    `json:"name"`
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// Archive stores commit results as JSON objects under <prefix>/<productId>/<timestamp>.json.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
}

// NewArchive creates a report archive.
func NewArchive(client storage.Client, bucket, prefix string) *Archive {
	return &Archive{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (a *Archive) productPrefix(productID string) string {
	return path.Join(a.prefix, productID) + "/"
}

// Save uploads a commit result and returns its object key.
func (a *Archive) Save(ctx context.Context, result *reconcile.CommitResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	finished := result.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	key := a.productPrefix(result.ProductID) + finished.UTC().Format(reportTimeFormat) + ".json"

	_, err = a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", key, err)
	}
	return key, nil
}

// List returns the archived reports of a product, newest first.
func (a *Archive) List(ctx context.Context, productID string) ([]ReportInfo, error) {
	prefix := a.productPrefix(productID)
	objects := a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	reports := []ReportInfo{}
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		reports = append(reports, ReportInfo{
			Name:         strings.TrimPrefix(obj.Key, prefix),
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}

	// Names are timestamps, so lexical order is chronological
	sort.Slice(reports, func(i, j int) bool { return reports[i].Name > reports[j].Name })
	return reports, nil
}

// Get downloads and decodes one archived report.
func (a *Archive) Get(ctx context.Context, productID, name string) (*reconcile.CommitResult, error) {
	if name == "" || strings.Contains(name, "/") || !strings.HasSuffix(name, ".json") {
		return nil, fmt.Errorf("%w: %q", ErrReportNotFound, name)
	}
	key := a.productPrefix(productID) + name

	obj, err := a.client.GetObject(ctx, a.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, a.mapError(key, err)
	}
	defer obj.Close()

	var result reconcile.CommitResult
	if err := json.NewDecoder(obj).Decode(&result); err != nil {
		// minio reports a missing key on first read
		return nil, a.mapError(key, err)
	}
	return &result, nil
}

func (a *Archive) mapError(key string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrReportNotFound, key)
	}
	return fmt.Errorf("failed to read report %s: %w", key, err)
}
