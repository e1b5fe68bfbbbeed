package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/arzan03/LandMarket/internal/metrics"
	"github.com/arzan03/LandMarket/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUpstream      = errors.New("image host failure")
	ErrUploadTimeout = errors.New("image upload timed out")
	ErrAssetNotFound = errors.New("asset not found")
)

const (
	DefaultFolder        = "land_ads"
	DefaultUploadTimeout = 45 * time.Second
	DefaultDeleteTimeout = 10 * time.Second
	DefaultConcurrency   = 10
	MaxWidth             = 800
	MaxHeight            = 600
)

// ImageFile is a raw image received from a client.
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DeleteReport lists the outcome of a best-effort delete. Deleted and Failed hold public
// ids; Skipped holds URLs no public id could be derived from.
type DeleteReport struct {
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed"`
	Skipped []string `json:"skipped"`
}

type AssetManager struct {
	store         ObjectStore
	baseURL       string
	folder        string
	uploadTimeout time.Duration
	deleteTimeout time.Duration
	concurrency   int
	log           *slog.Logger
	now           func() time.Time
	newID         func() string
}

type Option func(*AssetManager)

func WithTimeouts(upload, del time.Duration) Option {
	return func(m *AssetManager) {
		m.uploadTimeout = upload
		m.deleteTimeout = del
	}
}

func WithConcurrency(n int) Option {
	return func(m *AssetManager) {
		if n > 0 {
			m.concurrency = n
		}
	}
}

func WithFolder(folder string) Option {
	return func(m *AssetManager) { m.folder = strings.Trim(folder, "/") }
}

// NewAssetManager builds an asset manager whose URLs are rooted at baseURL,
// e.g. "https://api.example.com/api/v1/media".
func NewAssetManager(store ObjectStore, baseURL string, log *slog.Logger, opts ...Option) *AssetManager {
	m := &AssetManager{
		store:         store,
		baseURL:       strings.TrimRight(baseURL, "/"),
		folder:        DefaultFolder,
		uploadTimeout: DefaultUploadTimeout,
		deleteTimeout: DefaultDeleteTimeout,
		concurrency:   DefaultConcurrency,
		log:           log,
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// UploadImages transforms and uploads files, returning their URLs in input order.
// The batch fails on the first failed upload; assets already stored by the batch are
// then removed.
func (m *AssetManager) UploadImages(ctx context.Context, files []ImageFile) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	prepared := make([]preparedImage, len(files))
	for i, f := range files {
		img, err := fitImage(f, MaxWidth, MaxHeight)
		if err != nil {
			return nil, err
		}
		prepared[i] = img
	}

	m.log.Info("uploading images", "count", len(files))

	urls := make([]string, len(prepared))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)

	for i, img := range prepared {
		g.Go(func() error {
			url, err := m.uploadOne(gctx, img)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var uploaded []string
		for _, u := range urls {
			if u != "" {
				uploaded = append(uploaded, u)
			}
		}
		if len(uploaded) > 0 {
			m.DeleteImagesByURLs(context.WithoutCancel(ctx), uploaded)
		}
		m.log.Error("batch upload failed", "err", err, "rolled_back", len(uploaded))
		return nil, fmt.Errorf("failed to upload images: %w", err)
	}

	m.log.Info("uploaded images", "count", len(urls))
	return urls, nil
}

func (m *AssetManager) uploadOne(ctx context.Context, img preparedImage) (string, error) {
	publicID := m.folder + "/" + m.newID()

	uctx, cancel := context.WithTimeout(ctx, m.uploadTimeout)
	defer cancel()

	err := m.store.Put(uctx, publicID, bytes.NewReader(img.data), int64(len(img.data)), img.format.contentType)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(uctx.Err(), context.DeadlineExceeded) {
			metrics.ImageUploads.WithLabelValues("timeout").Inc()
			return "", fmt.Errorf("%w: %s", ErrUploadTimeout, img.name)
		}
		metrics.ImageUploads.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %s: %v", ErrUpstream, img.name, err)
	}

	metrics.ImageUploads.WithLabelValues("ok").Inc()
	return m.urlFor(publicID, img.format.ext), nil
}

func (m *AssetManager) urlFor(publicID, ext string) string {
	return fmt.Sprintf("%s/%s/v%d/%s.%s", m.baseURL, uploadMarker, m.now().Unix(), publicID, ext)
}

// DeleteImagesByURLs removes the assets behind urls. It never fails: every attempt
// settles and the outcome is reported and logged.
func (m *AssetManager) DeleteImagesByURLs(ctx context.Context, urls []string) DeleteReport {
	report := DeleteReport{}
	if len(urls) == 0 {
		return report
	}

	seen := make(map[string]struct{}, len(urls))
	var ids []string
	for _, u := range urls {
		id := ExtractPublicID(u)
		if id == "" {
			report.Skipped = append(report.Skipped, u)
			metrics.ImageDeletes.WithLabelValues("skipped").Inc()
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	tasks := make([]utils.ParallelTask[struct{}], len(ids))
	for i, id := range ids {
		tasks[i] = func() (struct{}, error) {
			dctx, cancel := context.WithTimeout(ctx, m.deleteTimeout)
			defer cancel()
			return struct{}{}, m.store.Remove(dctx, id)
		}
	}

	_, errs := utils.RunParallelTasks(tasks, m.concurrency)

	for i, err := range errs {
		if err != nil {
			report.Failed = append(report.Failed, ids[i])
			metrics.ImageDeletes.WithLabelValues("failed").Inc()
			m.log.Warn("failed to delete image", "public_id", ids[i], "err", err)
		} else {
			report.Deleted = append(report.Deleted, ids[i])
			metrics.ImageDeletes.WithLabelValues("ok").Inc()
		}
	}

	m.log.Info("deleted images", "deleted", len(report.Deleted), "failed", len(report.Failed), "skipped", len(report.Skipped))
	return report
}

// Open streams a stored asset.
func (m *AssetManager) Open(ctx context.Context, publicID string) (io.ReadCloser, ObjectInfo, error) {
	if publicID == "" || !strings.HasPrefix(publicID, m.folder+"/") {
		return nil, ObjectInfo{}, ErrAssetNotFound
	}
	return m.store.Get(ctx, publicID)
}
