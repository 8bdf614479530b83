package fitnesse

import (
	"context"
	"fmt"
	"time"

	"fitlaunch/internal/domain"

	"github.com/sirupsen/logrus"
)

// Progress receives registration progress
type Progress interface {
	Update(accepted, rejected int)
	Finish()
}

// Registrar creates wiki symlinks on a running FitNesse server
type Registrar struct {
	logger     *logrus.Logger
	clientOpts []ClientOption
	progress   Progress
}

// NewRegistrar creates a Registrar; opts apply to every client it builds
func NewRegistrar(logger *logrus.Logger, opts ...ClientOption) *Registrar {
	return &Registrar{
		logger:     logger,
		clientOpts: opts,
	}
}

// SetProgress sets the progress reporter for the next runs
func (r *Registrar) SetProgress(progress Progress) {
	r.progress = progress
}

// CreateSymLinks registers one symlink per unique top-level page of launches.
// FitNesse accepts duplicate requests for the same link; names are
// deduplicated only to keep the output clean. Status codes are recorded but
// never treated as failures; an I/O error stops the run.
func (r *Registrar) CreateSymLinks(ctx context.Context, baseDir, testResourceDir string, port int, launches ...domain.Launch) (domain.SymLinkReport, error) {
	client := NewClient(port, r.clientOpts...)
	report := domain.SymLinkReport{
		Port:      port,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	var accepted, rejected int
	defer func() {
		if r.progress != nil {
			r.progress.Finish()
		}
	}()

	for _, linkName := range LinkNames(launches...) {
		result, err := r.createSymLink(ctx, client, baseDir, testResourceDir, linkName)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, result)

		if result.Accepted() {
			accepted++
		} else {
			rejected++
		}
		if r.progress != nil {
			r.progress.Update(accepted, rejected)
		}
	}

	return report, nil
}

// CreateSymLink registers a single link name
func (r *Registrar) CreateSymLink(ctx context.Context, baseDir, testResourceDir string, port int, linkName string) (domain.SymLinkResult, error) {
	return r.createSymLink(ctx, NewClient(port, r.clientOpts...), baseDir, testResourceDir, linkName)
}

func (r *Registrar) createSymLink(ctx context.Context, client *Client, baseDir, testResourceDir, linkName string) (domain.SymLinkResult, error) {
	linkPath, err := LinkPath(linkName, baseDir, testResourceDir)
	if err != nil {
		return domain.SymLinkResult{}, err
	}

	url := client.SymLinkURL(linkName, linkPath)
	r.logger.Infof("Calling %s", url)

	start := time.Now()
	code, err := client.Get(ctx, url, false)
	if err != nil {
		return domain.SymLinkResult{}, fmt.Errorf("create symlink %s: %w", linkName, err)
	}
	r.logger.Infof("Response code: %d", code)

	return domain.SymLinkResult{
		LinkName:   linkName,
		LinkPath:   linkPath,
		URL:        url,
		StatusCode: code,
		Duration:   time.Since(start),
	}, nil
}
