package evalsource

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/featureconfig/pkg/feature"
)

// FileConfig configures the local file evaluation source.
type FileConfig struct {
	Path string `env:"FILE_PATH" envDefault:"feature-evaluations.yaml"`
}

// FileFetcher reads evaluations from a local YAML (or JSON) document with the
// same shape as the service response. It's meant for development and offline
// runs; the file is read on every fetch so edits are picked up by a refresh.
type FileFetcher struct {
	path string
}

var _ feature.Fetcher = (*FileFetcher)(nil)

// NewFileFetcher creates a file source.
func NewFileFetcher(cfg FileConfig) (*FileFetcher, error) {
	if cfg.Path == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("file path is required"))
	}
	return &FileFetcher{path: cfg.Path}, nil
}

// FetchEvaluations reads and decodes the file.
func (f *FileFetcher) FetchEvaluations(ctx context.Context) ([]feature.RawEvaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Join(ErrDocumentNotFound, err)
		}
		return nil, errors.Join(ErrRequestFailed, err)
	}

	// Same rule as decodeDocument: a missing list means a broken or half-written file.
	var doc struct {
		FeatureEvaluations *[]feature.RawEvaluation `yaml:"featureEvaluations"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrMalformedResponse, err)
	}
	if doc.FeatureEvaluations == nil {
		return nil, errors.Join(ErrMalformedResponse, errors.New("missing featureEvaluations"))
	}
	return *doc.FeatureEvaluations, nil
}
