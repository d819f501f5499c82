// Package app holds the application services behind the two UIs. Each
// service owns one recompute-from-scratch flow: clean the raw table, run
// the statistical routines, and shape results for rendering. Services are
// stateless apart from a snapshot cache keyed by the request parameters.
package app

import (
	"context"
	"fmt"
	"sync"

	"penguinlab/adapters/charts"
	"penguinlab/adapters/stats/cluster"
	"penguinlab/adapters/stats/pca"
	"penguinlab/adapters/stats/prep"
	"penguinlab/domain/dataset"
	"penguinlab/internal"
	"penguinlab/internal/config"
	"penguinlab/internal/errors"

	"golang.org/x/sync/errgroup"
)

// ExplorerParams selects one explorer recomputation.
type ExplorerParams struct {
	K       int
	Scale   bool
	ColorBy string // "cluster" or "species"
}

func (p ExplorerParams) fingerprint() string {
	return fmt.Sprintf("k=%d scale=%t", p.K, p.Scale)
}

// ExplorerResult is a computed PCA + clustering snapshot.
type ExplorerResult struct {
	Params   ExplorerParams
	PCA      *pca.Result
	Clusters *cluster.Result
	Table    *dataset.Table // cleaned table with the derived cluster column
	Report   *prep.ImputationReport
}

// ExplorerService computes PCA and k-means snapshots of the dataset.
type ExplorerService struct {
	source *dataset.Table
	cfg    config.AnalysisConfig
	logger *internal.Logger

	mu    sync.RWMutex
	cache map[string]*ExplorerResult
}

// NewExplorerService creates the explorer service over the raw table.
func NewExplorerService(source *dataset.Table, cfg config.AnalysisConfig, logger *internal.Logger) *ExplorerService {
	return &ExplorerService{
		source: source,
		cfg:    cfg,
		logger: logger,
		cache:  make(map[string]*ExplorerResult),
	}
}

// Defaults returns the parameters the explorer page opens with
func (s *ExplorerService) Defaults() ExplorerParams {
	return ExplorerParams{K: s.cfg.DefaultClusters, Scale: s.cfg.ScaleByDefault, ColorBy: "cluster"}
}

// MaxClusters returns the largest selectable cluster count
func (s *ExplorerService) MaxClusters() int {
	return s.cfg.MaxClusters
}

// Compute recomputes the explorer snapshot for the given parameters. The
// flow is deterministic: same table, parameters and seed yield the same
// result, so identical requests are served from the snapshot cache.
func (s *ExplorerService) Compute(ctx context.Context, params ExplorerParams) (*ExplorerResult, error) {
	if params.K < 2 || params.K > s.cfg.MaxClusters {
		return nil, errors.InvalidInput(fmt.Sprintf("cluster count must be between 2 and %d", s.cfg.MaxClusters))
	}

	key := params.fingerprint()
	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		result := *cached
		result.Params = params
		return &result, nil
	}

	cleaned, report, err := prep.Clean(s.source)
	if err != nil {
		return nil, err
	}

	working := cleaned
	if params.Scale {
		working = cleaned.Clone()
		if err := prep.ZScore(working, dataset.Measurements); err != nil {
			return nil, err
		}
	}

	rows, err := working.Matrix(dataset.Measurements)
	if err != nil {
		return nil, errors.DatasetError("failed to extract measurement matrix", err)
	}

	// PCA and clustering are independent given the matrix.
	var pcaResult *pca.Result
	var clusterResult *cluster.Result
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pcaResult, err = pca.Fit(rows, dataset.Measurements)
		return err
	})
	g.Go(func() error {
		var err error
		clusterResult, err = cluster.Run(rows, cluster.Config{
			K:       params.K,
			MaxIter: s.cfg.MaxIterations,
			Seed:    s.cfg.ClusterSeed,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	augmented := cleaned.Clone()
	if err := augmented.AddCategorical(dataset.ColCluster, clusterResult.Labels()); err != nil {
		return nil, errors.DatasetError("failed to attach cluster column", err)
	}

	result := &ExplorerResult{
		Params:   params,
		PCA:      pcaResult,
		Clusters: clusterResult,
		Table:    augmented,
		Report:   report,
	}

	s.mu.Lock()
	s.cache[key] = result
	s.mu.Unlock()

	s.logger.Info("explorer snapshot computed: %s, inertia=%.2f, %d iterations",
		key, clusterResult.Inertia, clusterResult.Iterations)
	return result, nil
}

// GroupedScores splits the first two (or three) component scores into
// series by cluster label or species, ready for the scatter charts.
func (s *ExplorerService) GroupedScores(result *ExplorerResult, dims int) (charts.GroupedPoints, error) {
	if result.PCA.Components() < dims {
		return charts.GroupedPoints{}, errors.ComputeError(
			fmt.Sprintf("PCA retained %d components, need %d", result.PCA.Components(), dims), nil)
	}

	groupCol := dataset.ColCluster
	if result.Params.ColorBy == "species" {
		groupCol = dataset.ColSpecies
	}
	col, err := result.Table.Column(groupCol)
	if err != nil {
		return charts.GroupedPoints{}, err
	}

	byName := make(map[string]*charts.PointGroup)
	var order []string
	for i, label := range col.Labels {
		group, ok := byName[label]
		if !ok {
			group = &charts.PointGroup{Name: label}
			byName[label] = group
			order = append(order, label)
		}
		group.X = append(group.X, result.PCA.Scores[i][0])
		group.Y = append(group.Y, result.PCA.Scores[i][1])
		if dims >= 3 {
			group.Z = append(group.Z, result.PCA.Scores[i][2])
		}
	}

	points := charts.GroupedPoints{
		XLabel: charts.AxisLabel(1, result.PCA.Proportion[0]),
		YLabel: charts.AxisLabel(2, result.PCA.Proportion[1]),
	}
	for _, name := range order {
		points.Groups = append(points.Groups, *byName[name])
	}
	return points, nil
}
