package sweep

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// stepRow is one per-step record as serialized: the fire-size and cluster
// lists are JSON-encoded inside their CSV columns.
type stepRow struct {
	Step     int
	Fires    []int
	Clusters []int
	Density  float64
}

func artifactName(kind string, params RunParams) string {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	return fmt.Sprintf("%s_param%d_%s_L%d_p%g_f%g_steps%d_id%d_%s.csv",
		kind, params.ParamID, params.Model, params.L, params.P, params.F, params.Steps, params.RunID, timestamp)
}

// writeFireSizes writes one fire size per row, chronological order.
func writeFireSizes(dir string, params RunParams, fires []int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("sweep: create output dir: %w", err)
	}
	path := filepath.Join(dir, artifactName("fires", params))
	fh, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("sweep: create %s: %w", path, err)
	}
	defer fh.Close()

	w := csv.NewWriter(fh)
	if err := w.Write([]string{"fire_size"}); err != nil {
		return "", err
	}
	for _, s := range fires {
		if err := w.Write([]string{strconv.Itoa(s)}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}

// writePerStep writes one row per tick: step index, JSON list of this step's
// fire sizes, JSON list of surviving cluster sizes, mean tree density before
// ignition.
func writePerStep(dir string, params RunParams, rows []stepRow) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("sweep: create output dir: %w", err)
	}
	path := filepath.Join(dir, artifactName("perstep", params))
	fh, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("sweep: create %s: %w", path, err)
	}
	defer fh.Close()

	w := csv.NewWriter(fh)
	if err := w.Write([]string{"step", "fires", "cluster_sizes", "mean_density_before"}); err != nil {
		return "", err
	}
	for _, row := range rows {
		fires, err := json.Marshal(emptyAsList(row.Fires))
		if err != nil {
			return "", err
		}
		clusters, err := json.Marshal(emptyAsList(row.Clusters))
		if err != nil {
			return "", err
		}
		record := []string{
			strconv.Itoa(row.Step),
			string(fires),
			string(clusters),
			strconv.FormatFloat(row.Density, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}

// WriteSummary writes the flat summary CSV for a finished sweep and returns
// its path.
func WriteSummary(dir string, results []Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("sweep: create output dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("summary_%s.csv", time.Now().UTC().Format("20060102T150405Z")))
	fh, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("sweep: create %s: %w", path, err)
	}
	defer fh.Close()

	w := csv.NewWriter(fh)
	header := []string{
		"model", "L", "p", "f", "steps", "suppress", "oak_ratio", "p_burn_oak", "spatial",
		"param_id", "run_id", "num_fires", "mean_size", "max_size", "remaining_trees",
		"raw_file", "perstep_file",
	}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, res := range results {
		p := res.Params
		record := []string{
			p.Model,
			strconv.Itoa(p.L),
			strconv.FormatFloat(p.P, 'g', -1, 64),
			strconv.FormatFloat(p.F, 'g', -1, 64),
			strconv.Itoa(p.Steps),
			strconv.Itoa(p.Suppress),
			strconv.FormatFloat(p.OakRatio, 'g', -1, 64),
			strconv.FormatFloat(p.PBurnOak, 'g', -1, 64),
			strconv.FormatBool(p.Spatial),
			strconv.Itoa(p.ParamID),
			strconv.Itoa(p.RunID),
			strconv.Itoa(res.NumFires),
			strconv.FormatFloat(res.MeanSize, 'g', -1, 64),
			strconv.Itoa(res.MaxSize),
			strconv.Itoa(res.RemainingTrees),
			res.RawFile,
			res.PerStepFile,
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}

// emptyAsList keeps empty slices encoding as [] instead of null.
func emptyAsList(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
