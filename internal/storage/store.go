package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/embersim/internal/sim"
)

const (
	metadataFile  = "metadata.json"
	seriesFile    = "series.csv"
	stagingPrefix = ".staging-"
)

// Store keeps one directory per headless run under baseDir.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	Energy       float64            `json:"energy"`
	Seed         int64              `json:"seed"`
	Dt           float64            `json:"dt"`
	Ticks        int                `json:"ticks"`
	Phase        string             `json:"phase"`
	MaxParticles int                `json:"max_particles"`
	Spawned      uint64             `json:"spawned"`
	Retired      uint64             `json:"retired"`
	Evicted      uint64             `json:"evicted"`
	FlickerHz    float64            `json:"flicker_hz"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes meta and the per-tick series of result. A missing ID or
// timestamp is filled in; the stored ID is returned.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.Metrics == nil {
		meta.Metrics = result.Metrics
	}
	meta.Ticks = result.TicksRun

	if err := s.Init(); err != nil {
		return "", err
	}

	// A run becomes visible to List only once both files are complete.
	staging, err := os.MkdirTemp(s.baseDir, stagingPrefix)
	if err != nil {
		return "", err
	}
	if err := writeRun(staging, meta, result); err != nil {
		os.RemoveAll(staging)
		return "", err
	}
	if err := os.Rename(staging, filepath.Join(s.baseDir, meta.ID)); err != nil {
		os.RemoveAll(staging)
		return "", fmt.Errorf("run %s: %w", meta.ID, err)
	}

	return meta.ID, nil
}

func writeRun(dir string, meta RunMetadata, result *sim.Result) error {
	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	if err := metaFile.Close(); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(dir, seriesFile))
	if err != nil {
		return err
	}
	if err := writeSeries(csv.NewWriter(csvFile), result); err != nil {
		csvFile.Close()
		return err
	}
	return csvFile.Close()
}

func writeSeries(w *csv.Writer, result *sim.Result) error {
	if err := w.Write([]string{"tick", "population", "spawned"}); err != nil {
		return err
	}
	for i, pop := range result.Population {
		spawned := 0
		if i < len(result.Spawns) {
			spawned = result.Spawns[i]
		}
		row := []string{strconv.Itoa(i + 1), strconv.Itoa(pop), strconv.Itoa(spawned)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSeries reads back the per-tick population and spawn counts.
func (s *Store) LoadSeries(runID string) (population, spawns []int, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []int{}, []int{}, nil
	}

	population = make([]int, 0, len(records)-1)
	spawns = make([]int, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		pop, err1 := strconv.Atoi(record[1])
		sp, err2 := strconv.Atoi(record[2])
		if err1 != nil || err2 != nil {
			continue
		}
		population = append(population, pop)
		spawns = append(spawns, sp)
	}
	return population, spawns, nil
}
