package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/physmodel/internal/experiment"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// ReportMetadata describes one saved check.
type ReportMetadata struct {
	ID           string             `json:"id"`
	Model        string             `json:"model"`
	Instance     string             `json:"instance"`
	Timestamp    time.Time          `json:"timestamp"`
	FellBack     bool               `json:"fell_back"`
	Dimension    int                `json:"dimension"`
	NbEquations  int                `json:"nb_equations"`
	Convective   string             `json:"convective"`
	Diffusive    string             `json:"diffusive"`
	Source       string             `json:"source"`
	Checked      int                `json:"checked"`
	Rejected     int                `json:"rejected"`
	PhysicalData map[string]float64 `json:"physical_data,omitempty"`
	Reference    []float64          `json:"reference,omitempty"`
}

// Save writes metadata.json and states.csv under a new report directory
// and returns the report id.
func (s *Store) Save(result *experiment.Result) (string, error) {
	now := time.Now()
	reportID := fmt.Sprintf("%s_%d", result.Model, now.UnixNano())
	reportDir := filepath.Join(s.baseDir, reportID)

	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", err
	}

	meta := ReportMetadata{
		ID:           reportID,
		Model:        result.Model,
		Instance:     result.Instance,
		Timestamp:    now,
		FellBack:     result.FellBack,
		Dimension:    result.Dimension,
		NbEquations:  result.NbEquations,
		Convective:   result.Convective,
		Diffusive:    result.Diffusive,
		Source:       result.Source,
		Checked:      len(result.Valid),
		Rejected:     result.Rejected,
		PhysicalData: finiteMap(result.PhysicalData),
		Reference:    finiteSlice(result.Reference),
	}

	if err := writeJSON(filepath.Join(reportDir, "metadata.json"), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(reportDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	width := 0
	for _, st := range result.States {
		if len(st) > width {
			width = len(st)
		}
	}
	header := []string{"index", "valid"}
	for i := 0; i < width; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, st := range result.States {
		row := []string{strconv.Itoa(i), strconv.FormatBool(result.Valid[i])}
		for _, val := range st {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return reportID, nil
}

// List returns every saved report, oldest first.
func (s *Store) List() ([]ReportMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ReportMetadata{}, nil
		}
		return nil, err
	}

	reports := make([]ReportMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		reports = append(reports, *meta)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Timestamp.Before(reports[j].Timestamp)
	})
	return reports, nil
}

func (s *Store) Load(reportID string) (*ReportMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, reportID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta ReportMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadStates reads back the checked states and their verdicts.
func (s *Store) LoadStates(reportID string) ([][]float64, []bool, error) {
	file, err := os.Open(filepath.Join(s.baseDir, reportID, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, []bool{}, nil
	}

	states := make([][]float64, 0, len(records)-1)
	valid := make([]bool, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		ok, err := strconv.ParseBool(record[1])
		if err != nil {
			return nil, nil, fmt.Errorf("report %s: bad verdict %q: %w", reportID, record[1], err)
		}

		state := make([]float64, 0, len(record)-2)
		for _, field := range record[2:] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("report %s: bad value %q: %w", reportID, field, err)
			}
			state = append(state, val)
		}
		states = append(states, state)
		valid = append(valid, ok)
	}

	return states, valid, nil
}

// ExportJSON writes the full result, states included, to path. Non-finite
// state components are written as null.
func ExportJSON(path string, result *experiment.Result) error {
	type export struct {
		ReportMetadata
		States [][]*float64 `json:"states"`
		Valid  []bool       `json:"valid"`
	}

	data := export{
		ReportMetadata: ReportMetadata{
			Model:        result.Model,
			Instance:     result.Instance,
			FellBack:     result.FellBack,
			Dimension:    result.Dimension,
			NbEquations:  result.NbEquations,
			Convective:   result.Convective,
			Diffusive:    result.Diffusive,
			Source:       result.Source,
			Checked:      len(result.Valid),
			Rejected:     result.Rejected,
			PhysicalData: finiteMap(result.PhysicalData),
			Reference:    finiteSlice(result.Reference),
		},
		States: make([][]*float64, len(result.States)),
		Valid:  result.Valid,
	}
	for i, st := range result.States {
		row := make([]*float64, len(st))
		for j, v := range st {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				row[j] = &v
			}
		}
		data.States[i] = row
	}

	return writeJSON(path, data)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// JSON has no encoding for NaN or Inf; such entries are dropped.
func finiteMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}

func finiteSlice(vs []float64) []float64 {
	if vs == nil {
		return nil
	}
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
