package storage

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/physmodel/internal/experiment"
	"github.com/san-kum/physmodel/internal/physmodel"
)

func sampleResult() *experiment.Result {
	return &experiment.Result{
		Model:       "Heat",
		Instance:    "plate",
		Dimension:   2,
		NbEquations: 1,
		Convective:  "Null",
		Diffusive:   "Heat",
		Source:      "Null",
		States: []physmodel.State{
			{300},
			{math.NaN()},
			{-1},
		},
		Valid:    []bool{true, false, false},
		Rejected: 2,
		PhysicalData: map[string]float64{
			"diffusivity": 0.5,
			"broken":      math.Inf(1),
		},
		Reference: []float64{300},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	reportID, err := st.Save(sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if reportID == "" {
		t.Error("expected non-empty report id")
	}

	meta, err := st.Load(reportID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Model != "Heat" || meta.Instance != "plate" {
		t.Errorf("unexpected identity: %s/%s", meta.Model, meta.Instance)
	}
	if meta.Checked != 3 || meta.Rejected != 2 {
		t.Errorf("expected 3 checked / 2 rejected, got %d / %d", meta.Checked, meta.Rejected)
	}
	if meta.PhysicalData["diffusivity"] != 0.5 {
		t.Errorf("expected diffusivity 0.5, got %v", meta.PhysicalData)
	}
	if _, ok := meta.PhysicalData["broken"]; ok {
		t.Error("non-finite physical data should be dropped")
	}

	states, valid, err := st.LoadStates(reportID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 3 || len(valid) != 3 {
		t.Fatalf("expected 3 rows, got %d/%d", len(states), len(valid))
	}
	if states[0][0] != 300 || !valid[0] {
		t.Errorf("unexpected first row: %v %v", states[0], valid[0])
	}
	if !math.IsNaN(states[1][0]) || valid[1] {
		t.Errorf("NaN row not preserved: %v %v", states[1], valid[1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(sampleResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	reports, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reports) != 2 {
		t.Errorf("expected 2 reports, got %d", len(reports))
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	reports, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected no reports, got %d", len(reports))
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	if err := ExportJSON(path, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var out struct {
		Model  string       `json:"model"`
		States [][]*float64 `json:"states"`
		Valid  []bool       `json:"valid"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if out.Model != "Heat" || len(out.States) != 3 || len(out.Valid) != 3 {
		t.Errorf("unexpected export: %+v", out)
	}
	if out.States[1][0] != nil {
		t.Error("NaN component should export as null")
	}
	if out.States[2][0] == nil || *out.States[2][0] != -1 {
		t.Error("finite component lost")
	}
}
