package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"finhealth/pkg/core/calc"
	"finhealth/pkg/core/pipeline"
	"finhealth/pkg/core/statement"
	"finhealth/pkg/core/table"
)

func testAnalyzer(readErr error) *pipeline.Analyzer {
	a := pipeline.NewAnalyzer(nil)
	a.SetReader(func(path string) (map[string]*table.Statement, error) {
		if readErr != nil {
			return nil, readErr
		}
		return map[string]*table.Statement{
			statement.SheetIncome: {
				Name:  statement.SheetIncome,
				Years: []string{"2024"},
				Lines: []table.Line{
					{Field: calc.LineRevenue, Values: map[string]float64{"2024": 1000}},
					{Field: calc.LineNetProfit, Values: map[string]float64{"2024": 100}},
				},
			},
			statement.SheetBalance: {
				Name:  statement.SheetBalance,
				Years: []string{"2024"},
				Lines: []table.Line{
					{Field: calc.LineCurrentAssets, Values: map[string]float64{"2024": 500}},
				},
			},
		}, nil
	})
	return a
}

func multipartRequest(t *testing.T, filenames []string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range filenames {
		part, err := mw.CreateFormFile("file", name)
		if err != nil {
			t.Fatalf("CreateFormFile: %v", err)
		}
		// Content is irrelevant: the test analyzer's reader is stubbed.
		fmt.Fprint(part, "stub")
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/api/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req.WithContext(context.Background())
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	h := NewHandler(testAnalyzer(nil))
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, multipartRequest(t, []string{"fy2024.xlsx"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result pipeline.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if result.DetectedFiscalYear != "2024" {
		t.Errorf("Expected detected year 2024, got %q", result.DetectedFiscalYear)
	}
}

func TestHandleAnalyzeRejectsBadExtension(t *testing.T) {
	h := NewHandler(testAnalyzer(nil))
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, multipartRequest(t, []string{"notes.csv"}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
		t.Errorf("Expected error body, got %s", rec.Body.String())
	}
}

func TestHandleAnalyzeRejectsTooManyFiles(t *testing.T) {
	h := NewHandler(testAnalyzer(nil))
	rec := httptest.NewRecorder()

	names := make([]string, MaxFiles+1)
	for i := range names {
		names[i] = fmt.Sprintf("f%d.xlsx", i)
	}
	h.HandleAnalyze(rec, multipartRequest(t, names))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}

func TestHandleAnalyzeNoFiles(t *testing.T) {
	h := NewHandler(testAnalyzer(nil))
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, multipartRequest(t, nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}

func TestHandleAnalyzePipelineFailure(t *testing.T) {
	h := NewHandler(testAnalyzer(fmt.Errorf("corrupt workbook")))
	rec := httptest.NewRecorder()

	h.HandleAnalyze(rec, multipartRequest(t, []string{"fy2024.xlsx"}))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Error == "" {
		t.Errorf("Expected error body, got %s", rec.Body.String())
	}
}
