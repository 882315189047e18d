package v1

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/config"
	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/model"
	"github.com/ORBICITY-SYSTEM/orbi-city-hub-sub008/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		t.Fatalf("mkdir exports: %v", err)
	}

	s, err := store.New(filepath.Join(dataDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	cfg := config.DefaultConfig()
	handler := NewHandler(s, cfg, dataDir)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))
	return router, s
}

func seedDataset(t *testing.T, s *store.Store) {
	t.Helper()
	result := &model.RunResult{
		Records: []model.AllocationRecord{
			{Room: "A 100", Building: "A", Channel: "Booking.com",
				PeriodStart: "2025-03-20", PeriodEnd: "2025-03-25",
				Nights: 5, Revenue: 500.456, MonthKey: "2025-03"},
			{Room: "C 1510", Building: "C", Channel: "Agoda",
				PeriodStart: "2025-04-01", PeriodEnd: "2025-04-03",
				Nights: 2, Revenue: 200, MonthKey: "2025-04"},
		},
		MonthlyRoomCounts: []model.MonthlyRoomCount{
			{MonthKey: "2025-03", RoomCount: 1, Rooms: []string{"A 100"}},
			{MonthKey: "2025-04", RoomCount: 2, Rooms: []string{"A 100", "C 1510"}},
		},
		RoomFirstSeen: map[string]string{"A 100": "2025-03", "C 1510": "2025-04"},
	}
	if err := s.SaveRunResult("import-1", result); err != nil {
		t.Fatalf("SaveRunResult: %v", err)
	}
}

func doRequest(router *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetStatus_EmptyDataset(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/status", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Initialized || resp.TotalRecords != 0 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestGetStatus_Seeded(t *testing.T) {
	router, s := newTestRouter(t)
	seedDataset(t, s)

	w := doRequest(router, http.MethodGet, "/api/status", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Initialized || resp.TotalRecords != 2 || resp.UniqueRooms != 2 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.DateRange.Start != "2025-03-20" || resp.DateRange.End != "2025-04-01" {
		t.Fatalf("date range = %+v", resp.DateRange)
	}
}

func TestListRecords_FilterAndRounding(t *testing.T) {
	router, s := newTestRouter(t)
	seedDataset(t, s)

	w := doRequest(router, http.MethodGet, "/api/records?month=2025-03", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Total   int                      `json:"total"`
		Records []model.AllocationRecord `json:"records"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || len(resp.Records) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Records[0].Revenue != 500.46 {
		t.Fatalf("revenue = %v, want rounded 500.46", resp.Records[0].Revenue)
	}
}

func TestListMonths(t *testing.T) {
	router, s := newTestRouter(t)
	seedDataset(t, s)

	w := doRequest(router, http.MethodGet, "/api/months", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Months []store.MonthlyMetrics `json:"months"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Months) != 2 {
		t.Fatalf("months = %+v", resp.Months)
	}
	march := resp.Months[0]
	if march.MonthKey != "2025-03" || march.RoomCount != 1 {
		t.Fatalf("march = %+v", march)
	}
	// 5 nights over 1 room x 31 days, rounded for the response
	if march.OccupancyRate != 16.13 {
		t.Fatalf("occupancy = %v", march.OccupancyRate)
	}
}

func TestEntityEndpoints(t *testing.T) {
	router, s := newTestRouter(t)
	seedDataset(t, s)

	for _, path := range []string{"/api/rooms", "/api/channels", "/api/buildings"} {
		w := doRequest(router, http.MethodGet, path, nil, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", path, w.Code)
		}
		var resp map[string][]store.EntitySummary
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: decode: %v", path, err)
		}
		for _, entries := range resp {
			if len(entries) != 2 {
				t.Fatalf("%s: entries = %+v", path, entries)
			}
		}
	}
}

func TestImportEndpoint_StreamsProgress(t *testing.T) {
	router, s := newTestRouter(t)

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Room", "Channel", "Check-in", "Check-out", "Revenue"},
		{"A 100", "Booking.com", "2025-03-20", "2025-03-25", "500"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var workbook bytes.Buffer
	if _, err := f.WriteTo(&workbook); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "bookings.xlsx")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(workbook.Bytes()); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	w := doRequest(router, http.MethodPost, "/api/import", &body, mw.FormDataContentType())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), `"type":"done"`) {
		t.Fatalf("no done event in stream: %s", w.Body.String())
	}

	count, err := s.CountAllocations(store.AllocationQueryOptions{})
	if err != nil {
		t.Fatalf("CountAllocations: %v", err)
	}
	if count != 1 {
		t.Fatalf("got %d stored records, want 1", count)
	}
}

func TestImportEndpoint_NoFile(t *testing.T) {
	router, _ := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.Close()

	w := doRequest(router, http.MethodPost, "/api/import", &body, mw.FormDataContentType())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestExportAndDownload(t *testing.T) {
	router, s := newTestRouter(t)
	seedDataset(t, s)

	w := doRequest(router, http.MethodPost, "/api/export", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token    string `json:"token"`
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" || !strings.HasSuffix(resp.Filename, ".xlsx") {
		t.Fatalf("resp = %+v", resp)
	}

	dl := doRequest(router, http.MethodGet, "/api/export/download/"+resp.Token, nil, "")
	if dl.Code != http.StatusOK {
		t.Fatalf("download status = %d", dl.Code)
	}
	if cd := dl.Header().Get("Content-Disposition"); !strings.Contains(cd, "orbi-city-analysis-") {
		t.Fatalf("content disposition = %q", cd)
	}

	// tokens are one-shot
	again := doRequest(router, http.MethodGet, "/api/export/download/"+resp.Token, nil, "")
	if again.Code != http.StatusNotFound {
		t.Fatalf("reuse status = %d", again.Code)
	}
}

func TestUpdateConfig_RejectsBrokenPolicy(t *testing.T) {
	router, _ := newTestRouter(t)

	body := bytes.NewBufferString(`{"excludedPeriods":[{"from":"2025-13"}]}`)
	w := doRequest(router, http.MethodPatch, "/api/config", body, "application/json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestUpdateConfig_PartialBodyKeepsOtherFields(t *testing.T) {
	router, _ := newTestRouter(t)

	body := bytes.NewBufferString(`{"defaultChannel":"Direct"}`)
	w := doRequest(router, http.MethodPatch, "/api/config", body, "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp config.BusinessConfig
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.DefaultChannel != "Direct" {
		t.Fatalf("default channel = %q", resp.DefaultChannel)
	}
	if len(resp.BuildingPrefixes) != 4 {
		t.Fatalf("building prefixes zeroed: %v", resp.BuildingPrefixes)
	}
	if len(resp.CombinedUnits) != 2 {
		t.Fatalf("combined units zeroed: %v", resp.CombinedUnits)
	}
	if len(resp.ExcludedPeriods) != 2 {
		t.Fatalf("excluded periods zeroed: %v", resp.ExcludedPeriods)
	}
}

func TestUpdateConfig_RejectedBodyLeavesConfigUntouched(t *testing.T) {
	router, _ := newTestRouter(t)

	body := bytes.NewBufferString(`{"combinedUnits":{"A 9000-9002":["A 9000","A 9002"]},"excludedPeriods":[{"from":"2025-13"}]}`)
	w := doRequest(router, http.MethodPatch, "/api/config", body, "application/json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	get := doRequest(router, http.MethodGet, "/api/config", nil, "")
	var resp config.BusinessConfig
	if err := json.Unmarshal(get.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := resp.CombinedUnits["A 9000-9002"]; ok {
		t.Fatalf("rejected body leaked into config: %v", resp.CombinedUnits)
	}
}

func TestGetConfig(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/config", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp config.BusinessConfig
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.DefaultChannel != "Social Media" {
		t.Fatalf("resp = %+v", resp)
	}
}
