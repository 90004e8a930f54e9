// Package testutil enthält Hilfen für Tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"hufschlaeger.net/task-records/internal/config"
	apperDomain "hufschlaeger.net/task-records/internal/domain/apper"
)

const (
	TestProjectID = "test-project"
	TestPublicKey = "test-key"
)

// Op benennt eine Store-Operation für Fehlerinjektion und Aufrufzähler
type Op string

const (
	OpFetch  Op = "fetch"
	OpGet    Op = "get"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Fault beschreibt einen injizierten Fehler
type Fault struct {
	// ServiceMessage: Antwort success:false mit dieser Meldung
	ServiceMessage string
	// Transport: Antwort 502 ohne JSON-Body
	Transport bool
	// Record: einzelne Batch-Einträge scheitern mit diesem Ergebnis
	Record *apperDomain.RecordResult
	// IDs beschränkt Record auf diese IDs (update/delete); leer heißt alle
	IDs []int
}

type record map[string]interface{}

// FakeStore ist ein Record Store im Speicher mit dem Apper-HTTP-Protokoll
type FakeStore struct {
	Server *httptest.Server

	mu     sync.Mutex
	tables map[string]map[int]record
	nextID map[string]int
	faults map[Op]Fault
	calls  map[Op]int
	epoch  time.Time
}

// NewFakeStore startet den Server; danach Close aufrufen
func NewFakeStore() *FakeStore {
	s := &FakeStore{
		tables: make(map[string]map[int]record),
		nextID: make(map[string]int),
		faults: make(map[Op]Fault),
		calls:  make(map[Op]int),
		epoch:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *FakeStore) Close() {
	s.Server.Close()
}

// Config liefert eine Konfiguration, die auf den FakeStore zeigt
func (s *FakeStore) Config() *config.Config {
	return &config.Config{
		ProjectID: TestProjectID,
		PublicKey: TestPublicKey,
		BaseURL:   s.Server.URL,
		Timeout:   5 * time.Second,
	}
}

// Seed legt einen Datensatz an und liefert seine ID; ein Feld "Id" wird übernommen
func (s *FakeStore) Seed(table string, fields map[string]interface{}) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(table, normalize(fields))
}

// Record liefert eine Kopie des Datensatzes oder nil
func (s *FakeStore) Record(table string, id int) map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tables[table][id]
	if !ok {
		return nil
	}
	return copyRecord(rec)
}

// Count liefert die Anzahl der Datensätze einer Tabelle
func (s *FakeStore) Count(table string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables[table])
}

func (s *FakeStore) SetFault(op Op, f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = f
}

func (s *FakeStore) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[Op]Fault)
}

// Calls zählt, wie oft eine Operation angefragt wurde
func (s *FakeStore) Calls(op Op) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *FakeStore) handle(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-Apper-Project-Id") != TestProjectID || r.Header.Get("X-Apper-Public-Key") != TestPublicKey {
		writeJSON(w, http.StatusUnauthorized, apperDomain.Response{Message: "Invalid project credentials"})
		return
	}

	// /v1/tables/{table}/records[/{id}/query|/query]
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 4 || parts[0] != "v1" || parts[1] != "tables" || parts[3] != "records" {
		http.NotFound(w, r)
		return
	}
	table := parts[2]
	rest := parts[4:]

	var op Op
	var id int
	switch {
	case r.Method == http.MethodPost && len(rest) == 1 && rest[0] == "query":
		op = OpFetch
	case r.Method == http.MethodPost && len(rest) == 2 && rest[1] == "query":
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apperDomain.Response{Message: "Invalid record id"})
			return
		}
		op, id = OpGet, n
	case r.Method == http.MethodPost && len(rest) == 0:
		op = OpCreate
	case r.Method == http.MethodPatch && len(rest) == 0:
		op = OpUpdate
	case r.Method == http.MethodDelete && len(rest) == 0:
		op = OpDelete
	default:
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[op]++
	fault := s.faults[op]
	if fault.Transport {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream unavailable</html>"))
		return
	}
	if fault.ServiceMessage != "" {
		writeJSON(w, http.StatusOK, apperDomain.Response{Message: fault.ServiceMessage})
		return
	}

	switch op {
	case OpFetch:
		var params apperDomain.FetchParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			writeJSON(w, http.StatusBadRequest, apperDomain.Response{Message: "Invalid params"})
			return
		}
		s.fetch(w, table, params)
	case OpGet:
		var params apperDomain.FetchParams
		_ = json.NewDecoder(r.Body).Decode(&params)
		rec, ok := s.tables[table][id]
		if !ok {
			writeJSON(w, http.StatusOK, apperDomain.Response{Success: true, Data: json.RawMessage("null")})
			return
		}
		writeJSON(w, http.StatusOK, apperDomain.Response{Success: true, Data: mustJSON(project(rec, params.Fields))})
	case OpCreate, OpUpdate:
		var req struct {
			Records []map[string]interface{} `json:"records"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, apperDomain.Response{Message: "Invalid records"})
			return
		}
		results := make([]apperDomain.RecordResult, 0, len(req.Records))
		for _, in := range req.Records {
			results = append(results, s.write(op, table, record(in), fault))
		}
		writeJSON(w, http.StatusOK, apperDomain.Response{Success: true, Results: results})
	case OpDelete:
		var req apperDomain.DeleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, apperDomain.Response{Message: "Invalid record ids"})
			return
		}
		results := make([]apperDomain.RecordResult, 0, len(req.RecordIDs))
		for _, rid := range req.RecordIDs {
			if fault.Record != nil && matchesID(fault.IDs, rid) {
				results = append(results, *fault.Record)
				continue
			}
			if _, ok := s.tables[table][rid]; !ok {
				results = append(results, apperDomain.RecordResult{Message: fmt.Sprintf("Record with Id %d does not exist", rid)})
				continue
			}
			delete(s.tables[table], rid)
			results = append(results, apperDomain.RecordResult{Success: true})
		}
		writeJSON(w, http.StatusOK, apperDomain.Response{Success: true, Results: results})
	}
}

func (s *FakeStore) fetch(w http.ResponseWriter, table string, params apperDomain.FetchParams) {
	rows := make([]record, 0, len(s.tables[table]))
	for _, rec := range s.tables[table] {
		rows = append(rows, rec)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return idOf(rows[i]) < idOf(rows[j])
	})
	for k := len(params.OrderBy) - 1; k >= 0; k-- {
		ob := params.OrderBy[k]
		sort.SliceStable(rows, func(i, j int) bool {
			c := compare(rows[i][ob.FieldName], rows[j][ob.FieldName])
			if strings.EqualFold(ob.SortType, apperDomain.SortDesc) {
				return c > 0
			}
			return c < 0
		})
	}

	if p := params.PagingInfo; p != nil {
		start := min(p.Offset, len(rows))
		end := len(rows)
		if p.Limit > 0 {
			end = min(start+p.Limit, len(rows))
		}
		rows = rows[start:end]
	}

	out := make([]record, 0, len(rows))
	for _, rec := range rows {
		out = append(out, project(rec, params.Fields))
	}
	writeJSON(w, http.StatusOK, apperDomain.Response{Success: true, Data: mustJSON(out)})
}

func (s *FakeStore) write(op Op, table string, in record, fault Fault) apperDomain.RecordResult {
	in = normalize(in)
	if fault.Record != nil && (op == OpCreate || matchesID(fault.IDs, idOf(in))) {
		return *fault.Record
	}

	if op == OpCreate {
		delete(in, "Id")
		id := s.insert(table, in)
		return apperDomain.RecordResult{Success: true, Data: mustJSON(s.tables[table][id])}
	}

	id := idOf(in)
	existing, ok := s.tables[table][id]
	if !ok {
		return apperDomain.RecordResult{Message: fmt.Sprintf("Record with Id %d does not exist", id)}
	}
	for k, v := range in {
		existing[k] = v
	}
	return apperDomain.RecordResult{Success: true, Data: mustJSON(existing)}
}

// insert erwartet, dass s.mu gehalten wird
func (s *FakeStore) insert(table string, rec record) int {
	if s.tables[table] == nil {
		s.tables[table] = make(map[int]record)
	}
	id := idOf(rec)
	if id == 0 {
		s.nextID[table]++
		id = s.nextID[table]
	} else if id > s.nextID[table] {
		s.nextID[table] = id
	}
	rec["Id"] = float64(id)
	if _, ok := rec["created_at_c"]; !ok && table != "category_c" {
		rec["created_at_c"] = s.epoch.Add(time.Duration(id) * time.Minute).Format(time.RFC3339)
	}
	s.tables[table][id] = rec
	return id
}

func matchesID(ids []int, id int) bool {
	if len(ids) == 0 {
		return true
	}
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func idOf(rec record) int {
	if v, ok := rec["Id"].(float64); ok {
		return int(v)
	}
	return 0
}

func project(rec record, fields []apperDomain.Field) record {
	if len(fields) == 0 {
		return copyRecord(rec)
	}
	out := make(record, len(fields))
	for _, f := range fields {
		if v, ok := rec[f.Field.Name]; ok {
			out[f.Field.Name] = v
		}
	}
	return out
}

func compare(a, b interface{}) int {
	fa, okA := a.(float64)
	fb, okB := b.(float64)
	if okA && okB {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

// normalize schickt die Werte einmal durch JSON, damit sie dekodierten Werten gleichen
func normalize(in map[string]interface{}) record {
	var out record
	_ = json.Unmarshal(mustJSON(in), &out)
	if out == nil {
		out = record{}
	}
	return out
}

func copyRecord(rec record) record {
	out := make(record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func mustJSON(v interface{}) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
