package extract

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gyeh/kdigstats/internal/model"
)

const sampleOutput = `;; ->>HEADER<<- opcode: QUERY; status: NOERROR; id: 40213
;; Flags: qr rd ra; QUERY: 1; ANSWER: 1; AUTHORITY: 0; ADDITIONAL: 1

;; EDNS PSEUDOSECTION:
;; Version: 0; flags: ; UDP size: 1232 B; ext-rcode: NOERROR

;; QUESTION SECTION:
;; example.com.        		IN	A

;; ANSWER SECTION:
example.com.        	3600	IN	A	93.184.215.14

;; Received 56 B
;; Time 2024-05-01 10:12:44 UTC
;; From 9.9.9.9@53(UDP) in 18.4 ms
`

func TestExtract_Scenario(t *testing.T) {
	text := ";; From 127.0.0.1@53(UDP) in 12.5 ms\n;; Received 84 B\n"
	got, ok := Extract(text)
	if !ok {
		t.Fatal("expected a record")
	}
	want := model.Record{
		QueryTimeMS:       12.5,
		ResponseSizeBytes: 84,
		Server:            "127.0.0.1",
		Port:              53,
		Protocol:          "UDP",
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestExtract_FullKdigOutput(t *testing.T) {
	got, ok := Extract(sampleOutput)
	if !ok {
		t.Fatal("expected a record")
	}
	if got.Server != "9.9.9.9" || got.Port != 53 || got.Protocol != "UDP" {
		t.Errorf("unexpected endpoint: %+v", got)
	}
	if got.QueryTimeMS != 18.4 {
		t.Errorf("QueryTimeMS: got %v, want 18.4", got.QueryTimeMS)
	}
	// "UDP size: 1232 B" in the EDNS section must not be taken for the size.
	if got.ResponseSizeBytes != 56 {
		t.Errorf("ResponseSizeBytes: got %d, want 56", got.ResponseSizeBytes)
	}
}

func TestExtract_LastMatchWins(t *testing.T) {
	text := `;; Received 10 B
;; From 1.1.1.1@53(UDP) in 5.0 ms
;; Received 20 B
;; From 8.8.8.8@853(TLS) in 40.25 ms
`
	got, ok := Extract(text)
	if !ok {
		t.Fatal("expected a record")
	}
	want := model.Record{
		QueryTimeMS:       40.25,
		ResponseSizeBytes: 20,
		Server:            "8.8.8.8",
		Port:              853,
		Protocol:          "TLS",
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestExtract_Absent(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"received only", ";; Received 100 B\n"},
		{"from only", ";; From 127.0.0.1@53(UDP) in 1.0 ms\n"},
		{"unrelated text", "hello\nworld\n"},
		{"size overflows uint32", ";; Received 4294967296 B\n;; From 127.0.0.1@53(UDP) in 1.0 ms\n"},
		{"port overflows uint16", ";; Received 1 B\n;; From 127.0.0.1@65536(UDP) in 1.0 ms\n"},
		{"time not a number", ";; Received 1 B\n;; From 127.0.0.1@53(UDP) in 1.2.3 ms\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec, ok := Extract(tt.text); ok {
				t.Errorf("expected no record, got %+v", rec)
			}
		})
	}
}

func TestExtract_BadNumberKeepsEarlierValue(t *testing.T) {
	// The second From line updates server and protocol but its port does not
	// parse, so the port from the first line survives.
	text := `;; From 1.1.1.1@53(UDP) in 5.0 ms
;; From 2.2.2.2@99999(TCP) in 7.5 ms
;; Received 4294967296 B
;; Received 64 B
;; Received 4294967296 B
`
	got, ok := Extract(text)
	if !ok {
		t.Fatal("expected a record")
	}
	want := model.Record{
		QueryTimeMS:       7.5,
		ResponseSizeBytes: 64,
		Server:            "2.2.2.2",
		Port:              53,
		Protocol:          "TCP",
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestExtract_TrimsAndTolerates(t *testing.T) {
	text := ";;  From   dns.example.net @5353( TCP ) in 0.75 ms\r\n;;\tReceived\t512 B\r\n"
	got, ok := Extract(text)
	if !ok {
		t.Fatal("expected a record")
	}
	if got.Server != "dns.example.net" {
		t.Errorf("Server: got %q", got.Server)
	}
	if got.Protocol != "TCP" {
		t.Errorf("Protocol: got %q", got.Protocol)
	}
	if got.Port != 5353 || got.ResponseSizeBytes != 512 || got.QueryTimeMS != 0.75 {
		t.Errorf("unexpected numbers: %+v", got)
	}
}

func TestExtract_HugeTimeIsInfinite(t *testing.T) {
	text := ";; Received 10 B\n;; From 127.0.0.1@53(UDP) in " + strings.Repeat("9", 400) + " ms\n"
	got, ok := Extract(text)
	if !ok {
		t.Fatal("expected a record")
	}
	if !math.IsInf(got.QueryTimeMS, 1) {
		t.Errorf("QueryTimeMS: got %v, want +Inf", got.QueryTimeMS)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.txt")
	os.WriteFile(path, []byte(sampleOutput), 0644)

	rec, ok, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if !ok {
		t.Fatal("expected a record")
	}
	if rec.Source != path {
		t.Errorf("Source: got %q, want %q", rec.Source, path)
	}
}

func TestParseFile_NoData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.txt")
	os.WriteFile(path, []byte(";; Received 100 B\n"), 0644)

	_, ok, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if ok {
		t.Error("expected no record")
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, _, err := ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseFile_InvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.txt")
	os.WriteFile(path, []byte(sampleOutput+"\xff\xfe"), 0644)

	_, ok, err := ParseFile(path)
	if !errors.Is(err, ErrNotText) {
		t.Fatalf("expected ErrNotText, got %v", err)
	}
	if ok {
		t.Error("expected no record")
	}
}
