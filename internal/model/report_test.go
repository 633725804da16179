package model

import "testing"

func TestRank_DescendingCountThenKey(t *testing.T) {
	got := Rank(map[string]int{
		"1.1.1.1:53": 1,
		"8.8.8.8:53": 2,
		"9.9.9.9:53": 1,
	})
	want := []GroupCount{
		{Key: "8.8.8.8:53", Count: 2},
		{Key: "1.1.1.1:53", Count: 1},
		{Key: "9.9.9.9:53", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRank_Empty(t *testing.T) {
	if got := Rank(nil); len(got) != 0 {
		t.Errorf("expected empty ranking, got %v", got)
	}
}

func TestServerKey(t *testing.T) {
	r := Record{Server: "dns.example.net", Port: 853}
	if got := r.ServerKey(); got != "dns.example.net:853" {
		t.Errorf("ServerKey: got %q", got)
	}
}

func TestParquetRecord_RoundTrip(t *testing.T) {
	in := Record{
		QueryTimeMS:       12.5,
		ResponseSizeBytes: 4000000000,
		Server:            "127.0.0.1",
		Port:              65535,
		Protocol:          "UDP",
		Source:            "a.txt",
	}
	if out := in.ToParquet().Record(); out != in {
		t.Errorf("round trip: got %+v, want %+v", out, in)
	}
}

func TestParquetRecord_ClampsOutOfRange(t *testing.T) {
	p := ParquetRecord{ResponseSizeBytes: -5, Port: 70000}
	r := p.Record()
	if r.ResponseSizeBytes != 0 {
		t.Errorf("ResponseSizeBytes: got %d, want 0", r.ResponseSizeBytes)
	}
	if r.Port != 65535 {
		t.Errorf("Port: got %d, want 65535", r.Port)
	}
}
