package model

import "sort"

// QueryTimeStats summarizes query latencies in milliseconds.
type QueryTimeStats struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// ResponseSizeStats summarizes response sizes in bytes.
type ResponseSizeStats struct {
	Min    uint32
	Max    uint32
	Mean   float64
	Median float64
	Sum    uint64
}

// Report is the aggregate view over every Record of a run.
type Report struct {
	Total        int
	QueryTime    QueryTimeStats
	ResponseSize ResponseSizeStats
	// Servers counts records per "server:port" key.
	Servers map[string]int
	// Protocols counts records per raw protocol label.
	Protocols map[string]int
}

// GroupCount is one entry of a ranked grouping.
type GroupCount struct {
	Key   string
	Count int
}

// Rank orders a grouping by descending count. Equal counts are ordered by
// ascending key so output is reproducible.
func Rank(groups map[string]int) []GroupCount {
	out := make([]GroupCount, 0, len(groups))
	for k, n := range groups {
		out = append(out, GroupCount{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// RankedServers returns the server grouping in display order.
func (r *Report) RankedServers() []GroupCount {
	return Rank(r.Servers)
}

// RankedProtocols returns the protocol grouping in display order.
func (r *Report) RankedProtocols() []GroupCount {
	return Rank(r.Protocols)
}
