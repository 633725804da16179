// mkfixture writes a synthetic corpus of kdig output files for trying out
// kdigstats. A share of the files is deliberately unusable so the skip path
// is exercised too.
// Usage: go run ./cmd/mkfixture --out testdata/corpus --files 200 --bad 0.1
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type endpoint struct {
	server   string
	port     int
	protocol string
	// base latency in ms
	base float64
}

var endpoints = []endpoint{
	{"1.1.1.1", 53, "UDP", 8},
	{"8.8.8.8", 53, "UDP", 14},
	{"8.8.8.8", 53, "TCP", 22},
	{"9.9.9.9", 853, "TLS", 35},
	{"dns.google", 443, "HTTPS", 41},
	{"127.0.0.1", 5353, "UDP", 0.3},
}

var qnames = []string{"example.com.", "kernel.org.", "go.dev.", "wikipedia.org.", "ietf.org."}

func main() {
	out := flag.String("out", "testdata/corpus", "output directory")
	files := flag.Int("files", 200, "number of files to write")
	bad := flag.Float64("bad", 0.1, "fraction of files without a usable summary")
	retries := flag.Float64("retries", 0.15, "fraction of files with an earlier failed attempt")
	subdirs := flag.Int("subdirs", 0, "spread files over this many nested subdirectories")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	if err := os.MkdirAll(*out, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	counts := map[string]int{}
	when := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < *files; i++ {
		dir := *out
		if *subdirs > 0 {
			dir = filepath.Join(dir, fmt.Sprintf("batch-%02d", i%*subdirs))
			if err := os.MkdirAll(dir, 0755); err != nil {
				fmt.Fprintf(os.Stderr, "create subdir: %v\n", err)
				os.Exit(1)
			}
		}
		path := filepath.Join(dir, fmt.Sprintf("query-%04d.txt", i))
		when = when.Add(time.Duration(rng.Intn(120)) * time.Second)

		var body string
		switch {
		case rng.Float64() < *bad:
			body = unusable(rng)
			counts["unusable"]++
		default:
			ep := endpoints[rng.Intn(len(endpoints))]
			var b strings.Builder
			if rng.Float64() < *retries {
				b.WriteString(attempt(rng, endpoints[rng.Intn(len(endpoints))], when))
				b.WriteString("\n")
				counts["retried"]++
			}
			b.WriteString(attempt(rng, ep, when))
			body = b.String()
			counts[ep.protocol]++
		}

		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Wrote %d files to %s\n", *files, *out)
	fmt.Println("Distribution:")
	for _, k := range []string{"UDP", "TCP", "TLS", "HTTPS", "retried", "unusable"} {
		fmt.Printf("  %-10s %d\n", k, counts[k])
	}
}

// attempt renders one complete kdig answer block.
func attempt(rng *rand.Rand, ep endpoint, when time.Time) string {
	qname := qnames[rng.Intn(len(qnames))]
	answers := 1 + rng.Intn(4)
	size := 40 + answers*16 + rng.Intn(24)
	latency := ep.base * (0.6 + rng.Float64()*1.2)

	var b strings.Builder
	fmt.Fprintf(&b, ";; ->>HEADER<<- opcode: QUERY; status: NOERROR; id: %d\n", rng.Intn(65536))
	fmt.Fprintf(&b, ";; Flags: qr rd ra; QUERY: 1; ANSWER: %d; AUTHORITY: 0; ADDITIONAL: 1\n\n", answers)
	b.WriteString(";; EDNS PSEUDOSECTION:\n")
	b.WriteString(";; Version: 0; flags: ; UDP size: 1232 B; ext-rcode: NOERROR\n\n")
	b.WriteString(";; QUESTION SECTION:\n")
	fmt.Fprintf(&b, ";; %s\t\tIN\tA\n\n", qname)
	b.WriteString(";; ANSWER SECTION:\n")
	for a := 0; a < answers; a++ {
		fmt.Fprintf(&b, "%s\t%d\tIN\tA\t%d.%d.%d.%d\n", qname, 300+rng.Intn(3300),
			1+rng.Intn(223), rng.Intn(256), rng.Intn(256), 1+rng.Intn(254))
	}
	fmt.Fprintf(&b, "\n;; Received %d B\n", size)
	fmt.Fprintf(&b, ";; Time %s\n", when.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, ";; From %s@%d(%s) in %.1f ms\n", ep.server, ep.port, ep.protocol, latency)
	return b.String()
}

// unusable renders output that kdigstats must skip.
func unusable(rng *rand.Rand) string {
	switch rng.Intn(3) {
	case 0:
		return ";; WARNING: response timeout for 192.0.2.1@53(UDP)\n;; ERROR: failed to query server 192.0.2.1@53(UDP)\n"
	case 1:
		return fmt.Sprintf(";; Received %d B\n", 40+rng.Intn(100))
	default:
		return ""
	}
}
