package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

var (
	baseURL      = flag.String("url", "http://127.0.0.1:8090", "server base url")
	numWorkers   = flag.Int("workers", 50, "concurrent workers")
	testDuration = flag.Duration("duration", 10*time.Second, "duration of each phase")
)

var (
	listingIDs   = []string{"1", "2", "3", "4"}
	searchTerms  = []string{"photo", "game", "music", "pro", "editor", "zz"}
	categoryArgs = []string{"", "Games", "Music", "Photography", "Productivity"}
	sortArgs     = []string{"popular", "newest", "rating"}
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

type scenario struct {
	weight float64
	run    func(rng *rand.Rand) result
}

func main() {
	flag.Parse()

	fmt.Println("=== DropXHub Load Test ===")
	fmt.Printf("Target: %s | Workers: %d | Phase: %s\n\n", *baseURL, *numWorkers, *testDuration)

	fmt.Print("Waiting for server... ")
	if !waitForServer() {
		fmt.Println("FAILED: server not responding")
		return
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Browsing (GET only) ---")
	runPhase(*testDuration, pick(
		scenario{0.35, doList},
		scenario{0.25, doDetail},
		scenario{0.20, doSearch},
		scenario{0.10, doTrending},
		scenario{0.10, doCategories},
	))

	fmt.Println("\n--- Phase 2: Mixed load (80% GET, 20% POST) ---")
	runPhase(*testDuration, pick(
		scenario{0.30, doList},
		scenario{0.20, doDetail},
		scenario{0.20, doSearch},
		scenario{0.10, doTrending},
		scenario{0.15, doDownload},
		scenario{0.05, doReview},
	))

	fmt.Println("\n--- Phase 3: Write-heavy load (50% POST) ---")
	runPhase(*testDuration, pick(
		scenario{0.30, doList},
		scenario{0.20, doDetail},
		scenario{0.35, doDownload},
		scenario{0.15, doReview},
	))
}

func waitForServer() bool {
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			drain(resp)
			return true
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

// pick returns a work function choosing a scenario by cumulative weight.
func pick(scenarios ...scenario) func(rng *rand.Rand) result {
	return func(rng *rand.Rand) result {
		r := rng.Float64()
		for _, s := range scenarios {
			if r < s.weight {
				return s.run(rng)
			}
			r -= s.weight
		}
		return scenarios[len(scenarios)-1].run(rng)
	}
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
					totalOps.Add(1)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps, totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-24s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 90))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-24s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	fmt.Println("  " + strings.Repeat("-", 90))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func doList(rng *rand.Rand) result {
	q := url.Values{}
	if c := categoryArgs[rng.Intn(len(categoryArgs))]; c != "" {
		q.Set("category", c)
	}
	q.Set("sort", sortArgs[rng.Intn(len(sortArgs))])
	return get("GET /listings", "/listings?"+q.Encode())
}

func doDetail(rng *rand.Rand) result {
	return get("GET /listing", "/listing?id="+randomID(rng))
}

func doSearch(rng *rand.Rand) result {
	return get("GET /search", "/search?q="+url.QueryEscape(searchTerms[rng.Intn(len(searchTerms))]))
}

func doTrending(_ *rand.Rand) result {
	return get("GET /trending", "/trending?limit=5")
}

func doCategories(_ *rand.Rand) result {
	return get("GET /categories", "/categories")
}

func doDownload(rng *rand.Rand) result {
	return post("POST /listing/download", "/listing/download?id="+randomID(rng), nil, http.StatusOK)
}

func doReview(rng *rand.Rand) result {
	body := map[string]interface{}{
		"appId":    randomID(rng),
		"username": fmt.Sprintf("load_%d", rng.Intn(1000)),
		"rating":   rng.Intn(5) + 1,
		"comment":  "load test review",
	}
	return post("POST /review", "/review", body, http.StatusCreated)
}

func randomID(rng *rand.Rand) string {
	return listingIDs[rng.Intn(len(listingIDs))]
}

func get(name, path string) result {
	start := time.Now()
	resp, err := httpClient.Get(*baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{name, 0, lat, true}
	}
	drain(resp)
	return result{name, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func post(name, path string, body interface{}, want int) result {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	start := time.Now()
	resp, err := httpClient.Post(*baseURL+path, "application/json", bytes.NewReader(payload))
	lat := time.Since(start)
	if err != nil {
		return result{name, 0, lat, true}
	}
	drain(resp)
	return result{name, resp.StatusCode, lat, resp.StatusCode != want}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
