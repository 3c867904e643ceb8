//go:build test

package mem

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/storekit/shopsearch/pkg/catalog"
	"github.com/storekit/shopsearch/pkg/search"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var testQueries = []string{
	"m", "mu", "mug", "mugs",
	"c", "co", "cof", "coffee", "coffee mugs",
	"r", "re", "red", "red mug",
	"t", "tr", "travel", "travel mug",
	"s", "sh", "shirt", "t-shirt",
	"xyzzy", "item", "aisle",
}

func buildTree(categories, productsPer int) *catalog.Tree {
	var tree catalog.Tree
	product := 0
	for c := 0; c < categories; c++ {
		var prods []catalog.TreeNode
		for p := 0; p < productsPer; p++ {
			product++
			prods = append(prods, catalog.TreeNode{
				ID:   fmt.Sprintf("p%d", product),
				Name: fmt.Sprintf("Item %02d", product),
				URL:  fmt.Sprintf("/p/item-%d", product),
			})
		}
		tree.Categories = append(tree.Categories, catalog.TreeNode{
			ID:   fmt.Sprintf("c%d", c+1),
			Name: fmt.Sprintf("Aisle %d", c+1),
			URL:  fmt.Sprintf("/c/aisle-%d", c+1),
			Subcategories: []catalog.TreeNode{{
				ID:       fmt.Sprintf("s%d", c+1),
				Name:     fmt.Sprintf("Shelf %d", c+1),
				URL:      fmt.Sprintf("/s/shelf-%d", c+1),
				Products: prods,
			}},
		})
	}
	return &tree
}

func TestMemoryLeakBasic(t *testing.T) {
	iterations := []int{100, 500, 1000}

	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			runBasicMemoryTest(t, iterCount)
		})
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 500},
		{workers: 2, iterationsPerWorker: 250},
		{workers: 4, iterationsPerWorker: 125},
	}

	for _, config := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", config.workers, config.iterationsPerWorker), func(t *testing.T) {
			runConcurrentMemoryTest(t, config.workers, config.iterationsPerWorker)
		})
	}
}

// TestMemorySnapshotChurn replaces the whole catalog snapshot repeatedly
// while searching, the way a storefront refreshing its catalog would. Old
// snapshots must become collectable once the swap lands.
func TestMemorySnapshotChurn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping snapshot churn test in short mode")
	}

	engine := search.NewEngine(catalog.Flatten(buildTree(10, 50)), search.DefaultConfig())

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)

	swaps := 200
	for i := 0; i < swaps; i++ {
		engine.SetSnapshot(catalog.Flatten(buildTree(10, 50)))
		for _, q := range testQueries {
			_ = engine.Search(q)
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	memDelta := int64(final.Alloc - baseline.Alloc)
	t.Logf("swaps=%d mem_delta=%d bytes", swaps, memDelta)

	// One live snapshot plus slack; growth proportional to swap count
	// means the old snapshots are being retained.
	if memDelta > 20*1024*1024 {
		t.Errorf("excessive retained memory after snapshot churn: %d bytes", memDelta)
	}
}

func runBasicMemoryTest(t *testing.T, iterations int) {
	engine := search.NewEngine(catalog.Flatten(buildTree(20, 50)), search.DefaultConfig())

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	for i := 0; i < iterations; i++ {
		for _, query := range testQueries {
			result := engine.Search(query)
			_ = result
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	memDelta := int64(final.Alloc - baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	totalOps := iterations * len(testQueries)
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		iterations, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}

	if goroutineDelta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func runConcurrentMemoryTest(t *testing.T, workers, iterationsPerWorker int) {
	engine := search.NewEngine(catalog.Flatten(buildTree(20, 50)), search.DefaultConfig())

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	var wg sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for iter := 0; iter < iterationsPerWorker; iter++ {
				for _, query := range testQueries {
					_ = engine.Search(query)
				}
			}
		}()
	}
	wg.Wait()

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	totalOps := workers * iterationsPerWorker * len(testQueries)
	memDelta := int64(final.Alloc - baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("workers=%d iter_per_worker=%d total_ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		workers, iterationsPerWorker, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}

	if goroutineDelta > 3 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}
