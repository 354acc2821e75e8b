// Package main is the entry point for the cvec demo application
package main

import (
	"flag"
	"fmt"
	"os"
	"unsafe"

	"github.com/AdrianWangs/go-cvec/config"
	"github.com/AdrianWangs/go-cvec/internal/cmem"
	"github.com/AdrianWangs/go-cvec/pkg/cvec"
	"github.com/AdrianWangs/go-cvec/pkg/logger"
)

func main() {
	// Parse command line flags
	var (
		configFile string
		count      int
		logLevel   string
	)

	flag.StringVar(&configFile, "config", "", "Path to config file")
	flag.IntVar(&count, "count", 0, "Number of elements to allocate (overrides config)")
	flag.StringVar(&logLevel, "log", "", "Log level (debug, info, warn, error)")
	flag.Parse()

	// Load configuration
	var cfg *config.Config
	if configFile != "" {
		var err error
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg = config.LoadFromEnv()
	}

	// Override with command line flags if provided
	if count != 0 {
		cfg.ElementCount = count
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Initialize logger
	logger.SetLevel(cfg.LogLevel)
	if cfg.LogFormat == "json" {
		logger.UseJSONFormat()
	}

	heap := cmem.NewHeap()
	runManaged(heap, cfg.ElementCount)
	runUnwrapped(heap, cfg.ElementCount)

	logger.WithFields(logger.Fields{
		"outstanding_blocks": heap.Outstanding(),
		"total_allocs":       heap.TotalAllocs(),
	}).Info("demo finished")

	if heap.Outstanding() != 0 {
		logger.Fatalf("leak detected: %d blocks still outstanding", heap.Outstanding())
	}
}

// runManaged walks a foreign buffer through its managed lifecycle: wrap,
// mutate through a view, snapshot, release via the stored free function.
func runManaged(heap *cmem.Heap, n int) {
	base, release := cmem.Alloc[int32](heap, n)
	v := cvec.NewWithFree(base, n, release)
	defer v.Free()

	ms := v.SliceMut()
	for i := 0; i < ms.Len(); i++ {
		ms.Set(i, int32(i*i))
	}

	var sum int64
	for it := ms.Iter(); it.Next(); {
		sum += int64(it.At())
	}
	logger.WithFields(logger.Fields{
		"len": v.Len(),
		"sum": sum,
	}).Info("filled foreign buffer through mutable view")

	// The snapshot stays valid after Free; the views do not.
	owned := v.Snapshot()
	if len(owned) > 0 {
		logger.Infof("snapshot holds %d elements, first=%d last=%d",
			len(owned), owned[0], owned[len(owned)-1])
	}
}

// runUnwrapped demonstrates the ownership-transfer path: IntoRaw cancels the
// stored release action, so the caller must free through the heap directly.
func runUnwrapped(heap *cmem.Heap, n int) {
	base, release := cmem.Alloc[byte](heap, n)
	v := cvec.NewWithFree(base, n, release)

	ms := v.SliceMut()
	for it := ms.IterMut(); it.Next(); {
		*it.AtMut() = 0xAB
	}

	raw := v.IntoRaw()
	logger.Debugf("ownership transferred, raw pointer %p", raw)

	// Now the program owns the block again and frees it by hand.
	if err := heap.Free(unsafe.Pointer(raw)); err != nil {
		logger.Errorf("manual free failed: %v", err)
	}
}
