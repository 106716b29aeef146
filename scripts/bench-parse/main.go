// bench-parse measures parse and pattern-match throughput over a
// directory of JavaScript and TypeScript sources.
//
// Usage:
//
//	go run ./scripts/bench-parse --dir ~/sources/webapp --pattern function \
//	  --iterations 3 --profile-dir docs/profiles/parse
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/qckfx/tree-hugger-js/pkg/lang"
	"github.com/qckfx/tree-hugger-js/pkg/pattern"
	"github.com/qckfx/tree-hugger-js/pkg/tree"
)

type sourceFile struct {
	path     string
	language string
	content  []byte
}

func main() {
	dir := flag.String("dir", "", "Directory to scan for sources")
	pat := flag.String("pattern", "function", "Pattern to match in every file")
	iterations := flag.Int("iterations", 1, "Number of passes over the file set")
	profileDir := flag.String("profile-dir", "", "Directory to write pprof profiles")
	cpuProfile := flag.Bool("cpu-profile", false, "Write CPU profile to profile-dir/cpu.prof")

	flag.Parse()

	if *dir == "" {
		log.Fatal("--dir is required")
	}

	if *profileDir != "" {
		if err := os.MkdirAll(*profileDir, 0o755); err != nil {
			log.Fatalf("mkdir profile-dir: %v", err)
		}
	}

	if *cpuProfile {
		if *profileDir == "" {
			log.Fatal("--cpu-profile requires --profile-dir")
		}

		cpuPath := filepath.Join(*profileDir, "cpu.prof")

		cpuFile, cpuErr := os.Create(cpuPath)
		if cpuErr != nil {
			log.Fatalf("create cpu profile: %v", cpuErr)
		}
		defer cpuFile.Close()

		if startErr := pprof.StartCPUProfile(cpuFile); startErr != nil {
			log.Fatalf("start cpu profile: %v", startErr)
		}

		defer pprof.StopCPUProfile()

		log.Printf("CPU profiling enabled -> %s", cpuPath)
	}

	files := loadSources(*dir)
	if len(files) == 0 {
		log.Fatalf("no parseable sources under %s", *dir)
	}

	var totalBytes int64

	for _, f := range files {
		totalBytes += int64(len(f.content))
	}

	log.Printf("loaded %d files (%.1f MB)", len(files), float64(totalBytes)/1e6)

	cache := pattern.NewCache(nil)
	pred := cache.Predicate(*pat)

	takeSnapshot("before_parsing")
	writeHeapProfile(*profileDir, "heap_before_parsing.prof")

	var (
		parseTime time.Duration
		matchTime time.Duration
		matches   int
	)

	for i := range *iterations {
		log.Printf("pass %d/%d", i+1, *iterations)

		for _, f := range files {
			parseStart := time.Now()

			parsed, err := tree.Parse(f.content, f.language)
			if err != nil {
				log.Fatalf("parse %s: %v", f.path, err)
			}

			parseTime += time.Since(parseStart)

			matchStart := time.Now()
			matches += len(parsed.Root().Find(pred))
			matchTime += time.Since(matchStart)

			parsed.Close()
		}
	}

	takeSnapshot("after_parsing")
	writeHeapProfile(*profileDir, "heap_after_parsing.prof")

	parsedBytes := totalBytes * int64(*iterations)
	parsedFiles := len(files) * *iterations

	fmt.Println()
	fmt.Println("=== Parse Throughput ===")
	fmt.Printf("%-20s %12d\n", "Files parsed", parsedFiles)
	fmt.Printf("%-20s %12d\n", "Matches", matches)
	fmt.Printf("%-20s %12.1f ms\n", "Parse time", float64(parseTime.Microseconds())/1e3)
	fmt.Printf("%-20s %12.1f ms\n", "Match time", float64(matchTime.Microseconds())/1e3)

	if parseTime > 0 {
		fmt.Printf("%-20s %12.1f MB/s\n", "Parse rate", float64(parsedBytes)/1e6/parseTime.Seconds())
	}
}

// loadSources reads every file under dir whose extension maps to a
// supported grammar.
func loadSources(dir string) []sourceFile {
	var files []sourceFile

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		language, langErr := lang.FromPath(path)
		if langErr != nil {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			log.Printf("warning: read %s: %v", path, readErr)

			return nil
		}

		files = append(files, sourceFile{path: path, language: language, content: content})

		return nil
	})
	if walkErr != nil {
		log.Fatalf("walk %s: %v", dir, walkErr)
	}

	return files
}

func takeSnapshot(label string) {
	runtime.GC()
	runtime.GC()

	var m runtime.MemStats

	runtime.ReadMemStats(&m)
	log.Printf("  [heap] %-20s inuse=%6.1f MB  sys=%6.1f MB",
		label, float64(m.HeapInuse)/1e6, float64(m.HeapSys)/1e6)
}

func writeHeapProfile(profileDir, name string) {
	if profileDir == "" {
		return
	}

	runtime.GC()
	runtime.GC()

	path := filepath.Join(profileDir, name)

	f, ferr := os.Create(path)
	if ferr != nil {
		log.Printf("warning: create heap profile %s: %v", path, ferr)

		return
	}
	defer f.Close()

	if perr := pprof.WriteHeapProfile(f); perr != nil {
		log.Printf("warning: write heap profile %s: %v", path, perr)
	}
}
