// Command export dumps every contact submission to a dated CSV or JSON file,
// for taking a local backup without going through the admin panel.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/manav1309/manavinverse-create-verse/internal/config"
	"github.com/manav1309/manavinverse-create-verse/internal/database"
	"github.com/manav1309/manavinverse-create-verse/internal/repository"
	"github.com/manav1309/manavinverse-create-verse/internal/service"
)

func main() {
	format := flag.String("format", "csv", "export format: csv or json")
	outDir := flag.String("out", ".", "directory to write the export into")
	flag.Parse()

	if *format != "csv" && *format != "json" {
		log.Fatalf("unsupported format %q, use csv or json", *format)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	subs, err := repository.NewSubmissionRepository(db).ListAll()
	if err != nil {
		log.Fatalf("load submissions: %v", err)
	}

	filename := service.ExportFilename("contact-submissions", *format, time.Now())
	path := filepath.Join(*outDir, filename)
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	if *format == "json" {
		err = service.WriteSubmissionsJSON(f, subs)
	} else {
		err = service.WriteSubmissionsCSV(f, subs)
	}
	if err != nil {
		log.Fatalf("write export: %v", err)
	}

	fmt.Printf("exported %d submissions to %s\n", len(subs), path)
}
