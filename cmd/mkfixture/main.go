// mkfixture writes sample patient, surgeon and operating room input files
// plus a simcheck.yaml listing them.
// Usage: go run ./cmd/mkfixture --out testdata/sample --rows 20 --format tsv
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	goparquet "github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/endosim/simcheck/internal/config"
	"github.com/endosim/simcheck/internal/model"
	"github.com/endosim/simcheck/internal/schema"
)

var procedures = []string{"colonoscopy", "gastroscopy", "ercp", "eus", "sigmoidoscopy"}

func main() {
	out := flag.String("out", "testdata/sample", "output directory")
	rows := flag.Int("rows", 20, "patient rows to generate")
	format := flag.String("format", "tsv", "file format: tsv, csv or parquet")
	bom := flag.Bool("bom", false, "prefix text files with a UTF-8 byte-order mark")
	flag.Parse()

	if err := os.MkdirAll(*out, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "create output dir: %v\n", err)
		os.Exit(1)
	}

	patients, surgeons, rooms := generate(*rows)

	var inputs []config.Input
	var err error
	switch *format {
	case "parquet":
		inputs, err = writeParquet(*out, patients, surgeons, rooms)
	case "tsv", "csv":
		inputs, err = writeText(*out, *format, *bom, patients, surgeons, rooms)
	default:
		err = fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := writeConfig(*out, inputs); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d input files to %s\n", len(inputs), *out)
}

func generate(n int) ([]model.PatientRow, []model.SurgeonRow, []model.OperatingRoomRow) {
	surgeons := []model.SurgeonRow{
		{SurgeonID: "S1", Name: "Surgeon A", Skills: "colonoscopy;gastroscopy", ShiftStart: "08:00", ShiftEnd: "16:00"},
		{SurgeonID: "S2", Name: "Surgeon B", Skills: "ercp;eus", ShiftStart: "09:00", ShiftEnd: "17:00"},
		{SurgeonID: "S3", Name: "Surgeon C", Skills: "sigmoidoscopy;colonoscopy", ShiftStart: "12:00", ShiftEnd: "20:00"},
	}
	rooms := []model.OperatingRoomRow{
		{ORID: "OR1", RoomType: "endoscopy", TurnoverTime: 15},
		{ORID: "OR2", RoomType: "endoscopy", TurnoverTime: 15},
		{ORID: "OR3", RoomType: "fluoroscopy", TurnoverTime: 25},
	}

	base := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	patients := make([]model.PatientRow, n)
	for i := range patients {
		patients[i] = model.PatientRow{
			PatientID:         fmt.Sprintf("P%04d", i+1),
			Name:              fmt.Sprintf("Patient %d", i+1),
			ScheduledDateTime: base.Add(time.Duration(i*20) * time.Minute).Format("2006-01-02 15:04:05"),
			Procedure:         procedures[i%len(procedures)],
			PreferredSurgeon:  surgeons[i%len(surgeons)].SurgeonID,
			Priority:          int32(i%3 + 1),
		}
	}
	return patients, surgeons, rooms
}

func writeText(dir, format string, bom bool, patients []model.PatientRow, surgeons []model.SurgeonRow, rooms []model.OperatingRoomRow) ([]config.Input, error) {
	delim := "\t"
	if format == "csv" {
		delim = ","
	}

	tables := []struct {
		kind schema.Kind
		file string
		rows [][]string
	}{
		{schema.Patient, "patients", patientCells(patients)},
		{schema.Surgeon, "surgeons", surgeonCells(surgeons)},
		{schema.OperatingRoom, "operating_rooms", roomCells(rooms)},
	}

	var inputs []config.Input
	for _, tbl := range tables {
		s, _ := schema.DefaultRegistry().Lookup(tbl.kind)
		var b strings.Builder
		if bom {
			b.WriteString("\xEF\xBB\xBF")
		}
		names := make([]string, 0, s.Len())
		for _, f := range s.Fields() {
			names = append(names, f.Name)
		}
		b.WriteString(strings.Join(names, delim))
		b.WriteString("\n")
		for _, row := range tbl.rows {
			b.WriteString(strings.Join(row, delim))
			b.WriteString("\n")
		}

		path := filepath.Join(dir, tbl.file+"."+format)
		if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		inputs = append(inputs, config.Input{Kind: string(tbl.kind), Path: filepath.Base(path), Delimiter: delim})
	}
	return inputs, nil
}

func patientCells(rows []model.PatientRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.PatientID, r.Name, r.ScheduledDateTime, r.Procedure, r.PreferredSurgeon,
			strconv.Itoa(int(r.Priority))}
	}
	return out
}

func surgeonCells(rows []model.SurgeonRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.SurgeonID, r.Name, r.Skills, r.ShiftStart, r.ShiftEnd}
	}
	return out
}

func roomCells(rows []model.OperatingRoomRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.ORID, r.RoomType, strconv.FormatFloat(r.TurnoverTime, 'f', -1, 64)}
	}
	return out
}

func writeParquet(dir string, patients []model.PatientRow, surgeons []model.SurgeonRow, rooms []model.OperatingRoomRow) ([]config.Input, error) {
	files := []struct {
		kind  schema.Kind
		name  string
		write func(path string) error
	}{
		{schema.Patient, "patients.parquet", func(p string) error { return goparquet.WriteFile(p, patients) }},
		{schema.Surgeon, "surgeons.parquet", func(p string) error { return goparquet.WriteFile(p, surgeons) }},
		{schema.OperatingRoom, "operating_rooms.parquet", func(p string) error { return goparquet.WriteFile(p, rooms) }},
	}

	var inputs []config.Input
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := f.write(path); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		inputs = append(inputs, config.Input{Kind: string(f.kind), Path: f.name})
	}
	return inputs, nil
}

func writeConfig(dir string, inputs []config.Input) error {
	doc := map[string]any{
		"print_warnings": true,
		"inputs":         inputs,
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	path := filepath.Join(dir, "simcheck.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
