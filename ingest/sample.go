// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"bytes"
	_ "embed"

	"github.com/DOMINUSBABEL/VOTOFLOW/models"
)

//go:embed sample_records.csv
var sampleCSV []byte

// SampleName labels the seeded demo dataset.
const SampleName = "Demo: consulta presidencial"

// SampleRecords returns the embedded demo batch used to seed a dataset
// on first start, mirroring the sample-seeded dashboard.
func SampleRecords() []models.VoteRecord {
	records, _, err := ParseCSV(bytes.NewReader(sampleCSV))
	if err != nil {
		// The embedded file is fixed at build time; a parse failure here
		// is a programming error.
		panic("ingest: embedded sample is malformed: " + err.Error())
	}
	return records
}
