// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DOMINUSBABEL/VOTOFLOW/models"
)

// Expected column order: location, parent, lat, lng, party, candidate, votes.
const columns = 7

// ParseCSV reads delimited vote records, one per row. The delimiter
// (comma or semicolon) is detected from the first line and a header row
// is skipped when its votes column is not numeric.
//
// Malformed rows — wrong arity, unparseable numbers, negative votes,
// empty party or candidate — are dropped and counted rather than
// failing the batch. Empty input yields an empty slice and no error.
func ParseCSV(r io.Reader) (records []models.VoteRecord, dropped int, err error) {
	br := bufio.NewReader(r)

	delim, err := detectDelimiter(br)
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read input: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A row the csv layer itself rejects (bare quotes etc.)
			// counts as dropped, same as a row we reject below.
			dropped++
			continue
		}

		rec, ok := parseRow(row)
		if !ok {
			if first && looksLikeHeader(row) {
				first = false
				continue
			}
			dropped++
			first = false
			continue
		}

		records = append(records, rec)
		first = false
	}

	return records, dropped, nil
}

// parseRow converts one CSV row into a VoteRecord.
func parseRow(row []string) (models.VoteRecord, bool) {
	if len(row) != columns {
		return models.VoteRecord{}, false
	}
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	lat, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return models.VoteRecord{}, false
	}
	lng, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return models.VoteRecord{}, false
	}
	votes, err := strconv.Atoi(row[6])
	if err != nil || votes < 0 {
		return models.VoteRecord{}, false
	}
	if row[0] == "" || row[4] == "" || row[5] == "" {
		return models.VoteRecord{}, false
	}

	return models.VoteRecord{
		Location:  row[0],
		Parent:    row[1],
		Latitude:  lat,
		Longitude: lng,
		Party:     row[4],
		Candidate: row[5],
		Votes:     votes,
	}, true
}

// looksLikeHeader reports whether a rejected first row is a column
// header: right arity, non-numeric votes column.
func looksLikeHeader(row []string) bool {
	if len(row) != columns {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[columns-1]))
	return err != nil
}

// detectDelimiter peeks at the first line and picks semicolon when it
// outnumbers commas, the common dialect of Latin American exports.
func detectDelimiter(br *bufio.Reader) (rune, error) {
	const peekWindow = 4096

	buf, err := br.Peek(peekWindow)
	if len(buf) == 0 {
		if err != nil && err != io.EOF {
			return 0, err
		}
		return 0, io.EOF
	}

	line := string(buf)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';', nil
	}
	return ',', nil
}
