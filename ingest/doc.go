// Copyright (c) 2026 DOMINUSBABEL.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ingest parses operator-supplied delimited text into vote records.

Expected columns, in order:

	location, parent, lat, lng, party, candidate, votes

Comma and semicolon delimiters are both accepted; a header row is
detected and skipped. Malformed rows are dropped and counted, never
fatal — the drop count is surfaced in the dataset metadata as a
data-quality signal.

The package also embeds a small demo batch (SampleRecords) used to seed
a dataset at startup.
*/
package ingest
