package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	data := []byte("Nama Dealer,Kode Dealer,Net Sales\n" +
		"Dealer Jaya , D001 ,15000000\n" +
		",,\n" +
		"Dealer Makmur,D002,\n")

	rows, err := ParseCSV(data)
	require.NoError(t, err)
	require.Len(t, rows, 2, "all-empty rows are dropped")

	assert.Equal(t, "Dealer Jaya", rows[0].Str("Nama Dealer"), "cells are trimmed")
	assert.Equal(t, "D001", rows[0].Str("Kode Dealer"))
	assert.Equal(t, "15000000", rows[0].Str("Net Sales"))
	assert.Equal(t, "", rows[1].Str("Net Sales"))
}

func TestParseCSVRaggedRows(t *testing.T) {
	data := []byte("A,B,C\n1,2\n3,4,5,6\n")

	rows, err := ParseCSV(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "", rows[0].Str("C"), "short rows leave trailing columns empty")
	assert.Equal(t, "5", rows[1].Str("C"), "extra cells beyond the header are ignored")
}

func TestParseCSVEmpty(t *testing.T) {
	rows, err := ParseCSV([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseFileUnsupportedExtension(t *testing.T) {
	_, err := ParseFile("report.pdf", []byte("x"))
	assert.Error(t, err)
}

func TestRowStrFallback(t *testing.T) {
	row := Row{"Pekerjaan4": "", "Pekerjaan": "Wiraswasta"}
	assert.Equal(t, "Wiraswasta", row.Str("Pekerjaan4", "Pekerjaan"))
	assert.Equal(t, "", row.Str("Gender5", "Gender"))
}
