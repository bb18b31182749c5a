// Package ingest turns raw transaction sources (CSV file or MySQL table)
// into cleaned Transaction slices and resolves the snapshot instant.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"rfm-segment/pkg/models"
)

var requiredColumns = []string{"customer_id", "order_id", "order_date", "amount_eur"}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// ReadCSV loads transactions from path, trying separators and encodings
// until the required header shows up. Pass sep/enc to pin the dialect.
// Rows with missing ids, unparseable dates or non-positive amounts are
// dropped with a summary log, matching the tolerant row handling of the
// DB loader.
func ReadCSV(path, sep, enc string, log *zap.SugaredLogger) ([]models.Transaction, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	seps := []string{",", ";", "\t", "|"}
	if sep != "" {
		seps = []string{sep}
	}
	encs := []string{"utf-8", "utf-8-sig", "cp1253", "cp1252"}
	if enc != "" {
		encs = []string{enc}
	}

	var attempts []string
	for _, s := range seps {
		for _, e := range encs {
			header, records, err := parseDialect(raw, s, e)
			if err != nil {
				attempts = append(attempts, fmt.Sprintf("sep=%q enc=%s: %v", s, e, err))
				continue
			}
			cols, ok := columnIndex(header)
			if !ok {
				attempts = append(attempts, fmt.Sprintf("sep=%q enc=%s: required columns missing", s, e))
				continue
			}
			return cleanRows(records, cols, log), nil
		}
	}
	if len(attempts) > 3 {
		attempts = attempts[:3]
	}
	return nil, fmt.Errorf("could not read %s; tried %s", path, strings.Join(attempts, "; "))
}

// parseDialect decodes raw under enc and parses it with sep. Bytes the
// encoding cannot represent fail the attempt instead of surviving as
// mojibake or replacement runes, so auto-detection falls through to the
// next encoding.
func parseDialect(raw []byte, sep, enc string) (header []string, records [][]string, err error) {
	text := raw
	switch enc {
	case "utf-8":
	case "utf-8-sig":
		text = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	case "cp1253":
		text, err = charmap.Windows1253.NewDecoder().Bytes(raw)
	case "cp1252":
		text, err = charmap.Windows1252.NewDecoder().Bytes(raw)
	default:
		return nil, nil, fmt.Errorf("unsupported encoding %q", enc)
	}
	if err != nil {
		return nil, nil, err
	}
	if !utf8.Valid(text) || bytes.ContainsRune(text, utf8.RuneError) {
		return nil, nil, fmt.Errorf("bytes not decodable as %s", enc)
	}

	cr := csv.NewReader(bytes.NewReader(text))
	cr.Comma = rune(sep[0])
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}
	return rows[0], rows[1:], nil
}

func columnIndex(header []string) (map[string]int, bool) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, req := range requiredColumns {
		if _, ok := cols[req]; !ok {
			return nil, false
		}
	}
	return cols, true
}

func cleanRows(records [][]string, cols map[string]int, log *zap.SugaredLogger) []models.Transaction {
	txs := make([]models.Transaction, 0, len(records))
	dropped := 0
	for _, rec := range records {
		tx, ok := cleanRow(rec, cols)
		if !ok {
			dropped++
			continue
		}
		txs = append(txs, tx)
	}
	if dropped > 0 {
		log.Infof("dropped %d invalid rows", dropped)
	}
	return txs
}

func cleanRow(rec []string, cols map[string]int) (models.Transaction, bool) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	tx := models.Transaction{
		CustomerID: field("customer_id"),
		OrderID:    field("order_id"),
	}
	if tx.CustomerID == "" || tx.OrderID == "" {
		return models.Transaction{}, false
	}

	date, ok := parseDate(field("order_date"))
	if !ok {
		return models.Transaction{}, false
	}
	tx.OrderDate = date

	amount, err := parseAmount(field("amount_eur"))
	if err != nil || amount <= 0 {
		return models.Transaction{}, false
	}
	tx.Amount = amount
	return tx, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount normalizes European number formatting: decimal comma,
// currency symbol, thousands spaces.
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	return strconv.ParseFloat(s, 64)
}
