package ledger

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"worktime/internal/domain"
)

var separatorCell = regexp.MustCompile(`^:?-{3,}:?$`)

// ParseResult is the best-effort content of a ledger document.
type ParseResult struct {
	Records map[domain.Date]domain.DayRecord
	Skipped int
}

// Parse reads a ledger document. Title, header, separator, summary and blank
// lines are structural; any other line that does not parse as a day row is
// dropped and counted in Skipped. A later row for the same date wins.
func Parse(r io.Reader) (ParseResult, error) {
	result := ParseResult{Records: make(map[domain.Date]domain.DayRecord)}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if isStructural(line) {
			continue
		}

		cells, ok := splitRow(line)
		if !ok {
			result.Skipped++
			continue
		}
		if isHeaderRow(cells) || isSeparatorRow(cells) {
			continue
		}

		record, err := parseRow(cells)
		if err != nil {
			result.Skipped++
			continue
		}
		result.Records[record.Date] = record
	}
	if err := scanner.Err(); err != nil {
		return result, err
	}

	return result, nil
}

func isStructural(line string) bool {
	return line == "" ||
		line == sectionBreak ||
		strings.HasPrefix(line, "# ") ||
		strings.HasPrefix(line, summaryPrefix)
}

// splitRow splits a markdown table row on unescaped pipes.
func splitRow(line string) ([]string, bool) {
	if len(line) < 2 || line[0] != '|' || line[len(line)-1] != '|' || strings.HasSuffix(line, `\|`) {
		return nil, false
	}

	var (
		cells []string
		cell  strings.Builder
	)
	body := line[1:]
	for i := 0; i < len(body); i++ {
		switch {
		case body[i] == '\\' && i+1 < len(body) && body[i+1] == '|':
			cell.WriteByte('|')
			i++
		case body[i] == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(body[i])
		}
	}
	return cells, true
}

func isHeaderRow(cells []string) bool {
	return len(cells) > 0 && cells[0] == header[0]
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if !separatorCell.MatchString(c) {
			return false
		}
	}
	return len(cells) > 0
}

func parseRow(cells []string) (domain.DayRecord, error) {
	if len(cells) != len(header) {
		return domain.DayRecord{}, fmt.Errorf("expected %d cells, got %d", len(header), len(cells))
	}

	date, err := domain.ParseDate(cells[0])
	if err != nil {
		return domain.DayRecord{}, err
	}
	clockIn, err := domain.ParseTimeOfDay(cells[1])
	if err != nil {
		return domain.DayRecord{}, err
	}
	clockOut, err := domain.ParseTimeOfDay(cells[2])
	if err != nil {
		return domain.DayRecord{}, err
	}
	worked, err := parseHours(cells[3])
	if err != nil {
		return domain.DayRecord{}, err
	}
	overtime, err := parseHours(cells[4])
	if err != nil {
		return domain.DayRecord{}, err
	}

	var notes []string
	if cells[5] != "" {
		notes = strings.Split(strings.ReplaceAll(cells[5], "<br/>", "\n"), noteSeparator)
	}

	return domain.NewDayRecord(date, clockIn, clockOut, worked, overtime, notes), nil
}

// parseHours reads the leading number of a cell, ignoring trailing markers.
func parseHours(cell string) (float64, error) {
	fields := strings.Fields(cell)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty hours cell")
	}
	h, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, fmt.Errorf("hours %q is not a finite number", fields[0])
	}
	if h < 0 {
		return 0, fmt.Errorf("negative hours %v", h)
	}
	return h, nil
}
