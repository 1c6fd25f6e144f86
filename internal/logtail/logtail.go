package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < maxLines {
		return ring[:count:count], nil
	}
	lines := make([]string, count)
	for i := range count {
		lines[i] = ring[(next+i)%maxLines]
	}
	return lines, nil
}

// Format renders one JSON log record as "15:04:05 LEVEL msg key=value ...".
// Attributes are sorted by key. Lines that are not JSON objects come back
// unchanged.
func Format(line string) string {
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		return line
	}

	var b strings.Builder
	if ts, ok := record["time"].(string); ok {
		b.WriteString(clock(ts))
		b.WriteByte(' ')
	}
	if level, ok := record["level"].(string); ok {
		fmt.Fprintf(&b, "%-5s ", level)
	}
	if msg, ok := record["msg"].(string); ok {
		b.WriteString(msg)
	}

	keys := make([]string, 0, len(record))
	for k := range record {
		switch k {
		case "time", "level", "msg":
		default:
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, record[k])
	}
	return b.String()
}

// clock trims an RFC 3339 timestamp to its time of day.
func clock(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 && len(ts) >= i+9 {
		return ts[i+1 : i+9]
	}
	return ts
}
