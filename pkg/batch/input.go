package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Item is one line of batch input.
type Item struct {
	Line  int
	Name  string
	Owner string
}

// ReadFile parses the CSV file at path.
func ReadFile(path string) ([]Item, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch input: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads "name,owner" records. Blank lines and lines starting with '#'
// are ignored.
func Parse(r io.Reader) ([]Item, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var items []Item
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse batch input: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected name,owner", line)
		}
		item := Item{
			Line:  line,
			Name:  strings.TrimSpace(record[0]),
			Owner: strings.TrimSpace(record[1]),
		}
		if item.Name == "" {
			return nil, fmt.Errorf("line %d: name is empty", line)
		}
		items = append(items, item)
	}
	return items, nil
}
