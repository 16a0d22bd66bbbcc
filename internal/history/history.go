package history

import (
	"bufio"
	"os"
	"sync"
)

const defaultMaxItems = 1000

// History keeps the command lines the user has typed, persisted to a
// file so they survive across sessions. The zero file path disables
// persistence.
type History struct {
	mu       sync.Mutex
	items    []string
	file     string
	maxItems int
}

func New(file string) (*History, error) {
	h := &History{
		file:     file,
		maxItems: defaultMaxItems,
	}
	if err := h.load(); err != nil {
		return nil, err
	}
	return h, nil
}

// Add records one command line, trimming the oldest entries past the
// retention limit.
func (h *History) Add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append(h.items, line)
	if len(h.items) > h.maxItems {
		h.items = h.items[len(h.items)-h.maxItems:]
	}
}

// All returns a copy of the recorded lines, oldest first.
func (h *History) All() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string{}, h.items...)
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.items)
}

// Save writes the history to its backing file.
func (h *History) Save() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == "" {
		return nil
	}
	file, err := os.Create(h.file)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, item := range h.items {
		if _, err := writer.WriteString(item + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func (h *History) load() error {
	if h.file == "" {
		return nil
	}
	file, err := os.Open(h.file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		h.items = append(h.items, scanner.Text())
	}
	if len(h.items) > h.maxItems {
		h.items = h.items[len(h.items)-h.maxItems:]
	}
	return scanner.Err()
}
