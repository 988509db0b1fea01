// Reading recorded traces. A trace file holds one key token per whitespace
// separated field; decimal tokens are used verbatim and anything else (URLs,
// block ids, ...) is hashed down to a uint64 key.

package trace

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ReadFile parses a whole trace file into a key slice.
func ReadFile(path string) ([]uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var keys []uint64
	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		keys = append(keys, TokenKey(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace file: %w", err)
	}
	return keys, nil
}

// TokenKey maps one trace token to a key. Decimal tokens map to themselves
// so hand-written traces stay predictable; everything else is hashed.
func TokenKey(token string) uint64 {
	if key, err := strconv.ParseUint(token, 10, 64); err == nil {
		return key
	}
	return xxhash.Sum64String(token)
}
