package cache

import (
	"errors"
	"strings"
	"tour-planner-service/internal/domain"
)

var errEmptyAddress = errors.New("empty address key")

// Trim and de-duplicate lookup keys, dropping blanks.
func normalizeAddresses(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	uniq := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}

		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
	}
	return uniq
}

func checkKeys(results map[string]domain.Coordinate) error {
	for addr := range results {
		if strings.TrimSpace(addr) == "" {
			return errEmptyAddress
		}
	}
	return nil
}
