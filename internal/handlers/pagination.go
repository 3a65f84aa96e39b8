package handlers

import (
	"fmt"
	"strconv"
)

func parsePaginationParams(limitStr, offsetStr string) (int, int, error) {
	limit := 20
	offset := 0

	if limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			return 0, 0, fmt.Errorf("invalid limit")
		}
		limit = l
	}

	if offsetStr != "" {
		o, err := strconv.Atoi(offsetStr)
		if err != nil || o < 0 {
			return 0, 0, fmt.Errorf("invalid offset")
		}
		offset = o
	}

	return limit, offset, nil
}
