package tz

import (
	"fmt"
	"strings"
	"time"
)

// Load resolves a time zone name. "" and "Local" give the host zone.
func Load(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("tz: load %q: %w", name, err)
	}
	return loc, nil
}
