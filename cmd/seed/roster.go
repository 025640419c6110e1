package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const maxClaimsPerUser = 100

type rosterEntry struct {
	Name   string `yaml:"name"`
	Claims int    `yaml:"claims"`
}

type roster struct {
	Users []rosterEntry `yaml:"users"`
}

func loadRoster(path string) (*roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return parseRoster(data)
}

func parseRoster(data []byte) (*roster, error) {
	var r roster
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	for i, u := range r.Users {
		if strings.TrimSpace(u.Name) == "" {
			return nil, fmt.Errorf("roster entry %d: name is required", i)
		}
		if u.Claims < 0 || u.Claims > maxClaimsPerUser {
			return nil, fmt.Errorf("roster entry %d (%s): claims must be between 0 and %d", i, u.Name, maxClaimsPerUser)
		}
	}
	return &r, nil
}
