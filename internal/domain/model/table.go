package model

import (
	"fmt"
	"strings"
)

type TableID string

const (
	TableA TableID = "A"
	TableB TableID = "B"
)

// Path is the endpoint suffix of the table on the upstream API.
func (t TableID) Path() string {
	return strings.ToLower(string(t))
}

func (t TableID) String() string {
	return string(t)
}

// CacheKey names one of the cached rate lists.
type CacheKey int

const (
	RatesA CacheKey = iota
	RatesB
	FullRates
)

var cacheKeyNames = map[CacheKey]string{
	RatesA:    "listRatesA",
	RatesB:    "listRatesB",
	FullRates: "fullListRates",
}

func (k CacheKey) String() string {
	if name, ok := cacheKeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CacheKey(%d)", int(k))
}

// Valid reports whether k is one of the known cache keys.
func (k CacheKey) Valid() bool {
	_, ok := cacheKeyNames[k]
	return ok
}
