package cache

import (
	"fmt"
	"strings"
)

const keyPrefix = "seatreserve"

// Key builders. Every key lives under the seatreserve: namespace.

func BuildingsKey() string {
	return keyPrefix + ":buildings"
}

func FloorsKey(buildingID string) string {
	return fmt.Sprintf("%s:buildings:%s:floors", keyPrefix, buildingID)
}

func SpacesKey(floorID string) string {
	return fmt.Sprintf("%s:floors:%s:spaces", keyPrefix, floorID)
}

func SessionKey(name string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, strings.ToLower(name))
}

func RateLimitKey(clientIP, category string) string {
	return fmt.Sprintf("%s:ratelimit:%s:%s", keyPrefix, clientIP, category)
}

// InventoryPatterns match every cached building, floor and space listing
func InventoryPatterns() []string {
	return []string{
		keyPrefix + ":buildings*",
		keyPrefix + ":floors:*",
	}
}
