package ai

import (
	"net"
	"strings"
)

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"deadline exceeded",
		"dial tcp",
		"eof",
	}

	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	quotaIndicators := []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
		"resource_exhausted",
	}

	for _, indicator := range quotaIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}

// isServerError checks for provider-side 5xx failures
func isServerError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	serverIndicators := []string{
		"(500)",
		"(502)",
		"(503)",
		"(504)",
		"internal error",
		"service unavailable",
		"overloaded",
	}

	for _, indicator := range serverIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}
