// Copyright (c) 2025 Roshni Games. All Rights Reserved.

package common

import (
	"os"
	"strconv"

	"github.com/google/uuid"
)

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func GetEnvInt(key string, fallback int) int {
	str := GetEnv(key, strconv.Itoa(fallback))
	val, err := strconv.Atoi(str)
	if err != nil {
		return fallback
	}

	return val
}

// NewBatchID returns a unique identifier for an evaluation batch.
func NewBatchID() string {
	return uuid.NewString()
}
