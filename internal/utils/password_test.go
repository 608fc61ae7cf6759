package utils

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordCostOutOfRangeFallsBack(t *testing.T) {
	for _, cost := range []int{0, -1, bcrypt.MaxCost + 1} {
		hash, err := HashPassword("hunter2", cost)
		if err != nil {
			t.Fatalf("HashPassword(cost=%d) = %v", cost, err)
		}
		actual, err := bcrypt.Cost([]byte(hash))
		if err != nil {
			t.Fatalf("bcrypt.Cost() = %v", err)
		}
		if actual != bcrypt.DefaultCost {
			t.Errorf("cost %d hashed with cost %d, want default %d", cost, actual, bcrypt.DefaultCost)
		}
	}
}

func TestHashPasswordKeepsValidCost(t *testing.T) {
	hash, err := HashPassword("hunter2", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() = %v", err)
	}
	if !strings.HasPrefix(hash, "$2a$04$") {
		t.Errorf("hash prefix = %q, want cost 04 marker", hash[:7])
	}
}
