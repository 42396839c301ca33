// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "testKey", contextKey("testKey").String())
	assert.Equal(t, "owner", OwnerCtxKey.String())
}

func TestGetOwnerFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		want   string
		wantOK bool
	}{
		{"present", WithOwner(context.Background(), "alice"), "alice", true},
		{"missing", context.Background(), "", false},
		{"empty", WithOwner(context.Background(), ""), "", false},
		{"wrong type", context.WithValue(context.Background(), OwnerCtxKey, 42), "", false},
		{"different key", context.WithValue(context.Background(), contextKey("other"), "alice"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetOwnerFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
