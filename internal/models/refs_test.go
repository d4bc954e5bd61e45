package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDList_Add(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		list IDList
		id   uint
		want IDList
	}{
		{name: "append to empty", list: IDList{}, id: 3, want: IDList{3}},
		{name: "append new", list: IDList{1, 2}, id: 3, want: IDList{1, 2, 3}},
		{name: "existing is no-op", list: IDList{1, 2, 3}, id: 2, want: IDList{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.list.Add(tt.id))
		})
	}
}

func TestIDList_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	list := IDList{}
	for i := 0; i < 5; i++ {
		list = list.Add(7)
	}
	assert.Equal(t, IDList{7}, list)
}

func TestIDList_Remove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		list IDList
		id   uint
		want IDList
	}{
		{name: "remove middle preserves order", list: IDList{1, 2, 3}, id: 2, want: IDList{1, 3}},
		{name: "remove first", list: IDList{1, 2, 3}, id: 1, want: IDList{2, 3}},
		{name: "remove last", list: IDList{1, 2, 3}, id: 3, want: IDList{1, 2}},
		{name: "absent is no-op", list: IDList{1, 2, 3}, id: 9, want: IDList{1, 2, 3}},
		{name: "empty is no-op", list: IDList{}, id: 1, want: IDList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.list.Remove(tt.id))
		})
	}
}

func TestIDList_Contains(t *testing.T) {
	t.Parallel()

	list := IDList{4, 8}
	assert.True(t, list.Contains(4))
	assert.True(t, list.Contains(8))
	assert.False(t, list.Contains(15))
	assert.False(t, IDList{}.Contains(1))
}
