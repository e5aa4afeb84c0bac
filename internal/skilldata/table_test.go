package skilldata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_FileName(t *testing.T) {
	assert.Equal(t, "skillgrp.dat", GroupTable.FileName())
	assert.Equal(t, "skillname-e.dat", NameTable.FileName())
}

func TestTable_RowsShareKeys(t *testing.T) {
	s := &Synthesizer{Categories: AllEnabled()}
	blocks := s.Synthesize(testNpcs())

	groups := GroupTable.Rows(blocks)
	names := NameTable.Rows(blocks)

	assert.Len(t, groups, len(blocks))
	assert.Len(t, names, len(blocks))
	for i, b := range blocks {
		gk, ok := RowKey(groups[i])
		assert.True(t, ok)
		nk, ok := RowKey(names[i])
		assert.True(t, ok)
		assert.Equal(t, b.Key(), gk)
		assert.Equal(t, b.Key(), nk)
	}
}

func TestRowKey(t *testing.T) {
	tests := []struct {
		row    string
		want   Key
		wantOK bool
	}{
		{"3\t2\t2\t0", Key{3, 2}, true},
		{"20000\t20432", Key{20000, 20432}, true},
		{"20000", Key{}, false},
		{"abc\t1\tx", Key{}, false},
		{"1\tx\ty", Key{}, false},
		{"", Key{}, false},
	}
	for _, tt := range tests {
		got, ok := RowKey(tt.row)
		assert.Equal(t, tt.wantOK, ok, "row %q", tt.row)
		assert.Equal(t, tt.want, got, "row %q", tt.row)
	}
}

func TestCategory_Lookup(t *testing.T) {
	for _, c := range AllCategories {
		got, ok := CategoryBySkillID(c.SkillID())
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}
	_, ok := CategoryBySkillID(3)
	assert.False(t, ok)
}
