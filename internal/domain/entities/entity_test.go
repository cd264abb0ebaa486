package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntityType(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		et, err := ParseEntityType("NPC")
		require.NoError(t, err)
		assert.Equal(t, TypeNPC, et)
	})

	t.Run("case-insensitive with whitespace", func(t *testing.T) {
		et, err := ParseEntityType("  deity ")
		require.NoError(t, err)
		assert.Equal(t, TypeDeity, et)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := ParseEntityType("vehicle")
		require.Error(t, err)
	})
}

func TestMergeNameList(t *testing.T) {
	tests := []struct {
		name      string
		existing  string
		additions string
		want      string
	}{
		{"empty existing", "", "Strider", "Strider"},
		{"empty additions", "Strider", "", "Strider"},
		{"appends new", "Strider", "Elessar", "Strider, Elessar"},
		{"dedup case-insensitive", "Strider, Elessar", "strider, Wingfoot", "Strider, Elessar, Wingfoot"},
		{"normalizes spacing", " Strider ,, Elessar ", "Wingfoot", "Strider, Elessar, Wingfoot"},
		{"dedup within additions", "", "Strider, strider", "Strider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeNameList(tt.existing, tt.additions))
		})
	}
}

func TestEqualNameList(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"identical", "Strider, Elessar", "Strider, Elessar", true},
		{"spacing differs", "Strider,Elessar", "Strider, Elessar", true},
		{"case differs", "strider", "Strider", true},
		{"order differs", "Elessar, Strider", "Strider, Elessar", true},
		{"both empty", "", " , ", true},
		{"extra name", "Strider, Elessar", "Strider", false},
		{"different name", "Strider", "Wingfoot", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EqualNameList(tt.a, tt.b))
		})
	}
}
