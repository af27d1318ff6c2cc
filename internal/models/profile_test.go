package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDedupInterests(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil", in: nil, want: nil},
		{name: "empty", in: []string{}, want: nil},
		{name: "no_dups", in: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "dups_keep_first_order", in: []string{"b", "a", "b", "a"}, want: []string{"b", "a"}},
		{name: "empty_strings_dropped", in: []string{"", "a", ""}, want: []string{"a"}},
		{name: "only_empty", in: []string{"", ""}, want: nil},
		{name: "case_sensitive", in: []string{"Go", "go"}, want: []string{"Go", "go"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DedupInterests(tt.in))
		})
	}
}

func TestProfile_Clone_DeepCopiesSlices(t *testing.T) {
	p := &Profile{
		ID:        "srv-1",
		Interests: []string{"a", "b"},
		Images:    []string{"img-1"},
	}

	cp := p.Clone()
	cp.Interests[0] = "mutated"
	cp.Images[0] = "mutated"

	require.Equal(t, "a", p.Interests[0])
	require.Equal(t, "img-1", p.Images[0])
}

func TestProfile_Clone_Nil(t *testing.T) {
	var p *Profile
	require.Nil(t, p.Clone())
}

func TestProfile_Apply(t *testing.T) {
	name := "Alice"
	empty := ""
	height := 180
	interests := []string{"a", "a", "b"}

	p := &Profile{Name: "Old", About: "old about", Weight: 60}
	p.Apply(ProfileUpdate{
		Name:      &name,
		Height:    &height,
		Interests: &interests,
		About:     &empty, // явное «очистить»
	})

	require.Equal(t, "Alice", p.Name)
	require.Equal(t, 180, p.Height)
	require.Equal(t, []string{"a", "b"}, p.Interests)
	require.Empty(t, p.About)
	// nil-поля не тронуты.
	require.Equal(t, 60, p.Weight)
}
