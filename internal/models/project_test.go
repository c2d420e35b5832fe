package models

import (
	"testing"
	"time"
)

func TestNewProject(t *testing.T) {
	p := NewProject("Etude", "Czerny")

	if p.Title != "Etude" {
		t.Errorf("title = %q, want 'Etude'", p.Title)
	}
	if p.Artist != "Czerny" {
		t.Errorf("artist = %q, want 'Czerny'", p.Artist)
	}
	if p.Tags != "[]" {
		t.Errorf("tags = %q, want '[]'", p.Tags)
	}
	if p.CreatedAt.IsZero() || p.LastUpdated.IsZero() {
		t.Error("timestamps should be initialized")
	}
	if !p.CreatedAt.Equal(p.LastUpdated) {
		t.Error("createdAt and lastUpdated should match on creation")
	}
	if p.Capo != nil || p.Memorized != nil || p.Transpose != nil {
		t.Error("optional fields should be absent on creation")
	}
}

func TestProject_Merge_PartialUpdate(t *testing.T) {
	p := NewProject("Etude", "Czerny")
	p.Notes = "slow practice"
	created := p.CreatedAt
	before := p.LastUpdated

	time.Sleep(time.Millisecond)

	title := "Etude Op. 10"
	capo := 3
	p.Merge(ProjectUpdate{Title: &title, Capo: &capo})

	if p.Title != "Etude Op. 10" {
		t.Errorf("title = %q, want merged value", p.Title)
	}
	if p.Artist != "Czerny" {
		t.Errorf("artist = %q, omitted field should be unchanged", p.Artist)
	}
	if p.Notes != "slow practice" {
		t.Errorf("notes = %q, omitted field should be unchanged", p.Notes)
	}
	if p.Capo == nil || *p.Capo != 3 {
		t.Errorf("capo = %v, want 3", p.Capo)
	}
	if !p.CreatedAt.Equal(created) {
		t.Error("createdAt must never change")
	}
	if !p.LastUpdated.After(before) {
		t.Error("merge should refresh lastUpdated")
	}
}

func TestProject_Touch(t *testing.T) {
	p := NewProject("Etude", "")
	before := p.LastUpdated

	time.Sleep(time.Millisecond)
	p.Touch()

	if !p.LastUpdated.After(before) {
		t.Error("touch should refresh lastUpdated")
	}
}

func TestEncodeTags_RoundTrip(t *testing.T) {
	cases := [][]string{
		nil,
		{},
		{"technique"},
		{"jazz", "fingerstyle", "drop-d"},
		{"has space", `has"quote`},
	}

	for _, tags := range cases {
		encoded, err := EncodeTags(tags)
		if err != nil {
			t.Fatalf("encode %v: %v", tags, err)
		}
		decoded, err := DecodeTags(encoded)
		if err != nil {
			t.Fatalf("decode %q: %v", encoded, err)
		}
		if len(decoded) != len(tags) {
			t.Fatalf("round trip %v: got %v", tags, decoded)
		}
		for i := range tags {
			if decoded[i] != tags[i] {
				t.Errorf("round trip %v: element %d = %q, want %q", tags, i, decoded[i], tags[i])
			}
		}
	}
}

func TestEncodeTags_Empty(t *testing.T) {
	encoded, err := EncodeTags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if encoded != "[]" {
		t.Errorf("encoded = %q, want '[]'", encoded)
	}
}

func TestDecodeTags_Invalid(t *testing.T) {
	if _, err := DecodeTags("not json"); err == nil {
		t.Error("expected error for malformed tags text")
	}
	if _, err := DecodeTags(`{"a":1}`); err == nil {
		t.Error("expected error for non-array tags text")
	}
}

func TestDecodeTags_EmptyString(t *testing.T) {
	tags, err := DecodeTags("")
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 0 {
		t.Errorf("tags = %v, want empty", tags)
	}
}
