package models

import (
	"testing"
)

func TestProduct_FileName(t *testing.T) {
	p := &Product{FilePath: "files/guide.pdf"}
	if got := p.FileName(); got != "guide.pdf" {
		t.Errorf("FileName() = %q, want guide.pdf", got)
	}
}

func TestProduct_TagList(t *testing.T) {
	tests := []struct {
		name string
		tags string
		want int
	}{
		{"three tags", "ebook, design ,pdf", 3},
		{"blanks dropped", "ebook,, ,", 1},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Tags: tt.tags}
			if got := len(p.TagList()); got != tt.want {
				t.Errorf("len(TagList()) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClient_Names(t *testing.T) {
	tests := []struct {
		name    string
		client  Client
		display string
		label   string
		receipt string
	}{
		{"named", Client{Name: "Jane Doe", Email: "jane@example.com"}, "Jane Doe", "Jane Doe <jane@example.com>", "Jane Doe"},
		{"unnamed", Client{Email: "bob@example.com"}, NoName, "(No Name) <bob@example.com>", "bob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.DisplayName(); got != tt.display {
				t.Errorf("DisplayName() = %q, want %q", got, tt.display)
			}
			if got := tt.client.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if got := tt.client.ReceiptName(); got != tt.receipt {
				t.Errorf("ReceiptName() = %q, want %q", got, tt.receipt)
			}
		})
	}
}
