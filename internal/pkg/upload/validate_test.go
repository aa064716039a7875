package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var pngHead = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
var jpegHead = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

func TestValidateSelfieBySniff(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		head     []byte
		wantErr  bool
	}{
		{"png ok", "me.png", pngHead, false},
		{"jpeg ok", "me.jpg", jpegHead, false},
		{"gif extension rejected", "me.gif", []byte("GIF89a"), true},
		{"svg rejected", "me.png", []byte(`<?xml version="1.0"?><svg></svg>`), true},
		{"html rejected", "me.jpg", []byte("<!DOCTYPE html><html>"), true},
		{"no extension", "me", pngHead, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, err := ValidateSelfieBySniff(tt.filename, tt.head)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, mime)
			}
		})
	}
}

func TestValidateSelfieBySniffOctetStreamByExtension(t *testing.T) {
	// HEIC payloads are often sniffed as octet-stream; the extension decides.
	head := []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'h', 'e', 'i', 'c'}
	mime, err := ValidateSelfieBySniff("me.heic", head)
	assert.NoError(t, err)
	assert.NotEmpty(t, mime)
}
