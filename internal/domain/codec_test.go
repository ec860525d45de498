package domain

import (
	"strings"
	"testing"
)

func TestEncodeBatch_Format(t *testing.T) {
	entries := []SignedURLEntry{
		{Key: "a/1.wav", URL: "https://b.s3/a/1.wav?X-Amz-Expires=60&X-Amz-Signature=ab"},
		{Key: "a/2.wav", URL: "https://b.s3/a/2.wav?x=<y>"},
	}

	got, err := EncodeBatch(entries)
	if err != nil {
		t.Fatalf("EncodeBatch() error = %v", err)
	}

	want := `[{"key":"a/1.wav","presignedUrl":"https://b.s3/a/1.wav?X-Amz-Expires=60&X-Amz-Signature=ab"},` +
		`{"key":"a/2.wav","presignedUrl":"https://b.s3/a/2.wav?x=<y>"}]`
	if string(got) != want {
		t.Errorf("EncodeBatch() =\n%s\nwant\n%s", got, want)
	}
	if strings.Contains(string(got), `\u0026`) {
		t.Error("EncodeBatch() escaped '&'")
	}
}

func TestEncodeBatch_Empty(t *testing.T) {
	got, err := EncodeBatch(nil)
	if err != nil {
		t.Fatalf("EncodeBatch() error = %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("EncodeBatch(nil) = %s, want []", got)
	}
}

func TestBatch_SizeWithMatchesEncoder(t *testing.T) {
	entries := []SignedURLEntry{
		{Key: "k1", URL: "https://x/1?a=1&b=2"},
		{Key: "k2 with space", URL: "https://x/2"},
		{Key: "ünïcode/ß.wav", URL: "https://x/3?sig=%2F%2B"},
	}

	b := NewBatch()
	for n, e := range entries {
		enc, err := EncodeEntry(e)
		if err != nil {
			t.Fatalf("EncodeEntry() error = %v", err)
		}
		predicted := b.SizeWith(len(enc))
		b.Add(e, len(enc))

		full, err := EncodeBatch(entries[:n+1])
		if err != nil {
			t.Fatalf("EncodeBatch() error = %v", err)
		}
		if predicted != len(full) || b.EncodedBytes != len(full) {
			t.Errorf("n=%d: SizeWith() = %d, EncodedBytes = %d, want %d", n+1, predicted, b.EncodedBytes, len(full))
		}
	}
}

func TestBatch_AddTracksEncodedSize(t *testing.T) {
	b := NewBatch()
	if !b.Empty() || b.EncodedBytes != 2 {
		t.Fatalf("new batch: empty=%v bytes=%d, want empty with 2 bytes", b.Empty(), b.EncodedBytes)
	}

	for _, e := range []SignedURLEntry{{Key: "x", URL: "u1"}, {Key: "y", URL: "u2&u3"}} {
		enc, err := EncodeEntry(e)
		if err != nil {
			t.Fatal(err)
		}
		b.Add(e, len(enc))
	}

	payload, err := b.Payload()
	if err != nil {
		t.Fatal(err)
	}
	if b.EncodedBytes != len(payload) {
		t.Errorf("EncodedBytes = %d, want %d", b.EncodedBytes, len(payload))
	}
	if b.Size() != 2 {
		t.Errorf("Size() = %d, want 2", b.Size())
	}
}
