package crypto

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestDatKeyVer211_CreateCipher(t *testing.T) {
	cipher, err := NewBlowfishCipher(DatKeyVer211)
	if err != nil {
		t.Fatalf("NewBlowfishCipher(DatKeyVer211): %v", err)
	}

	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	original := bytes.Clone(data)

	if err := cipher.Encrypt(data, 0, len(data)); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if bytes.Equal(data, original) {
		t.Error("data should differ from original after Encrypt")
	}

	if err := cipher.Decrypt(data, 0, len(data)); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(data, original) {
		t.Errorf("round-trip mismatch: got %x, want %x", data, original)
	}
}

func TestBlowfish_MultipleBlocksWithOffset(t *testing.T) {
	cipher, err := NewBlowfishCipher(DatKeyVer211)
	if err != nil {
		t.Fatalf("NewBlowfishCipher: %v", err)
	}

	data := make([]byte, 4+32)
	for i := range data {
		data[i] = byte(i)
	}
	original := bytes.Clone(data)

	if err := cipher.Encrypt(data, 4, 32); err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	// Префикс до offset не трогаем
	if !bytes.Equal(data[:4], original[:4]) {
		t.Errorf("bytes before offset changed: %x", data[:4])
	}
	if err := cipher.Decrypt(data, 4, 32); err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(data, original) {
		t.Errorf("round-trip mismatch: got %x, want %x", data, original)
	}
}

func TestBlowfish_RejectsBadRange(t *testing.T) {
	cipher, err := NewBlowfishCipher(DatKeyVer211)
	if err != nil {
		t.Fatalf("NewBlowfishCipher: %v", err)
	}

	tests := []struct {
		name         string
		size, offset int
	}{
		{"not multiple of 8", 12, 0},
		{"past end", 16, 8},
		{"negative offset", 8, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]byte, 16)
			if err := cipher.Encrypt(data, tt.offset, tt.size); err == nil {
				t.Error("Encrypt: expected error")
			}
			if err := cipher.Decrypt(data, tt.offset, tt.size); err == nil {
				t.Error("Decrypt: expected error")
			}
		})
	}
}

func TestChecksum_AppendThenVerify(t *testing.T) {
	data := make([]byte, 16)
	binary.LittleEndian.PutUint32(data[0:], 0xDEADBEEF)
	binary.LittleEndian.PutUint32(data[4:], 0x01020304)
	binary.LittleEndian.PutUint32(data[8:], 0x0A0B0C0D)

	AppendChecksum(data, 0, len(data))

	want := uint32(0xDEADBEEF ^ 0x01020304 ^ 0x0A0B0C0D)
	if got := binary.LittleEndian.Uint32(data[12:]); got != want {
		t.Fatalf("checksum: got %#x, want %#x", got, want)
	}
	if !VerifyChecksum(data, 0, len(data)) {
		t.Fatal("VerifyChecksum must accept freshly appended checksum")
	}

	data[5] ^= 0xFF
	if VerifyChecksum(data, 0, len(data)) {
		t.Fatal("VerifyChecksum must reject corrupted data")
	}
}

func TestVerifyChecksum_InvalidSizes(t *testing.T) {
	data := make([]byte, 8)
	if VerifyChecksum(data, 0, 4) {
		t.Error("size 4 must be rejected")
	}
	if VerifyChecksum(data, 0, 6) {
		t.Error("size not multiple of 4 must be rejected")
	}
	if VerifyChecksum(data, 4, 8) {
		t.Error("range past end must be rejected")
	}
}

func BenchmarkBlowfishDecrypt_DatBody(b *testing.B) {
	b.ReportAllocs()

	cipher, err := NewBlowfishCipher(DatKeyVer211)
	if err != nil {
		b.Fatalf("failed to create cipher: %v", err)
	}

	data := make([]byte, 64*1024) // типичный skillgrp.dat фрагмент
	b.SetBytes(int64(len(data)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := cipher.Decrypt(data, 0, len(data)); err != nil {
			b.Fatal(err)
		}
	}
}
