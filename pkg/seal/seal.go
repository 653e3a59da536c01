package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const (
	KeySize      = 32
	nonceSize    = 12
	tagSize      = aes.BlockSize
	versionMagic = byte('G')
)

var (
	// ErrMalformed is returned for tokens that cannot be decoded or unpacked
	ErrMalformed = errors.New("sealed value is malformed")
	// ErrTampered is returned when authentication of a sealed value fails
	ErrTampered = errors.New("sealed value failed authentication")
)

type Sealer struct {
	aead cipher.AEAD
}

// New returns a Sealer for a 32 byte key
func New(key []byte) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("seal key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// GenerateKey returns a random key suitable for New
func GenerateKey() ([]byte, error) {
	return RandomBytes(KeySize)
}

func RandomBytes(size int) ([]byte, error) {
	value := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, value); err != nil {
		return nil, err
	}
	return value, nil
}

// Encrypt seals plainText and returns the packed binary form
func (s *Sealer) Encrypt(aad, plainText []byte) ([]byte, error) {
	nonce, err := RandomBytes(nonceSize)
	if err != nil {
		return nil, err
	}
	return pack(s.aead.Seal(nil, nonce, plainText, aad), nonce), nil
}

// Decrypt opens a packed value produced by Encrypt
func (s *Sealer) Decrypt(aad, packed []byte) ([]byte, error) {
	cipherText, nonce, err := unpack(packed)
	if err != nil {
		return nil, err
	}
	plain, err := s.aead.Open(nil, nonce, cipherText, aad)
	if err != nil {
		return nil, ErrTampered
	}
	return plain, nil
}

// Seal JSON encodes v, encrypts it and returns a cookie safe string
func (s *Sealer) Seal(aad []byte, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode sealed value: %w", err)
	}
	packed, err := s.Encrypt(aad, data)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(packed), nil
}

// Open reverses Seal into v
func (s *Sealer) Open(aad []byte, token string, v any) error {
	packed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return ErrMalformed
	}
	data, err := s.Decrypt(aad, packed)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode sealed value: %w", err)
	}
	return nil
}

// pack lays out version|tag|nonce|ciphertext
func pack(cipherTextWithTag, nonce []byte) []byte {
	tagStart := len(cipherTextWithTag) - tagSize
	tag := cipherTextWithTag[tagStart:]
	cipherText := cipherTextWithTag[:tagStart]

	data := make([]byte, 0, 1+tagSize+nonceSize+len(cipherText))
	data = append(data, versionMagic)
	data = append(data, tag...)
	data = append(data, nonce[:nonceSize]...)
	return append(data, cipherText...)
}

func unpack(packed []byte) ([]byte, []byte, error) {
	if len(packed) < 1+tagSize+nonceSize || packed[0] != versionMagic {
		return nil, nil, ErrMalformed
	}
	tag := packed[1 : 1+tagSize]
	nonce := packed[1+tagSize : 1+tagSize+nonceSize]
	body := packed[1+tagSize+nonceSize:]

	cipherText := make([]byte, 0, len(body)+tagSize)
	cipherText = append(cipherText, body...)
	cipherText = append(cipherText, tag...)
	return cipherText, nonce, nil
}
