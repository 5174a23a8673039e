package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNoPrivateKey is returned when signing without a loaded private key
	ErrNoPrivateKey = errors.New("no private key loaded")

	// ErrMalformedKey is returned when PEM key material cannot be parsed
	ErrMalformedKey = errors.New("malformed PEM key material")
)

// Engine signs and verifies envelope payloads over their canonical
// serialization using RSA-SHA256. Key material is loaded once at startup and
// is immutable afterwards, so an Engine is safe for concurrent use.
type Engine struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// NewEngine creates an engine with the signer's private key and the
// counterpart's public key. Either may be nil when one direction is unused.
func NewEngine(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey) *Engine {
	return &Engine{privateKey: privateKey, publicKey: publicKey}
}

// NewEngineFromFiles loads PEM key material from disk. An empty path skips
// that key.
func NewEngineFromFiles(privateKeyPath, publicKeyPath string) (*Engine, error) {
	engine := &Engine{}

	if privateKeyPath != "" {
		material, err := os.ReadFile(privateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("reading private key %s: %w", privateKeyPath, err)
		}
		engine.privateKey, err = ParsePrivateKeyPEM(material)
		if err != nil {
			return nil, fmt.Errorf("parsing private key %s: %w", privateKeyPath, err)
		}
	}

	if publicKeyPath != "" {
		material, err := os.ReadFile(publicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("reading public key %s: %w", publicKeyPath, err)
		}
		engine.publicKey, err = ParsePublicKeyPEM(material)
		if err != nil {
			return nil, fmt.Errorf("parsing public key %s: %w", publicKeyPath, err)
		}
	}

	return engine, nil
}

// ParsePrivateKeyPEM parses a PEM-encoded RSA private key in PKCS#8 or PKCS#1 form
func ParsePrivateKeyPEM(material []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(material)
	if block == nil {
		return nil, ErrMalformedKey
	}

	if parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an RSA key", ErrMalformedKey)
		}
		return rsaKey, nil
	}

	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedKey, err.Error())
	}
	return rsaKey, nil
}

// ParsePublicKeyPEM parses a PEM-encoded RSA public key in PKIX form
func ParsePublicKeyPEM(material []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(material)
	if block == nil {
		return nil, ErrMalformedKey
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedKey, err.Error())
	}

	rsaKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an RSA key", ErrMalformedKey)
	}
	return rsaKey, nil
}

// Sign computes the Base64 RSA-SHA256 signature over
// method + uuid + canonical serialization of data
func (e *Engine) Sign(method, uuid string, data any) (string, error) {
	if e.privateKey == nil {
		return "", ErrNoPrivateKey
	}

	plaintext, err := plaintextFor(method, uuid, data)
	if err != nil {
		return "", err
	}

	digest := sha256.Sum256([]byte(plaintext))
	signed, err := rsa.SignPKCS1v15(rand.Reader, e.privateKey, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("signing payload: %w", err)
	}

	return base64.StdEncoding.EncodeToString(signed), nil
}

// Verify recomputes the plaintext from the envelope fields and checks the
// supplied Base64 signature against it. Verification fails closed: a missing
// signature, a missing key or any error during verification is treated as
// signature-invalid, never as valid.
func (e *Engine) Verify(method, uuid string, data any, signatureB64 string) bool {
	if e.publicKey == nil || signatureB64 == "" {
		return false
	}

	plaintext, err := plaintextFor(method, uuid, data)
	if err != nil {
		return false
	}

	signed, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return false
	}

	digest := sha256.Sum256([]byte(plaintext))
	return rsa.VerifyPKCS1v15(e.publicKey, crypto.SHA256, digest[:], signed) == nil
}

func plaintextFor(method, uuid string, data any) (string, error) {
	serialized, err := Serialize(data)
	if err != nil {
		return "", err
	}
	return method + uuid + serialized, nil
}
