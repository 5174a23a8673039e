package signature

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testKeyOnce sync.Once
	testKey     *rsa.PrivateKey
)

// testRSAKey generates one RSA key pair shared across the package tests
func testRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	testKeyOnce.Do(func() {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatalf("generating test key: %v", err)
		}
		testKey = key
	})
	return testKey
}

func TestSignAndVerify(t *testing.T) {
	key := testRSAKey(t)
	engine := NewEngine(key, &key.PublicKey)

	payload := map[string]any{
		"amount":   "18.10",
		"currency": "EUR",
	}

	t.Run("Round trip verifies", func(t *testing.T) {
		sig, err := engine.Sign("Deposit", "uuid-1", payload)
		require.NoError(t, err)
		require.NotEmpty(t, sig)

		assert.True(t, engine.Verify("Deposit", "uuid-1", payload, sig))
	})

	t.Run("Signature is stable across field order", func(t *testing.T) {
		sig, err := engine.Sign("Deposit", "uuid-1", json.RawMessage(`{"b":"2","a":"1"}`))
		require.NoError(t, err)

		assert.True(t, engine.Verify("Deposit", "uuid-1", json.RawMessage(`{"a":"1","b":"2"}`), sig))
	})

	t.Run("Tampered payload is rejected", func(t *testing.T) {
		sig, err := engine.Sign("Deposit", "uuid-1", payload)
		require.NoError(t, err)

		tampered := map[string]any{
			"amount":   "9999.00",
			"currency": "EUR",
		}
		assert.False(t, engine.Verify("Deposit", "uuid-1", tampered, sig))
	})

	t.Run("Wrong method or uuid is rejected", func(t *testing.T) {
		sig, err := engine.Sign("Deposit", "uuid-1", payload)
		require.NoError(t, err)

		assert.False(t, engine.Verify("Notification", "uuid-1", payload, sig))
		assert.False(t, engine.Verify("Deposit", "uuid-2", payload, sig))
	})

	t.Run("Signature from a different key is rejected", func(t *testing.T) {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		otherEngine := NewEngine(otherKey, &otherKey.PublicKey)

		sig, err := otherEngine.Sign("Deposit", "uuid-1", payload)
		require.NoError(t, err)

		assert.False(t, engine.Verify("Deposit", "uuid-1", payload, sig))
	})
}

func TestVerifyFailsClosed(t *testing.T) {
	key := testRSAKey(t)

	t.Run("Missing public key", func(t *testing.T) {
		engine := NewEngine(key, nil)
		assert.False(t, engine.Verify("Deposit", "uuid-1", map[string]any{}, "c29tZXNpZw=="))
	})

	t.Run("Empty signature", func(t *testing.T) {
		engine := NewEngine(key, &key.PublicKey)
		assert.False(t, engine.Verify("Deposit", "uuid-1", map[string]any{}, ""))
	})

	t.Run("Signature that is not valid base64", func(t *testing.T) {
		engine := NewEngine(key, &key.PublicKey)
		assert.False(t, engine.Verify("Deposit", "uuid-1", map[string]any{}, "!!not-base64!!"))
	})
}

func TestSignWithoutPrivateKey(t *testing.T) {
	key := testRSAKey(t)
	engine := NewEngine(nil, &key.PublicKey)

	_, err := engine.Sign("Deposit", "uuid-1", map[string]any{})
	assert.ErrorIs(t, err, ErrNoPrivateKey)
}

func TestParseKeyPEM(t *testing.T) {
	t.Run("Garbage private key material", func(t *testing.T) {
		_, err := ParsePrivateKeyPEM([]byte("not a pem block"))
		assert.ErrorIs(t, err, ErrMalformedKey)
	})

	t.Run("Garbage public key material", func(t *testing.T) {
		_, err := ParsePublicKeyPEM([]byte("not a pem block"))
		assert.ErrorIs(t, err, ErrMalformedKey)
	})
}
