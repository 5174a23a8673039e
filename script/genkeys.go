package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// Generates the two RSA key pairs the deposit protocol needs: one for the
// merchant side and one for the provider mock. Each side signs with its own
// private key and verifies with the other side's public key.
//
// Usage: go run script/genkeys.go -dir ./keys -bits 2048

func main() {
	dir := flag.String("dir", "./keys", "output directory for PEM files")
	bits := flag.Int("bits", 2048, "RSA key size in bits")
	flag.Parse()

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "creating %s: %v\n", *dir, err)
		os.Exit(1)
	}

	for _, name := range []string{"merchant", "provider"} {
		if err := writeKeyPair(*dir, name, *bits); err != nil {
			fmt.Fprintf(os.Stderr, "generating %s key pair: %v\n", name, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s_private.pem and %s_public.pem to %s\n", name, name, *dir)
	}
}

func writeKeyPair(dir, name string, bits int) error {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return err
	}

	privateDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return err
	}
	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: privateDER,
	})
	if err := os.WriteFile(filepath.Join(dir, name+"_private.pem"), privatePEM, 0o600); err != nil {
		return err
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return err
	}
	publicPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicDER,
	})
	return os.WriteFile(filepath.Join(dir, name+"_public.pem"), publicPEM, 0o644)
}
