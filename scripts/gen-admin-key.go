// Command gen-admin-key generates an admin key and its argon2id hash.
//
// The printed hash goes into the ADMIN_KEY_HASH environment variable; the
// key itself is handed to whoever seeds offers. With -key an existing key
// is hashed instead of generating a new one.
//
// Usage:
//
//	go run ./scripts/gen-admin-key.go
//	go run ./scripts/gen-admin-key.go -key existing-secret
package main

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/funnelbase/funnelbase/internal/auth"
)

type output struct {
	Key  string `json:"key"`
	Hash string `json:"hash"`
}

func main() {
	key := flag.String("key", "", "existing key to hash (default: generate a new one)")
	flag.Parse()

	k := *key
	if k == "" {
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			fmt.Fprintf(os.Stderr, "generate key: %v\n", err)
			os.Exit(1)
		}
		k = base64.RawURLEncoding.EncodeToString(raw)
	}

	hash, err := auth.HashKey(k)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash key: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output{Key: k, Hash: hash}); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		os.Exit(1)
	}
}
