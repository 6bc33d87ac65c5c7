package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/ejgo/internal/audit"
	"github.com/PolarWolf314/ejgo/internal/configs"
	"github.com/PolarWolf314/ejgo/internal/document"
	kerrors "github.com/PolarWolf314/ejgo/internal/errors"
	"github.com/PolarWolf314/ejgo/internal/secrets"
)

const (
	testPublicKey  = "b595226c62427adbfc4a809cd7577488a6d402b2f930e1d603164ae3191a616e"
	testPrivateKey = "88649a9e83f8f1984ad35ac8e8e86529aab518572c0341f46d1e0bc97f676f2b"

	// Decrypts to "secret" with testPrivateKey.
	secretCiphertext = "EJ[1:l6yw664nxaddSXGiWUZfuVeoUSpTFHzqAyCpfF8Awxc=:xOfucLDkACGlPCyJ6QViggEidVswUlsH:B/f3DJMkdZHF+Wu9F6XUFwuTmxyfBA==]"
)

type testEnv struct {
	dir      string
	keyDir   string
	auditLog string
}

// setupTestEnv points the config at a temp file with an audit log and
// stores testPrivateKey in a temp key directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		dir:      dir,
		keyDir:   filepath.Join(dir, "keys"),
		auditLog: filepath.Join(dir, "audit.jsonl"),
	}

	configPath := filepath.Join(dir, "config.toml")
	if err := configs.SaveConfig(configPath, &configs.Config{KeyDir: env.keyDir, AuditLog: env.auditLog}); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	t.Setenv(configs.ConfigPathEnv, configPath)
	t.Setenv(configs.KeyDirEnv, "")

	if err := os.MkdirAll(env.keyDir, 0700); err != nil {
		t.Fatalf("Failed to create key dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(env.keyDir, testPublicKey), []byte(testPrivateKey+"\n"), 0600); err != nil {
		t.Fatalf("Failed to write private key: %v", err)
	}

	return env
}

func (e *testEnv) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func (e *testEnv) auditEntries(t *testing.T) []audit.Entry {
	t.Helper()
	entries, err := audit.ReadEntries(e.auditLog)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	return entries
}

func TestKeygen(t *testing.T) {
	env := setupTestEnv(t)

	result, err := Keygen(context.Background(), KeygenOptions{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.PrivateKey.IsZero() {
		t.Fatal("Private key should be returned when not writing")
	}
	if result.KeyPath != "" {
		t.Errorf("Nothing should be written, got key path %s", result.KeyPath)
	}

	derived, err := secrets.KeyPairFromPrivate(result.PrivateKey)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if derived.Public != result.PublicKey {
		t.Error("Public key does not match private key")
	}

	if entries := env.auditEntries(t); len(entries) != 0 {
		t.Errorf("Printing a key pair should not be audited, got %d entries", len(entries))
	}
}

func TestKeygen_Write(t *testing.T) {
	env := setupTestEnv(t)
	keyDir := filepath.Join(env.dir, "written")

	result, err := Keygen(context.Background(), KeygenOptions{KeyDir: keyDir, Write: true})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !result.PrivateKey.IsZero() {
		t.Error("Private key should not be returned when written")
	}
	if want := filepath.Join(keyDir, result.PublicKey.String()); result.KeyPath != want {
		t.Errorf("KeyPath = %s, want %s", result.KeyPath, want)
	}

	info, err := os.Stat(result.KeyPath)
	if err != nil {
		t.Fatalf("Key file was not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected permissions 0600, got %o", perm)
	}

	entries := env.auditEntries(t)
	if len(entries) != 1 || entries[0].Operation != audit.OpKeygen {
		t.Fatalf("Expected one keygen entry, got %+v", entries)
	}
	if entries[0].PublicKey != result.PublicKey.String() {
		t.Errorf("Audit public key = %s, want %s", entries[0].PublicKey, result.PublicKey)
	}
}

func TestEncryptThenDecrypt(t *testing.T) {
	env := setupTestEnv(t)
	path := env.writeFile(t, "secrets.ejson", `{
  "_public_key": "`+testPublicKey+`",
  "database_password": "1234password",
  "_comment": "stays readable",
  "nested": {"token": "abc"}
}`)

	result, err := Encrypt(context.Background(), EncryptOptions{FilePatterns: []string{path}})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result.Files) != 1 || result.Files[0].Path != path {
		t.Fatalf("Unexpected result files: %+v", result.Files)
	}
	if got := result.Files[0].PublicKey.String(); got != testPublicKey {
		t.Errorf("Reported public key %s, want %s", got, testPublicKey)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if result.Files[0].Bytes != len(data) {
		t.Errorf("Reported %d bytes, file has %d", result.Files[0].Bytes, len(data))
	}

	m, err := document.LoadMap(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	for _, p := range []string{"database_password", "nested.token"} {
		if !secrets.IsEncrypted(m[p]) {
			t.Errorf("%s should be encrypted, got %q", p, m[p])
		}
	}
	if m["_comment"] != "stays readable" {
		t.Errorf("_comment should be untouched, got %q", m["_comment"])
	}

	decrypted, err := Decrypt(context.Background(), DecryptOptions{File: path})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	f, err := document.ParseFile(decrypted.Data)
	if err != nil {
		t.Fatalf("Decrypted output is not a document: %v", err)
	}
	plain := f.Flatten()
	if plain["database_password"] != "1234password" || plain["nested.token"] != "abc" {
		t.Errorf("Unexpected decrypted values: %v", plain)
	}
	if plain["_public_key"] != testPublicKey {
		t.Error("Decrypted output should keep _public_key")
	}

	entries := env.auditEntries(t)
	if len(entries) != 2 || entries[0].Operation != audit.OpEncrypt || entries[1].Operation != audit.OpDecrypt {
		t.Fatalf("Unexpected audit entries: %+v", entries)
	}
	for _, e := range entries {
		if strings.Contains(e.Error+strings.Join(e.Files, ""), "1234password") {
			t.Error("Audit entries must not contain plaintext")
		}
	}
}

func TestEncrypt_Idempotent(t *testing.T) {
	env := setupTestEnv(t)
	content := `{
  "_public_key": "` + testPublicKey + `",
  "some": "` + secretCiphertext + `"
}
`
	path := env.writeFile(t, "secrets.ejson", content)

	if _, err := Encrypt(context.Background(), EncryptOptions{FilePatterns: []string{path}}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != content {
		t.Errorf("Already encrypted file should not change:\n%s", data)
	}
}

func TestEncrypt_DryRun(t *testing.T) {
	env := setupTestEnv(t)
	content := `{"_public_key": "` + testPublicKey + `", "a": "b"}`
	path := env.writeFile(t, "secrets.ejson", content)

	result, err := Encrypt(context.Background(), EncryptOptions{FilePatterns: []string{path}, DryRun: true})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !result.DryRun || len(result.Files) != 1 {
		t.Fatalf("Unexpected result: %+v", result)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != content {
		t.Error("Dry run should not modify the file")
	}
	if entries := env.auditEntries(t); len(entries) != 0 {
		t.Errorf("Dry run should not be audited, got %d entries", len(entries))
	}
}

func TestEncrypt_Compact(t *testing.T) {
	env := setupTestEnv(t)
	path := env.writeFile(t, "secrets.ejson", `{"_public_key": "`+testPublicKey+`", "cert": "\n-----BEGIN-----\nabc\n-----END-----\n"}`)

	if _, err := Encrypt(context.Background(), EncryptOptions{FilePatterns: []string{path}, Compact: true}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	decrypted, err := Decrypt(context.Background(), DecryptOptions{File: path})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	f, err := document.ParseFile(decrypted.Data)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got, want := f.Flatten()["cert"], `-----BEGIN-----\nabc\n-----END-----`; got != want {
		t.Errorf("cert = %q, want %q", got, want)
	}
}

func TestEncrypt_PartialFailure(t *testing.T) {
	env := setupTestEnv(t)
	good := env.writeFile(t, "good.ejson", `{"_public_key": "`+testPublicKey+`", "a": "b"}`)
	badContent := `{"a": "b"}`
	bad := env.writeFile(t, "bad.ejson", badContent)

	result, err := Encrypt(context.Background(), EncryptOptions{FilePatterns: []string{bad, good}})
	if !errors.Is(err, kerrors.ErrMissingPublicKey) {
		t.Fatalf("Expected ErrMissingPublicKey, got: %v", err)
	}
	if len(result.Files) != 1 || result.Files[0].Path != good {
		t.Fatalf("Good file should still be encrypted, got %+v", result.Files)
	}

	data, err := os.ReadFile(bad)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != badContent {
		t.Error("Failed file should be left untouched")
	}

	entries := env.auditEntries(t)
	if len(entries) != 1 || entries[0].Error == "" {
		t.Errorf("Expected one audit entry recording the failure, got %+v", entries)
	}
}

func TestEncrypt_NoFiles(t *testing.T) {
	env := setupTestEnv(t)

	_, err := Encrypt(context.Background(), EncryptOptions{FilePatterns: []string{filepath.Join(env.dir, "*.ejson")}})
	if !errors.Is(err, kerrors.ErrNoFilesFound) {
		t.Errorf("Expected ErrNoFilesFound, got: %v", err)
	}
}

func TestEncrypt_Cancelled(t *testing.T) {
	env := setupTestEnv(t)
	path := env.writeFile(t, "secrets.ejson", `{"_public_key": "`+testPublicKey+`", "a": "b"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Encrypt(ctx, EncryptOptions{FilePatterns: []string{path}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got: %v", err)
	}
	if len(result.Files) != 0 {
		t.Errorf("No file should be encrypted after cancellation, got %+v", result.Files)
	}
}

func TestDecrypt_Fixture(t *testing.T) {
	env := setupTestEnv(t)
	path := env.writeFile(t, "secrets.ejson", `{"_public_key": "`+testPublicKey+`", "some": "`+secretCiphertext+`", "count": 3}`)

	result, err := Decrypt(context.Background(), DecryptOptions{File: path})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := "{\n  \"_public_key\": \"" + testPublicKey + "\",\n  \"some\": \"secret\",\n  \"count\": 3\n}\n"
	if string(result.Data) != want {
		t.Errorf("Decrypt() =\n%s\nwant\n%s", result.Data, want)
	}
	if want := filepath.Join(env.keyDir, testPublicKey); result.KeyPath != want {
		t.Errorf("KeyPath = %s, want %s", result.KeyPath, want)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", result.Warnings)
	}
}

func TestDecrypt_KeyFromStdin(t *testing.T) {
	env := setupTestEnv(t)
	path := env.writeFile(t, "secrets.ejson", `{"_public_key": "`+testPublicKey+`", "some": "`+secretCiphertext+`"}`)

	result, err := Decrypt(context.Background(), DecryptOptions{
		File: path,
		KeyOptions: KeyOptions{
			KeyDir:         filepath.Join(env.dir, "empty"),
			PrivateKeyData: []byte("  " + testPrivateKey + "\n"),
		},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(string(result.Data), `"some": "secret"`) {
		t.Errorf("Unexpected output:\n%s", result.Data)
	}
	if result.KeyPath != "" {
		t.Errorf("KeyPath should be empty for stdin keys, got %s", result.KeyPath)
	}
}

func TestDecrypt_Errors(t *testing.T) {
	env := setupTestEnv(t)
	otherPublic := strings.Repeat("ab", 32)

	tests := []struct {
		name    string
		content string
		opts    KeyOptions
		want    error
	}{
		{
			name:    "missing public key",
			content: `{"some": "` + secretCiphertext + `"}`,
			want:    kerrors.ErrMissingPublicKey,
		},
		{
			name:    "no private key in key dir",
			content: `{"_public_key": "` + otherPublic + `", "some": "x"}`,
			want:    kerrors.ErrKeyNotFound,
		},
		{
			name:    "invalid stdin key",
			content: `{"_public_key": "` + testPublicKey + `", "some": "x"}`,
			opts:    KeyOptions{PrivateKeyData: []byte("not-a-key")},
			want:    kerrors.ErrInvalidKey,
		},
		{
			name:    "wrong private key",
			content: `{"_public_key": "` + testPublicKey + `", "some": "` + secretCiphertext + `"}`,
			opts:    KeyOptions{PrivateKeyData: []byte(strings.Repeat("01", 32))},
			want:    kerrors.ErrDecryptionFailed,
		},
		{
			name:    "not a document",
			content: `["a"]`,
			want:    kerrors.ErrInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := env.writeFile(t, "secrets.ejson", tt.content)
			_, err := Decrypt(context.Background(), DecryptOptions{File: path, KeyOptions: tt.opts})
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got: %v", tt.want, err)
			}
		})
	}
}

func TestDecrypt_PermissiveKeyFileWarns(t *testing.T) {
	env := setupTestEnv(t)
	if err := os.Chmod(filepath.Join(env.keyDir, testPublicKey), 0644); err != nil {
		t.Fatalf("Failed to chmod key file: %v", err)
	}
	path := env.writeFile(t, "secrets.ejson", `{"_public_key": "`+testPublicKey+`", "some": "`+secretCiphertext+`"}`)

	result, err := Decrypt(context.Background(), DecryptOptions{File: path})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("Expected one permissions warning, got %v", result.Warnings)
	}
}

func TestEnv(t *testing.T) {
	env := setupTestEnv(t)
	path := env.writeFile(t, "secrets.ejson", `{
  "_public_key": "`+testPublicKey+`",
  "environment": {
    "some": "`+secretCiphertext+`",
    "_PLAIN": "two words",
    "nested": {"skip": "me"}
  }
}`)

	result, err := Env(context.Background(), EnvOptions{File: path})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if want := "export some=secret\nexport _PLAIN='two words'\n"; string(result.Data) != want {
		t.Errorf("Env() =\n%s\nwant\n%s", result.Data, want)
	}

	trimmed, err := Env(context.Background(), EnvOptions{File: path, TrimUnderscore: true})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(trimmed.Names) != 2 || trimmed.Names[1] != "PLAIN" {
		t.Errorf("Names = %v, want [some PLAIN]", trimmed.Names)
	}
}

func TestEnv_ShellEscape(t *testing.T) {
	env := setupTestEnv(t)
	path := env.writeFile(t, "secrets.ejson", `{
  "_public_key": "`+testPublicKey+`",
  "environment": {
    "some": "EJ[1:1an1ebJDsGEnhGd94K9XonLvMokD4HSiKT5xgagdlEw=:KLlxcpkMMUCk4X5aZpNGCG6jUqJoytU2:lAk6EmtaEovXAgw9LuNJYZCYk3DR5ri0KjP3tfNo87U2bguF44qW8hL0BXfuM5olFz0=]"
  }
}`)

	result, err := Env(context.Background(), EnvOptions{File: path})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if want := "export some='Some thing with %$# symbols like \\'\n"; string(result.Data) != want {
		t.Errorf("Env() = %q, want %q", result.Data, want)
	}
}

func TestEnv_SectionMissing(t *testing.T) {
	env := setupTestEnv(t)
	path := env.writeFile(t, "secrets.ejson", `{"_public_key": "`+testPublicKey+`", "environment": "flat"}`)

	_, err := Env(context.Background(), EnvOptions{File: path})
	if !errors.Is(err, kerrors.ErrSectionNotFound) {
		t.Errorf("Expected ErrSectionNotFound, got: %v", err)
	}
}

func TestKubeSecrets(t *testing.T) {
	env := setupTestEnv(t)
	path := env.writeFile(t, "secrets.ejson", `{
  "_public_key": "`+testPublicKey+`",
  "kubernetes": {
    "basic-auth": {
      "username": "EJ[1:t33Bwgtq7Zghz1P0D+8ZMiSypiQye4q9DWLuxaOrLEU=:XJHmDeBhyT9aLjbuzuHyhQc4kCHki9A9:JNCzvxQwWDmOmtE0AQO/y2RSV2Y=]",
      "password": "EJ[1:t33Bwgtq7Zghz1P0D+8ZMiSypiQye4q9DWLuxaOrLEU=:MrpO2Q3ByLTTZCdDXhNwowZvRuVg7c63:lEwnFAwPtrNXb/IKwqXej9V8MjumSSP5Rg==]"
    },
    "database": {
      "_namespace": "testing",
      "DATABASE_URL": "EJ[1:t33Bwgtq7Zghz1P0D+8ZMiSypiQye4q9DWLuxaOrLEU=:0w+6gl3gXIOQohjqZnmih8ZLWPVffurJ:7U6ZEcttjrkS5sA73T/y/hESIaoxJUA320XqBoFWvw==]"
    }
  }
}`)

	result, err := KubeSecrets(context.Background(), KubeSecretsOptions{File: path})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result.Names) != 2 || result.Names[0] != "basic-auth" || result.Names[1] != "database" {
		t.Errorf("Names = %v, want [basic-auth database]", result.Names)
	}

	want := `---
apiVersion: v1
kind: Secret
metadata:
  name: basic-auth
data:
  password: cEE1NXdvcmQx
  username: dGVzdA==
---
apiVersion: v1
kind: Secret
metadata:
  name: database
  namespace: testing
data:
  DATABASE_URL: cGdzcWw6Ly9zb21lLWRi
`
	if got := string(result.Data); got != want {
		t.Errorf("KubeSecrets() =\n%s\nwant\n%s", got, want)
	}

	entries := env.auditEntries(t)
	if len(entries) != 1 || entries[0].Operation != audit.OpKubeSecrets {
		t.Errorf("Expected one kube-secrets entry, got %+v", entries)
	}
}

func TestKubeSecrets_SectionMissing(t *testing.T) {
	env := setupTestEnv(t)
	path := env.writeFile(t, "secrets.ejson", `{"_public_key": "`+testPublicKey+`"}`)

	_, err := KubeSecrets(context.Background(), KubeSecretsOptions{File: path})
	if !errors.Is(err, kerrors.ErrSectionNotFound) {
		t.Errorf("Expected ErrSectionNotFound, got: %v", err)
	}
}
