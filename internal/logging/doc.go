// Package logger provides leveled logging for ejgo commands.
//
// Output is written to stderr so that stdout stays reserved for command
// results (decrypted documents, env exports, manifests) and can be piped
// safely.
//
// # Verbosity Levels
//
//   - --verbose: Shows info messages
//   - --debug: Shows info and debug messages
//
// Warnings and errors are always shown.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Encrypting %d files", count)
//
// Never pass key material or plaintext values to the logger.
package logger
