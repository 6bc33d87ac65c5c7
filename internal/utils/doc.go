// Package utils provides shared helpers for the ejgo commands.
//
// # Filesystem Utilities
//
//   - ResolveFiles: expands file, directory and glob arguments into the
//     secrets files to operate on
//   - IsSecretsFile: reports whether a path looks like a secrets file
//
// # I/O Utilities
//
//   - ReadStdin: reads piped data, such as a private key, from stdin
//   - WriteOutput: writes to a file or falls back to a writer
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - Plural: naive English pluralisation for counts
//
// # Terminal Utilities
//
//   - IsStderrTerminal: decides whether progress spinners are drawn
package utils
